package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// Service encapsulates alert CRUD. Alerts are mutated only through these
// methods; deletion is a soft status change so historical matches survive.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService returns a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Create validates and stores a new active alert for userID.
func (s *Service) Create(ctx context.Context, userID, name string, criteria model.JobAlertCriteria, frequency model.Frequency) (model.JobAlert, error) {
	if userID == "" {
		return model.JobAlert{}, &ValidationError{Msg: "userId is required"}
	}
	if name == "" {
		return model.JobAlert{}, &ValidationError{Msg: "alert name is required"}
	}
	if err := validateCriteria(criteria); err != nil {
		return model.JobAlert{}, err
	}
	if !model.ValidFrequency(frequency) {
		return model.JobAlert{}, &ValidationError{Msg: fmt.Sprintf("unknown frequency %q", frequency)}
	}

	now := s.now()
	alert := model.JobAlert{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Criteria:  criteria,
		Frequency: frequency,
		Status:    model.AlertActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		return model.JobAlert{}, fmt.Errorf("create alert: %w", err)
	}
	return alert, nil
}

// Update replaces the name, criteria and frequency of an existing alert.
// Deleted alerts cannot be updated.
func (s *Service) Update(ctx context.Context, alertID, name string, criteria model.JobAlertCriteria, frequency model.Frequency) (model.JobAlert, error) {
	if err := validateCriteria(criteria); err != nil {
		return model.JobAlert{}, err
	}
	if !model.ValidFrequency(frequency) {
		return model.JobAlert{}, &ValidationError{Msg: fmt.Sprintf("unknown frequency %q", frequency)}
	}

	alert, err := s.store.GetAlert(ctx, alertID)
	if err != nil {
		return model.JobAlert{}, err
	}
	if alert.Status == model.AlertDeleted {
		return model.JobAlert{}, &ValidationError{Msg: "alert is deleted"}
	}

	if name != "" {
		alert.Name = name
	}
	alert.Criteria = criteria
	if alert.Frequency != frequency {
		alert.Frequency = frequency
		// Frequency changed: the old schedule no longer applies.
		alert.NextScheduled = nil
	}
	alert.UpdatedAt = s.now()

	if err := s.store.UpdateAlert(ctx, alert); err != nil {
		return model.JobAlert{}, fmt.Errorf("update alert: %w", err)
	}
	return alert, nil
}

// Pause stops an active alert from producing matches until resumed.
func (s *Service) Pause(ctx context.Context, alertID string) (model.JobAlert, error) {
	return s.setStatus(ctx, alertID, model.AlertPaused)
}

// Resume reactivates a paused alert.
func (s *Service) Resume(ctx context.Context, alertID string) (model.JobAlert, error) {
	return s.setStatus(ctx, alertID, model.AlertActive)
}

// Delete soft-deletes an alert. Its stored matches remain.
func (s *Service) Delete(ctx context.Context, alertID string) (model.JobAlert, error) {
	return s.setStatus(ctx, alertID, model.AlertDeleted)
}

// Get returns one alert by ID.
func (s *Service) Get(ctx context.Context, alertID string) (model.JobAlert, error) {
	return s.store.GetAlert(ctx, alertID)
}

// ListForUser returns all alerts of a user, deleted ones included.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]model.JobAlert, error) {
	return s.store.ListAlertsByUser(ctx, userID)
}

// Matches returns the stored match rows of an alert, newest first.
func (s *Service) Matches(ctx context.Context, alertID string) ([]model.JobAlertMatch, error) {
	if _, err := s.store.GetAlert(ctx, alertID); err != nil {
		return nil, err
	}
	return s.store.ListMatchesByAlert(ctx, alertID)
}

func (s *Service) setStatus(ctx context.Context, alertID string, status model.AlertStatus) (model.JobAlert, error) {
	alert, err := s.store.GetAlert(ctx, alertID)
	if err != nil {
		return model.JobAlert{}, err
	}
	if alert.Status == model.AlertDeleted {
		return model.JobAlert{}, &ValidationError{Msg: "alert is deleted"}
	}
	alert.Status = status
	alert.UpdatedAt = s.now()
	if err := s.store.UpdateAlert(ctx, alert); err != nil {
		return model.JobAlert{}, fmt.Errorf("set alert status: %w", err)
	}
	return alert, nil
}

// validateCriteria rejects criteria that cannot match anything meaningful.
func validateCriteria(c model.JobAlertCriteria) error {
	if len(c.Keywords) == 0 && len(c.Locations) == 0 && len(c.JobTypes) == 0 &&
		len(c.Industries) == 0 && c.ExperienceLevel == "" && c.SalaryMin == nil &&
		len(c.Skills) == 0 && len(c.Companies) == 0 && c.Remote == nil {
		return &ValidationError{Msg: "criteria must contain at least one filter"}
	}
	if c.SalaryMin != nil && *c.SalaryMin < 0 {
		return &ValidationError{Msg: "salaryMin must be non-negative"}
	}
	return nil
}
