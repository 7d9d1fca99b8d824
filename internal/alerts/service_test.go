package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

func newServiceWithStore(t *testing.T) (*alerts.Service, *alerts.MemStore) {
	t.Helper()
	store := alerts.NewMemStore()
	return alerts.NewService(store), store
}

func someCriteria() model.JobAlertCriteria {
	return model.JobAlertCriteria{Keywords: []string{"go"}}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceWithStore(t)

	alert, err := svc.Create(ctx, "user1", "Go jobs", someCriteria(), model.FrequencyDaily)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if alert.ID == "" {
		t.Error("created alert has no ID")
	}
	if alert.Status != model.AlertActive {
		t.Errorf("status = %q, want active", alert.Status)
	}
	if alert.NextScheduled != nil {
		t.Error("new alert must have no schedule yet")
	}

	stored, err := store.GetAlert(ctx, alert.ID)
	if err != nil {
		t.Fatalf("stored alert not found: %v", err)
	}
	if stored.Name != "Go jobs" || stored.UserID != "user1" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceWithStore(t)

	negative := -1
	cases := []struct {
		name      string
		userID    string
		alertName string
		criteria  model.JobAlertCriteria
		frequency model.Frequency
	}{
		{"missing user", "", "n", someCriteria(), model.FrequencyDaily},
		{"missing name", "u", "", someCriteria(), model.FrequencyDaily},
		{"empty criteria", "u", "n", model.JobAlertCriteria{}, model.FrequencyDaily},
		{"negative salary", "u", "n", model.JobAlertCriteria{SalaryMin: &negative}, model.FrequencyDaily},
		{"bad frequency", "u", "n", someCriteria(), model.Frequency("hourly")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Create(ctx, c.userID, c.alertName, c.criteria, c.frequency)
			var verr *alerts.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceWithStore(t)

	alert, err := svc.Create(ctx, "user1", "Go jobs", someCriteria(), model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, alert.ID, "Remote Go jobs",
		model.JobAlertCriteria{Keywords: []string{"go"}, Locations: []string{"Remote"}},
		model.FrequencyDaily)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Remote Go jobs" {
		t.Errorf("name = %q", updated.Name)
	}
	if len(updated.Criteria.Locations) != 1 {
		t.Errorf("criteria = %+v", updated.Criteria)
	}
}

func TestServiceUpdateFrequencyResetsSchedule(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceWithStore(t)

	alert, err := svc.Create(ctx, "user1", "Go jobs", someCriteria(), model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	next := now.Add(24 * time.Hour)
	if err := store.UpdateSchedule(ctx, alert.ID, now, &next); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, alert.ID, "", someCriteria(), model.FrequencyWeekly)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Frequency != model.FrequencyWeekly {
		t.Errorf("frequency = %q", updated.Frequency)
	}
	if updated.NextScheduled != nil {
		t.Error("frequency change must clear NextScheduled")
	}
}

func TestServicePauseResume(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceWithStore(t)

	alert, err := svc.Create(ctx, "user1", "Go jobs", someCriteria(), model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}

	paused, err := svc.Pause(ctx, alert.ID)
	if err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if paused.Status != model.AlertPaused {
		t.Errorf("status = %q, want paused", paused.Status)
	}

	active, err := store.ListActiveAlerts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("paused alert still listed as active")
	}

	resumed, err := svc.Resume(ctx, alert.ID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Status != model.AlertActive {
		t.Errorf("status = %q, want active", resumed.Status)
	}
}

func TestServiceDeleteIsSoftAndFinal(t *testing.T) {
	ctx := context.Background()
	svc, store := newServiceWithStore(t)

	alert, err := svc.Create(ctx, "user1", "Go jobs", someCriteria(), model.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}
	match := model.JobAlertMatch{
		ID: "m1", AlertID: alert.ID, JobID: "job1",
		MatchScore: 80, CreatedAt: time.Now().UTC(), Status: model.MatchNew,
	}
	if err := store.InsertMatch(ctx, match); err != nil {
		t.Fatal(err)
	}

	deleted, err := svc.Delete(ctx, alert.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Status != model.AlertDeleted {
		t.Errorf("status = %q, want deleted", deleted.Status)
	}

	// Historical matches survive the soft delete.
	matches, err := svc.Matches(ctx, alert.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("matches after delete = %d, want 1", len(matches))
	}

	// Deleted alerts are immutable.
	var verr *alerts.ValidationError
	if _, err := svc.Resume(ctx, alert.ID); !errors.As(err, &verr) {
		t.Errorf("Resume on deleted: err = %v, want ValidationError", err)
	}
	if _, err := svc.Update(ctx, alert.ID, "x", someCriteria(), model.FrequencyDaily); !errors.As(err, &verr) {
		t.Errorf("Update on deleted: err = %v, want ValidationError", err)
	}

	// But the alert is still visible in listings.
	all, err := svc.ListForUser(ctx, "user1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("user listing after delete = %d alerts, want 1", len(all))
	}
}

func TestServiceUnknownAlert(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServiceWithStore(t)

	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("Get: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Pause(ctx, "nope"); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("Pause: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Matches(ctx, "nope"); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("Matches: err = %v, want ErrNotFound", err)
	}
}
