package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// MemStore is an in-memory Store used in tests and local development.
// All methods are safe for concurrent use; the single mutex makes the
// check-and-insert in InsertMatchIfAbsent atomic.
type MemStore struct {
	mu      sync.RWMutex
	alerts  map[string]model.JobAlert
	matches map[string]model.JobAlertMatch
	pairs   map[string]string // alertID+"\x00"+jobID → matchID
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		alerts:  make(map[string]model.JobAlert),
		matches: make(map[string]model.JobAlertMatch),
		pairs:   make(map[string]string),
	}
}

func pairKey(alertID, jobID string) string { return alertID + "\x00" + jobID }

func (s *MemStore) CreateAlert(_ context.Context, alert model.JobAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[alert.ID] = alert
	return nil
}

func (s *MemStore) GetAlert(_ context.Context, alertID string) (model.JobAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[alertID]
	if !ok {
		return model.JobAlert{}, ErrNotFound
	}
	return alert, nil
}

func (s *MemStore) UpdateAlert(_ context.Context, alert model.JobAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alerts[alert.ID]; !ok {
		return ErrNotFound
	}
	s.alerts[alert.ID] = alert
	return nil
}

func (s *MemStore) ListAlertsByUser(_ context.Context, userID string) ([]model.JobAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.JobAlert
	for _, a := range s.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sortAlerts(out)
	return out, nil
}

func (s *MemStore) ListActiveAlerts(_ context.Context) ([]model.JobAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.JobAlert
	for _, a := range s.alerts {
		if a.Status == model.AlertActive {
			out = append(out, a)
		}
	}
	sortAlerts(out)
	return out, nil
}

func (s *MemStore) UpdateSchedule(_ context.Context, alertID string, lastSent time.Time, nextScheduled *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[alertID]
	if !ok {
		return ErrNotFound
	}
	alert.LastSent = &lastSent
	alert.NextScheduled = nextScheduled
	alert.UpdatedAt = time.Now().UTC()
	s.alerts[alertID] = alert
	return nil
}

func (s *MemStore) InsertMatch(_ context.Context, match model.JobAlertMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pairs[pairKey(match.AlertID, match.JobID)]; ok {
		return ErrDuplicateMatch
	}
	s.insertLocked(match)
	return nil
}

func (s *MemStore) InsertMatchIfAbsent(_ context.Context, match model.JobAlertMatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pairs[pairKey(match.AlertID, match.JobID)]; ok {
		return false, nil
	}
	s.insertLocked(match)
	return true, nil
}

func (s *MemStore) insertLocked(match model.JobAlertMatch) {
	s.matches[match.ID] = match
	s.pairs[pairKey(match.AlertID, match.JobID)] = match.ID
}

func (s *MemStore) ListMatchesByAlert(_ context.Context, alertID string) ([]model.JobAlertMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.JobAlertMatch
	for _, m := range s.matches {
		if m.AlertID == alertID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) GetMatch(_ context.Context, matchID string) (model.JobAlertMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[matchID]
	if !ok {
		return model.JobAlertMatch{}, ErrNotFound
	}
	return m, nil
}

func (s *MemStore) UpdateMatchStatus(_ context.Context, matchID string, status model.MatchStatus) (model.JobAlertMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return model.JobAlertMatch{}, ErrNotFound
	}
	m.Status = status
	s.matches[matchID] = m
	return m, nil
}

func sortAlerts(alerts []model.JobAlert) {
	sort.Slice(alerts, func(i, j int) bool {
		if !alerts[i].CreatedAt.Equal(alerts[j].CreatedAt) {
			return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
		}
		return alerts[i].ID < alerts[j].ID
	})
}
