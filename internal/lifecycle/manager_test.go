package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/lifecycle"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

func newManagerWithData(t *testing.T) (*lifecycle.Manager, *alerts.MemStore) {
	t.Helper()
	store := alerts.NewMemStore()
	return lifecycle.NewManager(store, nil), store
}

func seedMatch(t *testing.T, store *alerts.MemStore, alertID, matchID string, status model.MatchStatus) {
	t.Helper()
	err := store.InsertMatch(context.Background(), model.JobAlertMatch{
		ID: matchID, AlertID: alertID, JobID: "job-" + matchID,
		MatchScore: 75, CreatedAt: time.Now().UTC(), Status: status,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestTransitionMatchStatus(t *testing.T) {
	ctx := context.Background()
	mgr, store := newManagerWithData(t)
	seedMatch(t, store, "a1", "m1", model.MatchNew)

	viewed, err := mgr.TransitionMatchStatus(ctx, "m1", "viewed")
	if err != nil {
		t.Fatalf("new -> viewed: %v", err)
	}
	if viewed.Status != model.MatchViewed {
		t.Errorf("status = %q, want viewed", viewed.Status)
	}

	applied, err := mgr.TransitionMatchStatus(ctx, "m1", "applied")
	if err != nil {
		t.Fatalf("viewed -> applied: %v", err)
	}
	if applied.Status != model.MatchApplied {
		t.Errorf("status = %q, want applied", applied.Status)
	}

	stored, _ := store.GetMatch(ctx, "m1")
	if stored.Status != model.MatchApplied {
		t.Errorf("stored status = %q, want applied", stored.Status)
	}
}

func TestTransitionMatchStatusRejected(t *testing.T) {
	ctx := context.Background()
	mgr, store := newManagerWithData(t)

	// An applied match cannot move back to viewed.
	seedMatch(t, store, "a1", "applied", model.MatchApplied)
	// A new match cannot jump straight to applied.
	seedMatch(t, store, "a1", "fresh", model.MatchNew)

	var verr *alerts.ValidationError
	if _, err := mgr.TransitionMatchStatus(ctx, "applied", "viewed"); !errors.As(err, &verr) {
		t.Errorf("applied -> viewed: err = %v, want ValidationError", err)
	}
	if _, err := mgr.TransitionMatchStatus(ctx, "fresh", "applied"); !errors.As(err, &verr) {
		t.Errorf("new -> applied: err = %v, want ValidationError", err)
	}
	if _, err := mgr.TransitionMatchStatus(ctx, "fresh", "bogus"); !errors.As(err, &verr) {
		t.Errorf("unknown status: err = %v, want ValidationError", err)
	}
	if _, err := mgr.TransitionMatchStatus(ctx, "missing", "viewed"); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("unknown match: err = %v, want ErrNotFound", err)
	}

	// Rejected transitions must leave the row untouched.
	stored, _ := store.GetMatch(ctx, "fresh")
	if stored.Status != model.MatchNew {
		t.Errorf("stored status after rejection = %q, want new", stored.Status)
	}
}

func TestGetAlertStats(t *testing.T) {
	ctx := context.Background()
	mgr, store := newManagerWithData(t)

	now := time.Now().UTC()
	mkAlert := func(id string, freq model.Frequency, status model.AlertStatus) {
		err := store.CreateAlert(ctx, model.JobAlert{
			ID: id, UserID: "user1", Name: id,
			Criteria:  model.JobAlertCriteria{Keywords: []string{"go"}},
			Frequency: freq, Status: status,
			CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	mkAlert("daily", model.FrequencyDaily, model.AlertActive)
	mkAlert("weekly", model.FrequencyWeekly, model.AlertPaused)
	mkAlert("gone", model.FrequencyRealtime, model.AlertDeleted)

	for i := 0; i < 3; i++ {
		seedMatch(t, store, "daily", fmt.Sprintf("d%d", i), model.MatchNew)
	}
	seedMatch(t, store, "weekly", "w0", model.MatchViewed)
	seedMatch(t, store, "gone", "g0", model.MatchApplied)

	if _, err := mgr.TransitionMatchStatus(ctx, "d0", "viewed"); err != nil {
		t.Fatal(err)
	}

	stats, err := mgr.GetAlertStats(ctx, "user1")
	if err != nil {
		t.Fatalf("GetAlertStats: %v", err)
	}

	if stats.TotalAlerts != 3 {
		t.Errorf("TotalAlerts = %d, want 3", stats.TotalAlerts)
	}
	if stats.ActiveAlerts != 1 {
		t.Errorf("ActiveAlerts = %d, want 1", stats.ActiveAlerts)
	}
	// Matches of deleted alerts still count.
	if stats.TotalMatches != 5 {
		t.Errorf("TotalMatches = %d, want 5", stats.TotalMatches)
	}
	if got := stats.MatchesByFrequency[model.FrequencyDaily]; got != 3 {
		t.Errorf("daily matches = %d, want 3", got)
	}
	if got := stats.MatchesByFrequency[model.FrequencyRealtime]; got != 1 {
		t.Errorf("realtime matches = %d, want 1", got)
	}
	if got := stats.MatchesByStatus[model.MatchNew]; got != 2 {
		t.Errorf("new matches = %d, want 2", got)
	}
	if got := stats.MatchesByStatus[model.MatchViewed]; got != 2 {
		t.Errorf("viewed matches = %d, want 2", got)
	}
	if got := stats.MatchesByStatus[model.MatchApplied]; got != 1 {
		t.Errorf("applied matches = %d, want 1", got)
	}
	if stats.MatchesByStatus[model.MatchDismissed] != 0 {
		t.Errorf("dismissed matches = %d, want 0", stats.MatchesByStatus[model.MatchDismissed])
	}
	if stats.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestGetAlertStatsEmptyUser(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManagerWithData(t)

	stats, err := mgr.GetAlertStats(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalAlerts != 0 || stats.TotalMatches != 0 {
		t.Errorf("stats = %+v, want zeros", stats)
	}
	// Maps are pre-seeded so consumers never see nil.
	if stats.MatchesByFrequency == nil || stats.MatchesByStatus == nil {
		t.Error("stats maps must be non-nil")
	}
}
