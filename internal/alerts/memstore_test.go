package alerts_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

func TestMemStoreInsertMatchDuplicate(t *testing.T) {
	ctx := context.Background()
	store := alerts.NewMemStore()

	match := model.JobAlertMatch{
		ID: "m1", AlertID: "a1", JobID: "j1",
		CreatedAt: time.Now().UTC(), Status: model.MatchNew,
	}
	if err := store.InsertMatch(ctx, match); err != nil {
		t.Fatal(err)
	}

	dup := match
	dup.ID = "m2"
	if err := store.InsertMatch(ctx, dup); !errors.Is(err, alerts.ErrDuplicateMatch) {
		t.Errorf("err = %v, want ErrDuplicateMatch", err)
	}

	// A different job under the same alert is a new pair.
	other := match
	other.ID = "m3"
	other.JobID = "j2"
	if err := store.InsertMatch(ctx, other); err != nil {
		t.Errorf("distinct pair rejected: %v", err)
	}
}

func TestMemStoreInsertMatchIfAbsentConcurrent(t *testing.T) {
	ctx := context.Background()
	store := alerts.NewMemStore()

	const workers = 32
	var wg sync.WaitGroup
	inserted := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := store.InsertMatchIfAbsent(ctx, model.JobAlertMatch{
				ID: fmt.Sprintf("m%d", i), AlertID: "a1", JobID: "j1",
				CreatedAt: time.Now().UTC(), Status: model.MatchNew,
			})
			if err != nil {
				t.Error(err)
				return
			}
			inserted <- ok
		}(i)
	}
	wg.Wait()
	close(inserted)

	wins := 0
	for ok := range inserted {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("%d concurrent inserts won for the same pair, want exactly 1", wins)
	}

	matches, err := store.ListMatchesByAlert(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Errorf("stored %d matches, want 1", len(matches))
	}
}

func TestMemStoreListMatchesOrdering(t *testing.T) {
	ctx := context.Background()
	store := alerts.NewMemStore()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, jobID := range []string{"j1", "j2", "j3"} {
		m := model.JobAlertMatch{
			ID: fmt.Sprintf("m%d", i), AlertID: "a1", JobID: jobID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour), Status: model.MatchNew,
		}
		if err := store.InsertMatch(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	matches, err := store.ListMatchesByAlert(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].CreatedAt.After(matches[i-1].CreatedAt) {
			t.Errorf("matches not ordered newest first: %v then %v",
				matches[i-1].CreatedAt, matches[i].CreatedAt)
		}
	}
}

func TestMemStoreUpdateMissingAlert(t *testing.T) {
	ctx := context.Background()
	store := alerts.NewMemStore()

	err := store.UpdateAlert(ctx, model.JobAlert{ID: "nope"})
	if !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("UpdateAlert: err = %v, want ErrNotFound", err)
	}
	if err := store.UpdateSchedule(ctx, "nope", time.Now(), nil); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("UpdateSchedule: err = %v, want ErrNotFound", err)
	}
	if _, err := store.UpdateMatchStatus(ctx, "nope", model.MatchViewed); !errors.Is(err, alerts.ErrNotFound) {
		t.Errorf("UpdateMatchStatus: err = %v, want ErrNotFound", err)
	}
}
