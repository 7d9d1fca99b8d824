// Package alerts implements job alert persistence, criteria filtering, alert
// CRUD and the scheduled alert evaluator.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// Store is the persistence boundary for alerts and their matches.
// Matches are append-only: there is no delete, and InsertMatchIfAbsent must be
// atomic so concurrent evaluation of the same alert cannot create two rows for
// one (alertId, jobId) pair.
type Store interface {
	CreateAlert(ctx context.Context, alert model.JobAlert) error
	GetAlert(ctx context.Context, alertID string) (model.JobAlert, error)
	UpdateAlert(ctx context.Context, alert model.JobAlert) error
	ListAlertsByUser(ctx context.Context, userID string) ([]model.JobAlert, error)
	ListActiveAlerts(ctx context.Context) ([]model.JobAlert, error)

	// UpdateSchedule records the completion of an evaluation cycle.
	UpdateSchedule(ctx context.Context, alertID string, lastSent time.Time, nextScheduled *time.Time) error

	// InsertMatch inserts unconditionally and returns ErrDuplicateMatch when a
	// row for (alertId, jobId) already exists. The evaluator never calls this;
	// it exists for callers outside the dedup path.
	InsertMatch(ctx context.Context, match model.JobAlertMatch) error

	// InsertMatchIfAbsent inserts the match unless one already exists for the
	// same (alertId, jobId). Returns true when a row was created.
	InsertMatchIfAbsent(ctx context.Context, match model.JobAlertMatch) (bool, error)

	ListMatchesByAlert(ctx context.Context, alertID string) ([]model.JobAlertMatch, error)
	GetMatch(ctx context.Context, matchID string) (model.JobAlertMatch, error)
	UpdateMatchStatus(ctx context.Context, matchID string, status model.MatchStatus) (model.JobAlertMatch, error)
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when an alert or match does not exist.
var ErrNotFound = fmt.Errorf("not found")

// ErrDuplicateMatch is returned by InsertMatch when a match for the same
// (alertId, jobId) pair already exists. Callers should treat it as a conflict,
// not a failure of the store.
var ErrDuplicateMatch = fmt.Errorf("duplicate match for (alertId, jobId)")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
