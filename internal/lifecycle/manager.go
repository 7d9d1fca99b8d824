package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// EventMatchStatus is the Redis channel status transitions are announced on.
const EventMatchStatus = "EVENT_MATCH_STATUS"

// Manager advances match rows through the state machine and computes alert
// stats. It is transport-agnostic.
type Manager struct {
	store alerts.Store
	rdb   *redis.Client // optional; nil disables event publishing
	now   func() time.Time
}

// NewManager returns a configured Manager.
func NewManager(store alerts.Store, rdb *redis.Client) *Manager {
	return &Manager{store: store, rdb: rdb, now: func() time.Time { return time.Now().UTC() }}
}

// TransitionMatchStatus moves a match to newStatus.
// Returns alerts.ErrNotFound for an unknown match and a ValidationError when
// the state machine rejects the transition (terminal states cannot be left).
func (m *Manager) TransitionMatchStatus(ctx context.Context, matchID string, newStatusStr string) (model.JobAlertMatch, error) {
	newStatus, err := ParseStatus(newStatusStr)
	if err != nil {
		return model.JobAlertMatch{}, &alerts.ValidationError{Msg: err.Error()}
	}

	match, err := m.store.GetMatch(ctx, matchID)
	if err != nil {
		return model.JobAlertMatch{}, err
	}

	if !IsTransitionAllowed(match.Status, newStatus) {
		return model.JobAlertMatch{}, &alerts.ValidationError{
			Msg: fmt.Sprintf("transition %s -> %s is not allowed", match.Status, newStatus),
		}
	}

	updated, err := m.store.UpdateMatchStatus(ctx, matchID, newStatus)
	if err != nil {
		return model.JobAlertMatch{}, fmt.Errorf("update match status: %w", err)
	}

	m.publishTransition(ctx, match.Status, updated)
	return updated, nil
}

// GetAlertStats recomputes aggregate stats for a user from a live scan of the
// alert and match sets. Nothing is cached or stored, so the result cannot
// drift from the store contents. Deleted alerts are excluded from the active
// count but their historical matches still count.
func (m *Manager) GetAlertStats(ctx context.Context, userID string) (model.JobAlertStats, error) {
	userAlerts, err := m.store.ListAlertsByUser(ctx, userID)
	if err != nil {
		return model.JobAlertStats{}, fmt.Errorf("list alerts: %w", err)
	}

	stats := model.JobAlertStats{
		MatchesByFrequency: map[model.Frequency]int{
			model.FrequencyDaily:    0,
			model.FrequencyWeekly:   0,
			model.FrequencyMonthly:  0,
			model.FrequencyRealtime: 0,
		},
		MatchesByStatus: map[model.MatchStatus]int{
			model.MatchNew:       0,
			model.MatchViewed:    0,
			model.MatchApplied:   0,
			model.MatchDismissed: 0,
		},
		LastUpdated: m.now(),
	}

	for _, alert := range userAlerts {
		stats.TotalAlerts++
		if alert.Status == model.AlertActive {
			stats.ActiveAlerts++
		}

		matches, err := m.store.ListMatchesByAlert(ctx, alert.ID)
		if err != nil {
			return model.JobAlertStats{}, fmt.Errorf("list matches for alert %s: %w", alert.ID, err)
		}

		stats.TotalMatches += len(matches)
		stats.MatchesByFrequency[alert.Frequency] += len(matches)
		for _, match := range matches {
			stats.MatchesByStatus[match.Status]++
		}
	}

	return stats, nil
}

// publishTransition announces a status change on Redis. Non-fatal.
func (m *Manager) publishTransition(ctx context.Context, from model.MatchStatus, match model.JobAlertMatch) {
	if m.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]string{
		"type":    EventMatchStatus,
		"matchId": match.ID,
		"alertId": match.AlertID,
		"from":    string(from),
		"to":      string(match.Status),
		"at":      m.now().Format(time.RFC3339),
	})
	if err := m.rdb.Publish(ctx, EventMatchStatus, event).Err(); err != nil {
		slog.Warn("publish EVENT_MATCH_STATUS failed", "err", err)
	}
}
