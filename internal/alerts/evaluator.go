package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/matching"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// EventAlertMatch is the Redis channel new match rows are announced on.
const EventAlertMatch = "EVENT_ALERT_MATCH"

// DefaultEvaluationTimeout bounds a single alert evaluation.
const DefaultEvaluationTimeout = 30 * time.Second

// JobSource provides the active job corpus to evaluate against.
type JobSource interface {
	ListActiveJobs(ctx context.Context) ([]model.JobPosting, error)
}

// Evaluator runs the batch evaluation of saved job alerts.
//
// A failure evaluating one alert never aborts the rest of the cycle: the
// failing alert is logged, left with its schedule untouched, and retried on
// the next cycle.
type Evaluator struct {
	store   Store
	jobs    JobSource
	rdb     *redis.Client // optional; nil disables event publishing
	timeout time.Duration
	now     func() time.Time
}

// NewEvaluator constructs an Evaluator. timeout <= 0 selects
// DefaultEvaluationTimeout.
func NewEvaluator(store Store, jobs JobSource, rdb *redis.Client, timeout time.Duration) *Evaluator {
	if timeout <= 0 {
		timeout = DefaultEvaluationTimeout
	}
	return &Evaluator{
		store:   store,
		jobs:    jobs,
		rdb:     rdb,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// EvaluateAlert applies the alert's hard filter to the given corpus, scores
// the survivors, and stores one match row per passing job that has no stored
// match yet. It returns only the newly created rows, so re-running against an
// unchanged corpus returns an empty list.
//
// Non-active alerts produce no matches.
func (e *Evaluator) EvaluateAlert(ctx context.Context, alert model.JobAlert, jobs []model.JobPosting) ([]model.JobAlertMatch, error) {
	if alert.Status != model.AlertActive {
		return nil, nil
	}
	if alert.ID == "" {
		return nil, &ValidationError{Msg: "alert id is required"}
	}

	profile := virtualProfile(alert.Criteria)

	var created []model.JobAlertMatch
	for _, job := range jobs {
		if !job.IsActive {
			continue
		}

		ok, reasons := MatchesCriteria(alert.Criteria, job)
		if !ok {
			continue
		}

		// Passing the hard filter IS the match; the score only orders results.
		result := matching.ComputeMatch(profile, job)
		if len(result.MatchingSkills) > 0 {
			reasons = append([]string{"Skills match: " + strings.Join(result.MatchingSkills, ", ")}, reasons...)
		}

		match := model.JobAlertMatch{
			ID:           uuid.NewString(),
			AlertID:      alert.ID,
			JobID:        job.ID,
			MatchScore:   result.MatchScore,
			MatchReasons: reasons,
			CreatedAt:    e.now(),
			Status:       model.MatchNew,
		}

		inserted, err := e.store.InsertMatchIfAbsent(ctx, match)
		if err != nil {
			return created, fmt.Errorf("insert match for job %s: %w", job.ID, err)
		}
		if !inserted {
			continue
		}

		created = append(created, match)
		e.publishMatch(ctx, alert, match)
	}

	return created, nil
}

// RunCycle evaluates every active alert whose schedule is due, then advances
// each successful alert's schedule. Called periodically by the scheduler.
func (e *Evaluator) RunCycle(ctx context.Context) {
	now := e.now()

	active, err := e.store.ListActiveAlerts(ctx)
	if err != nil {
		slog.Error("list active alerts", "err", err)
		return
	}
	if len(active) == 0 {
		slog.Info("alert cycle: no active alerts")
		return
	}

	jobs, err := e.jobs.ListActiveJobs(ctx)
	if err != nil {
		slog.Error("list active jobs", "err", err)
		return
	}

	var evaluated, skipped, failed, matched int
	for _, alert := range active {
		if !scheduleDue(alert, now) {
			skipped++
			continue
		}

		created, err := e.evaluateWithTimeout(ctx, alert, jobs)
		if err != nil {
			// Recoverable: schedule untouched, retried next cycle.
			failed++
			slog.Warn("alert evaluation failed", "alertId", alert.ID, "err", err)
			continue
		}

		evaluated++
		matched += len(created)

		if err := e.advanceSchedule(ctx, alert, now); err != nil {
			slog.Warn("advance alert schedule failed", "alertId", alert.ID, "err", err)
		}
	}

	slog.Info("alert cycle complete",
		"evaluated", evaluated, "skipped", skipped, "failed", failed, "newMatches", matched)
}

// OnJobPosted evaluates every active realtime alert against a single freshly
// posted job, independent of the periodic cycle.
func (e *Evaluator) OnJobPosted(ctx context.Context, job model.JobPosting) {
	active, err := e.store.ListActiveAlerts(ctx)
	if err != nil {
		slog.Error("list active alerts", "err", err)
		return
	}

	for _, alert := range active {
		if alert.Frequency != model.FrequencyRealtime {
			continue
		}
		if _, err := e.evaluateWithTimeout(ctx, alert, []model.JobPosting{job}); err != nil {
			slog.Warn("realtime alert evaluation failed", "alertId", alert.ID, "jobId", job.ID, "err", err)
		}
	}
}

func (e *Evaluator) evaluateWithTimeout(ctx context.Context, alert model.JobAlert, jobs []model.JobPosting) ([]model.JobAlertMatch, error) {
	actx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.EvaluateAlert(actx, alert, jobs)
}

// advanceSchedule records cycle completion: lastSent = now and, for periodic
// frequencies, nextScheduled = now + interval. Realtime alerts keep no next
// schedule; they are driven by job-posted events and re-checked every cycle.
func (e *Evaluator) advanceSchedule(ctx context.Context, alert model.JobAlert, now time.Time) error {
	var next *time.Time
	if interval := alert.Frequency.Interval(); interval > 0 {
		t := now.Add(interval)
		next = &t
	}
	return e.store.UpdateSchedule(ctx, alert.ID, now, next)
}

// scheduleDue reports whether the alert should be evaluated this cycle.
// A nil NextScheduled means the alert has never completed a cycle.
func scheduleDue(alert model.JobAlert, now time.Time) bool {
	if alert.NextScheduled == nil {
		return true
	}
	return !alert.NextScheduled.After(now)
}

// virtualProfile synthesizes a profile from the alert's skill criteria.
// Alerts carry no proficiency data, so any presence counts fully: the skills
// are held at the maximum level and can never incur a gap penalty.
func virtualProfile(c model.JobAlertCriteria) model.CandidateProfile {
	skills := make([]model.ProfileSkill, 0, len(c.Skills))
	for _, name := range c.Skills {
		skills = append(skills, model.ProfileSkill{Name: name, Level: model.MaxSkillLevel})
	}
	return model.CandidateProfile{Skills: skills}
}

// publishMatch announces a new match row on Redis. Non-fatal: a publish
// failure is logged and ignored.
func (e *Evaluator) publishMatch(ctx context.Context, alert model.JobAlert, match model.JobAlertMatch) {
	if e.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]any{
		"type":    EventAlertMatch,
		"alertId": match.AlertID,
		"userId":  alert.UserID,
		"jobId":   match.JobID,
		"matchId": match.ID,
		"score":   match.MatchScore,
	})
	if err := e.rdb.Publish(ctx, EventAlertMatch, event).Err(); err != nil {
		slog.Warn("publish EVENT_ALERT_MATCH failed", "err", err)
	}
}
