// Package scheduler wires up the cron job that periodically evaluates all due
// job alerts, plus the Redis subscription that feeds realtime alerts.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// EventJobPosted is the Redis channel new job postings are announced on.
// Each message is a JSON-encoded model.JobPosting.
const EventJobPosted = "EVENT_JOB_POSTED"

// Scheduler wraps robfig/cron and manages the alert evaluation loop.
type Scheduler struct {
	cron      *cron.Cron
	evaluator *alerts.Evaluator
	rdb       *redis.Client // optional; nil disables realtime evaluation
	spec      string        // cron spec, e.g. "@every 15m"
	pubsub    *redis.PubSub
}

// New creates a Scheduler that fires every intervalMinutes minutes.
func New(evaluator *alerts.Evaluator, rdb *redis.Client, intervalMinutes int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		evaluator: evaluator,
		rdb:       rdb,
		spec:      fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the cron job, runs one evaluation cycle immediately so new
// alerts don't wait for the first tick, and subscribes to job-posted events
// for realtime alerts.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.evaluator.RunCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	slog.Info("alert scheduler started", "spec", s.spec)

	// Run immediately on startup (non-blocking)
	go s.evaluator.RunCycle(ctx)

	if s.rdb != nil {
		s.pubsub = s.rdb.Subscribe(ctx, EventJobPosted)
		go s.consumeJobEvents(ctx)
	}

	return nil
}

// Stop shuts down the cron loop and the realtime subscription.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			slog.Warn("close job event subscription", "err", err)
		}
	}
	slog.Info("alert scheduler stopped")
}

// consumeJobEvents feeds every published job posting to the realtime
// evaluator. A malformed message is logged and dropped.
func (s *Scheduler) consumeJobEvents(ctx context.Context) {
	for msg := range s.pubsub.Channel() {
		var job model.JobPosting
		if err := json.Unmarshal([]byte(msg.Payload), &job); err != nil {
			slog.Warn("malformed job-posted event", "err", err)
			continue
		}
		s.evaluator.OnJobPosted(ctx, job)
	}
}
