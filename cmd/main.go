// matching-service
//
// Skill-based job matching and alerting engine.
// Exposes a REST API used by the Gateway to implement:
//   - job recommendations, similar-jobs and skill gap analysis
//   - job alert CRUD and on-demand evaluation
//   - match status lifecycle and alert statistics
//
// A cron loop periodically evaluates every due alert; realtime alerts are
// additionally driven by EVENT_JOB_POSTED messages on Redis. New matches are
// published as EVENT_ALERT_MATCH, status changes as EVENT_MATCH_STATUS.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/api"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/config"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/db"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/lifecycle"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/scheduler"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/source"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[matching-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[matching-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[matching-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[matching-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[matching-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[matching-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[matching-service] Redis connected ✓")

	// ── Wiring ───────────────────────────────────────────────────────────────
	store := alerts.NewPostgresStore(pool)
	jobs := source.NewPostgresJobSource(pool)
	profiles := source.NewPostgresProfileSource(pool)
	catalog := source.NewPostgresCatalog(pool)

	evaluator := alerts.NewEvaluator(store, jobs, rdb,
		time.Duration(cfg.AlertTimeoutSeconds)*time.Second)
	alertSvc := alerts.NewService(store)
	manager := lifecycle.NewManager(store, rdb)

	sched := scheduler.New(evaluator, rdb, cfg.AlertIntervalMinutes)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[matching-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := api.NewHandler(profiles, jobs, catalog, alertSvc, evaluator, manager)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[matching-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[matching-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[matching-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[matching-service] Shutdown error: %v", err)
	}
	log.Println("[matching-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "matching-service",
		"version": version,
	})
}
