// Package api implements the HTTP handlers for the matching service.
//
// All user-scoped routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET  /recommendations             → ranked job matches for the caller's profile
//	GET  /jobs/{id}/similar           → jobs similar to one posting
//	GET  /skills/gaps                 → aggregated skill gaps over top recommendations
//	POST /alerts                      → create a job alert
//	GET  /alerts                      → list the caller's alerts
//	GET  /alerts/stats                → derived alert statistics
//	POST /alerts/{id}/pause|resume|delete|evaluate
//	GET  /alerts/{id}/matches         → stored matches for one alert
//	POST /matches/{id}/status         → advance a match through its lifecycle
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/alerts"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/lifecycle"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/matching"
	"github.com/hzaheer48/access-job-recommendation-system-sub001/internal/model"
)

// ProfileSource resolves the caller's candidate profile.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID string) (model.CandidateProfile, error)
}

// Handler holds shared dependencies.
type Handler struct {
	profiles  ProfileSource
	jobs      alerts.JobSource
	catalog   matching.LearningCatalog
	alertSvc  *alerts.Service
	evaluator *alerts.Evaluator
	manager   *lifecycle.Manager
}

// NewHandler returns a configured Handler.
func NewHandler(profiles ProfileSource, jobs alerts.JobSource, catalog matching.LearningCatalog,
	alertSvc *alerts.Service, evaluator *alerts.Evaluator, manager *lifecycle.Manager) *Handler {
	return &Handler{
		profiles:  profiles,
		jobs:      jobs,
		catalog:   catalog,
		alertSvc:  alertSvc,
		evaluator: evaluator,
		manager:   manager,
	}
}

// RegisterRoutes mounts all matching-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /recommendations", h.recommendations)
	mux.HandleFunc("GET /jobs/{id}/similar", h.similarJobs)
	mux.HandleFunc("GET /skills/gaps", h.skillGaps)
	mux.HandleFunc("POST /alerts", h.createAlert)
	mux.HandleFunc("GET /alerts", h.listAlerts)
	mux.HandleFunc("GET /alerts/stats", h.alertStats)
	mux.HandleFunc("POST /alerts/{id}/{action}", h.alertAction)
	mux.HandleFunc("GET /alerts/{id}/matches", h.alertMatches)
	mux.HandleFunc("POST /matches/{id}/status", h.matchStatus)
}

// ─── Matching routes ─────────────────────────────────────────────────────────

func (h *Handler) recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	jsonOK(w, matching.RankRecommendations(profile, jobs))
}

func (h *Handler) similarJobs(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	for _, job := range jobs {
		if job.ID == jobID {
			jsonOK(w, matching.SimilarJobs(job, jobs))
			return
		}
	}
	jsonError(w, fmt.Sprintf("job %q not found", jobID), http.StatusNotFound)
}

func (h *Handler) skillGaps(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	// Analyze against the caller's top recommendations, not the whole corpus.
	ranked := matching.RankRecommendations(profile, jobs)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	target := make([]model.JobPosting, 0, len(ranked))
	for _, m := range ranked {
		target = append(target, m.Job)
	}

	report, err := matching.AnalyzeSkillGaps(r.Context(), profile, target, h.catalog)
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, report)
}

// ─── Alert routes ────────────────────────────────────────────────────────────

func (h *Handler) createAlert(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	var body struct {
		Name      string                 `json:"name"`
		Criteria  model.JobAlertCriteria `json:"criteria"`
		Frequency model.Frequency        `json:"frequency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	alert, err := h.alertSvc.Create(r.Context(), userID, body.Name, body.Criteria, body.Frequency)
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, alert)
}

func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	list, err := h.alertSvc.ListForUser(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, list)
}

func (h *Handler) alertAction(w http.ResponseWriter, r *http.Request) {
	alertID := r.PathValue("id")
	action := r.PathValue("action")

	var (
		alert model.JobAlert
		err   error
	)
	switch action {
	case "pause":
		alert, err = h.alertSvc.Pause(r.Context(), alertID)
	case "resume":
		alert, err = h.alertSvc.Resume(r.Context(), alertID)
	case "delete":
		alert, err = h.alertSvc.Delete(r.Context(), alertID)
	case "evaluate":
		h.evaluateAlert(w, r, alertID)
		return
	default:
		jsonError(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, alert)
}

// evaluateAlert runs one on-demand evaluation for a single alert and returns
// only the newly created matches.
func (h *Handler) evaluateAlert(w http.ResponseWriter, r *http.Request, alertID string) {
	alert, err := h.alertSvc.Get(r.Context(), alertID)
	if err != nil {
		writeErr(w, err)
		return
	}
	jobs, err := h.jobs.ListActiveJobs(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	created, err := h.evaluator.EvaluateAlert(r.Context(), alert, jobs)
	if err != nil {
		writeErr(w, err)
		return
	}
	if created == nil {
		created = []model.JobAlertMatch{}
	}
	jsonOK(w, created)
}

func (h *Handler) alertMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.alertSvc.Matches(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, matches)
}

func (h *Handler) alertStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("x-user-id")
	if userID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	stats, err := h.manager.GetAlertStats(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, stats)
}

func (h *Handler) matchStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "body must contain status", http.StatusBadRequest)
		return
	}

	match, err := h.manager.TransitionMatchStatus(r.Context(), r.PathValue("id"), body.Status)
	if err != nil {
		writeErr(w, err)
		return
	}
	jsonOK(w, match)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// writeErr maps domain errors to HTTP status codes.
func writeErr(w http.ResponseWriter, err error) {
	var verr *alerts.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, verr.Msg, http.StatusBadRequest)
	case errors.Is(err, alerts.ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, alerts.ErrDuplicateMatch):
		jsonError(w, "duplicate match", http.StatusConflict)
	case errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "evaluation timed out", http.StatusGatewayTimeout)
	default:
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
