// Package api exposes the campaign pipeline over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/campaign-planner/internal/calendar"
	"github.com/ignite/campaign-planner/internal/orchestrator"
	"github.com/ignite/campaign-planner/internal/platform"
)

// Handlers holds the HTTP handlers for the campaign API.
type Handlers struct {
	orch *orchestrator.Orchestrator
}

// NewHandlers creates the handler set around a shared orchestrator.
func NewHandlers(orch *orchestrator.Orchestrator) *Handlers {
	return &Handlers{orch: orch}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck reports service liveness.
// GET /api/health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"timestamp":      time.Now(),
		"campaigns":      len(h.orch.Campaigns()),
		"posts_executed": h.orch.Executor().Simulator().PostCount(),
	})
}

// GetPlatforms returns the profile and content template tables.
// GET /api/platforms
func (h *Handlers) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"platforms": platform.BuiltIn(),
		"profiles":  platform.Profiles(),
		"templates": platform.Templates(),
	})
}

// CreateCampaign plans a campaign and registers it.
// POST /api/campaigns
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req orchestrator.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.orch.PlanCampaign(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, plan)
}

// ListCampaigns returns every registered campaign plan.
// GET /api/campaigns
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	plans := h.orch.Campaigns()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": plans,
		"total":     len(plans),
	})
}

// GetCampaign returns one campaign plan by id.
// GET /api/campaigns/{campaignID}
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	plan, ok := h.orch.Campaign(campaignID)
	if !ok {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

type scheduleRequest struct {
	Frequency string     `json:"frequency"`
	StartDate *time.Time `json:"start_date,omitempty"`
}

// ScheduleCampaign expands a campaign into calendar events. An unknown
// campaign id mirrors the core semantics: an empty result, not an error.
// POST /api/campaigns/{campaignID}/schedule
func (h *Handlers) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Frequency == "" {
		req.Frequency = string(calendar.FrequencyOnce)
	}

	frequency, err := calendar.ParseFrequency(req.Frequency)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, ok := h.orch.Campaign(campaignID)
	if !ok {
		log.Printf("API: campaign %s not found, nothing scheduled", campaignID)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"events":          []interface{}{},
			"total_scheduled": 0,
		})
		return
	}

	start := plan.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}

	events, err := h.orch.Calendar().ScheduleCampaignAcrossPlatforms(
		campaignID, plan.Name, plan.Platforms, plan.Content, start, frequency)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events":          events,
		"total_scheduled": len(events),
	})
}

// ExecuteCampaign runs the direct executor path for a campaign.
// POST /api/campaigns/{campaignID}/execute
func (h *Handlers) ExecuteCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	result, err := h.orch.ExecuteCampaign(campaignID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetCampaignStatus reports the execution log state for a campaign.
// GET /api/campaigns/{campaignID}/status
func (h *Handlers) GetCampaignStatus(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	respondJSON(w, http.StatusOK, h.orch.Executor().GetExecutionStatus(campaignID))
}

// GetCalendar returns the rendered calendar view plus the raw events.
// GET /api/calendar?start=RFC3339&days=7
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r, 7)

	var start time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "start must be RFC3339")
			return
		}
		start = parsed
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"view":   h.orch.Calendar().View(start, days),
		"events": h.orch.Calendar().Events(),
	})
}

// GetUpcomingEvents lists events due within the given window.
// GET /api/calendar/upcoming?days=7
func (h *Handlers) GetUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	days := parseDays(r, 7)
	events := h.orch.Calendar().UpcomingEvents(days)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
		"days":   days,
	})
}

// GetCalendarSummary returns the per-platform event counts.
// GET /api/calendar/summary
func (h *Handlers) GetCalendarSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.orch.Calendar().PlatformSummary()

	total := 0
	for _, n := range summary {
		total += n
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"platforms":    summary,
		"total_events": total,
	})
}

// ExecuteCalendarEvent marks one scheduled event executed with the
// calendar's hash-derived metrics.
// POST /api/calendar/events/{campaignID}/execute
func (h *Handlers) ExecuteCalendarEvent(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	event, ok := h.orch.Calendar().FindEvent(campaignID)
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	h.orch.Calendar().ExecuteEvent(event)
	respondJSON(w, http.StatusOK, event)
}

type delayRequest struct {
	NewTime time.Time `json:"new_time"`
}

// DelayCalendarEvent moves a scheduled event to a new time.
// POST /api/calendar/events/{campaignID}/delay
func (h *Handlers) DelayCalendarEvent(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var req delayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewTime.IsZero() {
		respondError(w, http.StatusBadRequest, "new_time is required")
		return
	}

	event, ok := h.orch.Calendar().FindEvent(campaignID)
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := h.orch.Calendar().DelayEvent(event, req.NewTime); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// CancelCalendarEvent cancels a scheduled event.
// POST /api/calendar/events/{campaignID}/cancel
func (h *Handlers) CancelCalendarEvent(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	event, ok := h.orch.Calendar().FindEvent(campaignID)
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	if err := h.orch.Calendar().CancelEvent(event); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// GetAnalytics returns the aggregate analytics for every platform.
// GET /api/analytics
func (h *Handlers) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analytics":    h.orch.TrackPerformance(),
		"generated_at": time.Now(),
	})
}

// GetPlatformAnalytics returns the aggregate for one platform.
// GET /api/analytics/{platform}
func (h *Handlers) GetPlatformAnalytics(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "platform")
	respondJSON(w, http.StatusOK, h.orch.Executor().Simulator().GetPlatformAnalytics(name))
}

// AnalyzePerformance runs the agent-backed analysis over the current
// analytics, falling back to the basic summary when the agent is off.
// POST /api/analytics/analyze
func (h *Handlers) AnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	analysis := h.orch.Analyzer().AnalyzeCampaignPerformance(r.Context(), h.orch.TrackPerformance())
	respondJSON(w, http.StatusOK, analysis)
}

// GetPerformanceReport renders the text report and saves a copy under the
// outputs directory.
// GET /api/reports/performance
func (h *Handlers) GetPerformanceReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.orch.GeneratePerformanceReport()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

// RunWorkflow drives the complete pipeline for one campaign.
// POST /api/workflows
func (h *Handlers) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	var req orchestrator.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.orch.RunCompleteWorkflow(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func parseDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
