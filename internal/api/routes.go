package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router for the campaign API.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Get("/platforms", h.GetPlatforms)

		// Campaign planning and execution
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.CreateCampaign)
			r.Get("/", h.ListCampaigns)
			r.Get("/{campaignID}", h.GetCampaign)
			r.Post("/{campaignID}/schedule", h.ScheduleCampaign)
			r.Post("/{campaignID}/execute", h.ExecuteCampaign)
			r.Get("/{campaignID}/status", h.GetCampaignStatus)
		})

		// Calendar views and event lifecycle
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", h.GetCalendar)
			r.Get("/upcoming", h.GetUpcomingEvents)
			r.Get("/summary", h.GetCalendarSummary)
			r.Post("/events/{campaignID}/execute", h.ExecuteCalendarEvent)
			r.Post("/events/{campaignID}/delay", h.DelayCalendarEvent)
			r.Post("/events/{campaignID}/cancel", h.CancelCalendarEvent)
		})

		// Analytics and reporting
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", h.GetAnalytics)
			r.Post("/analyze", h.AnalyzePerformance)
			r.Get("/{platform}", h.GetPlatformAnalytics)
		})
		r.Get("/reports/performance", h.GetPerformanceReport)

		// End-to-end workflow
		r.Post("/workflows", h.RunWorkflow)
	})

	return r
}
