package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/secureitservices/leadgate/internal/http/handlers"
	httpmiddleware "github.com/secureitservices/leadgate/internal/http/middleware"
	"github.com/secureitservices/leadgate/internal/leads"
	"github.com/secureitservices/leadgate/internal/observability/metrics"
	"github.com/secureitservices/leadgate/pkg/logging"
)

const (
	globalLimitMessage  = "Too many requests from this IP, please try again later."
	contactLimitMessage = "Too many contact form submissions, please try again later."
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	LeadsHandler *leads.Handler
	AdminLeads   *handlers.AdminLeadsHandler
	Health       *handlers.HealthHandler

	// GlobalLimiter guards all endpoints; ContactLimiter additionally
	// guards the submission endpoint with a stricter window.
	GlobalLimiter  httpmiddleware.Limiter
	ContactLimiter httpmiddleware.Limiter

	Metrics        *metrics.IntakeMetrics
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// StaticDir, when set, serves the marketing site itself.
	StaticDir string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.GlobalLimiter != nil {
		r.Use(httpmiddleware.RateLimit(cfg.GlobalLimiter, globalLimitMessage, nil))
	}

	r.Get("/health", cfg.Health.Check)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		contact := api.With()
		if cfg.ContactLimiter != nil {
			contact = api.With(httpmiddleware.RateLimit(cfg.ContactLimiter, contactLimitMessage, func() {
				cfg.Metrics.ObserveSubmission(metrics.OutcomeRateLimited)
			}))
		}
		contact.Post("/contact", cfg.LeadsHandler.Submit)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Get("/leads", cfg.AdminLeads.Dashboard)
		admin.Get("/leads/download", cfg.AdminLeads.Export)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Endpoint not found"})
		})
	}

	return r
}
