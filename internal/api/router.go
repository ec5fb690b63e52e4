package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/observability/metrics"
)

// RouterConfig зависимости роутера
type RouterConfig struct {
	Handler        *Handler
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	CORSOrigins    []string
	RateLimiter    *RateLimiter
}

// NewRouter собирает chi роутер API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(cfg.CORSOrigins))

	r.Get("/health", cfg.Handler.Health)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimit(cfg.RateLimiter, cfg.Metrics, cfg.Logger))
		}
		r.Post("/booking", cfg.Handler.CreateBooking)
		r.Post("/contact", cfg.Handler.CreateContact)
		r.Post("/growth-plan", cfg.Handler.CreateGrowthPlan)
	})

	return r
}
