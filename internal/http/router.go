// Package httpapi assembles the chi router: shared middleware, the open
// health and metrics endpoints, and the operator-only API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ssto/internal/platform/metrics"
	"ssto/internal/platform/middleware"
	"ssto/pkg/platform/httputil"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Validator      middleware.JWTValidator
	RequestTimeout time.Duration
	HealthChecks   map[string]HealthCheck
}

// NewRouter wires every public endpoint. Handlers in routes sit behind
// operator authentication.
func NewRouter(cfg Config, routes ...Registrar) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestContext)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(cfg.Metrics))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", healthHandler(cfg.HealthChecks, logger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOperator(cfg.Validator, logger))
		for _, route := range routes {
			route.Register(r)
		}
	})
	return r
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		report := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				report[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "up"
		}
		body := map[string]any{"status": "ok", "dependencies": report}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
