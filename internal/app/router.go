package app

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	audithttp "github.com/odontia/odontia/internal/audit/http"
	"github.com/odontia/odontia/internal/observability"
	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/shared"
	"github.com/odontia/odontia/internal/tenancy"
	"github.com/odontia/odontia/jobs"
)

// ReadinessCheck pings one backing service.
type ReadinessCheck func(ctx context.Context) error

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Metrics        *observability.Metrics
	Authenticate   func(http.Handler) http.Handler
	Tenancy        *tenancy.Resolver
	Gate           *policy.Gate
	AbilityHandler *policy.AbilityHandler
	AuditHandler   *audithttp.Handler
	JobHandler     *jobs.Handler
	Operations     Operations
	Readiness      map[string]ReadinessCheck
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	if params.Operations == nil {
		params.Operations = NotImplemented{}
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:       params.Logger,
		Config:       params.Config,
		Metrics:      params.Metrics,
		Authenticate: params.Authenticate,
	}) {
		r.Use(mw)
	}

	if !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readinessHandler(params.Logger, params.Readiness))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api/v1", func(api chi.Router) {
		if params.Tenancy != nil {
			api.Use(params.Tenancy.Middleware)
		}
		if params.AbilityHandler != nil {
			params.AbilityHandler.MountRoutes(api)
		}
		if params.Gate == nil {
			return
		}
		if params.AuditHandler != nil {
			params.AuditHandler.MountRoutes(api, params.Gate.Require(shared.OpDecisionsAudit))
		}
		for _, route := range OperationRoutes() {
			h := params.Operations.Handler(route.Operation)
			if h == nil {
				h = notImplemented
			}
			api.With(params.Gate.Require(route.Operation)).Method(route.Method, route.Pattern, h)
		}
	})

	return r
}

type readinessReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func readinessHandler(logger *slog.Logger, checks map[string]ReadinessCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		report := readinessReport{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("readiness check failed", slog.String("check", name), slog.Any("error", err))
				report.Checks[name] = "unavailable"
				report.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[name] = "ok"
		}
		httpx.JSON(w, status, report)
	}
}
