package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/odontia/odontia/internal/app"
	"github.com/odontia/odontia/internal/audit"
	audithttp "github.com/odontia/odontia/internal/audit/http"
	"github.com/odontia/odontia/internal/auth"
	"github.com/odontia/odontia/internal/observability"
	"github.com/odontia/odontia/internal/platform/cache"
	"github.com/odontia/odontia/internal/platform/db"
	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/tenancy"
	"github.com/odontia/odontia/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("odontia exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	dbpool, err := db.New(ctx, cfg.PGDSN, "odontia-api")
	if err != nil {
		return err
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr, "odontia-api")
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}

	gateOpts := []policy.GateOption{policy.WithLogger(logger), policy.WithObserver(metrics)}
	if cfg.AuditEnabled {
		queue, err := jobs.NewClient(redisOpts)
		if err != nil {
			return err
		}
		defer func() {
			if err := queue.Close(); err != nil {
				logger.Warn("queue close", slog.Any("error", err))
			}
		}()
		gateOpts = append(gateOpts, policy.WithRecorder(queue))
	}
	gate := policy.NewGate(policy.DefaultRegistry(), gateOpts...)

	authService := auth.NewService(auth.NewRepository(dbpool), cfg.JWTSecret, cfg.JWTIssuer)
	resolver := tenancy.NewResolver(tenancy.NewRepository(dbpool),
		tenancy.WithLogger(logger),
		tenancy.WithObserver(metrics),
	)
	auditService := audit.NewService(audit.NewRepository(dbpool))

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Metrics:        metrics,
		Authenticate:   auth.Middleware(authService, logger),
		Tenancy:        resolver,
		Gate:           gate,
		AbilityHandler: policy.NewAbilityHandler(logger, gate),
		AuditHandler:   audithttp.NewHandler(logger, auditService),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Operations:     app.NotImplemented{},
		Readiness: map[string]app.ReadinessCheck{
			"postgres": dbpool.Ping,
			"redis":    cache.Ping(redisClient),
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
