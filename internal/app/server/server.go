package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"pdpconsole/internal/domain/audit"
	"pdpconsole/internal/domain/breach"
	"pdpconsole/internal/domain/privacyreq"
	"pdpconsole/internal/platform/apitoken"
	"pdpconsole/internal/platform/config"
	"pdpconsole/internal/platform/crypto"
	"pdpconsole/internal/platform/db"
	"pdpconsole/internal/platform/gateway"
	"pdpconsole/internal/platform/jobs"
	"pdpconsole/internal/platform/metrics"
	"pdpconsole/internal/platform/session"
	"pdpconsole/internal/transport/http/api"
	audithandler "pdpconsole/internal/transport/http/handlers/audit"
	"pdpconsole/internal/transport/http/handlers/console"
	"pdpconsole/internal/transport/http/middleware"
	"pdpconsole/internal/transport/http/views"
)

const sessionSweepInterval = 5 * time.Minute

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
	Sessions *session.Store[*console.Views]
	Router   http.Handler
}

// Deps overrides the external collaborators; zero fields are built from the
// configuration.
type Deps struct {
	Breaches console.BreachGateway
	Requests console.RequestGateway
	Logger   *slog.Logger
}

func New(ctx context.Context, cfg config.Config, deps Deps) (*App, error) {
	if err := errors.Join(breach.ValidateTables(), privacyreq.ValidateTables()); err != nil {
		return nil, fmt.Errorf("record tables: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{Config: cfg, Jobs: jobs.New(), Metrics: metrics.New()}

	var recorder audit.Recorder = audit.Noop{}
	var auditLister audithandler.Lister
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		store := audit.New(pool)
		recorder = audit.NewAsync(store, app.Jobs)
		auditLister = store
	} else {
		logger.Warn("DATABASE_URL not set, console audit trail disabled")
	}

	if deps.Breaches == nil || deps.Requests == nil {
		breaches, requests, err := newGateways(cfg, app.Metrics)
		if err != nil {
			app.Close()
			return nil, err
		}
		if deps.Breaches == nil {
			deps.Breaches = breaches
		}
		if deps.Requests == nil {
			deps.Requests = requests
		}
	}

	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET not set, sessions end on restart")
	}
	sealer, err := crypto.New(cfg.SessionSecret)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("session sealer: %w", err)
	}
	renderer, err := views.New()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("views: %w", err)
	}

	app.Sessions = session.NewStore(sealer, cfg.SessionTTL, cfg.IsProduction(), console.NewViews(console.Deps{
		Breaches: deps.Breaches,
		Requests: deps.Requests,
		Audit:    recorder,
		Logger:   logger,
	}))
	app.Router = app.routes(renderer, auditLister, logger)
	return app, nil
}

// newGateways falls back to gateways that always fail when no API is
// configured, so the views still render and show their load error.
func newGateways(cfg config.Config, observer gateway.Observer) (console.BreachGateway, console.RequestGateway, error) {
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		slog.Warn("API_BASE_URL not set, record views will report load failures")
		return gateway.Unavailable[breach.DataBreach, breach.CreatePayload]{Path: gateway.PathDataBreaches},
			gateway.Unavailable[privacyreq.PrivacyRequest, privacyreq.CreatePayload]{Path: gateway.PathPrivacyRequests},
			nil
	}

	opts := []gateway.Option{gateway.WithObserver(observer)}
	if issuer := apitoken.NewIssuer(cfg.APITokenSecret, cfg.APITokenAudience, cfg.APITokenTTL); issuer.Configured() {
		opts = append(opts, gateway.WithTokenSource(issuer))
	}
	client, err := gateway.New(cfg.APIBaseURL, cfg.APITimeout, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("api client: %w", err)
	}
	return gateway.NewResource[breach.DataBreach, breach.CreatePayload](client, gateway.PathDataBreaches),
		gateway.NewResource[privacyreq.PrivacyRequest, privacyreq.CreatePayload](client, gateway.PathPrivacyRequests),
		nil
}

func (a *App) routes(renderer *views.Renderer, auditLister audithandler.Lister, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.IsProduction()))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.MutationRateLimit(a.Config.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := a.Metrics.Snapshot()
			snapshot["sessions"] = a.Sessions.Len()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	console.NewHandler(a.Sessions, renderer, logger).RegisterRoutes(router)
	audithandler.NewHandler(auditLister).RegisterRoutes(router)
	return router
}

// Start launches the background workers; they stop when ctx is done.
func (a *App) Start(ctx context.Context) {
	a.Jobs.Start(ctx)
	go a.Sessions.Run(ctx, sessionSweepInterval)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, Deps{Logger: logger})
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()
	app.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.APITimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("console listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", "err", err)
		}
	}
}
