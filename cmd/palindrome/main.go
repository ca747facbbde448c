package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	handler "github.com/dariasel12/palindrome-project/internal/adapter/http"
	"github.com/dariasel12/palindrome-project/internal/adapter/memory"
	oteladapter "github.com/dariasel12/palindrome-project/internal/adapter/otel"
	redisadapter "github.com/dariasel12/palindrome-project/internal/adapter/redis"
	riveradapter "github.com/dariasel12/palindrome-project/internal/adapter/river"
	"github.com/dariasel12/palindrome-project/internal/adapter/sqlite"
	"github.com/dariasel12/palindrome-project/internal/app"
	"github.com/dariasel12/palindrome-project/internal/config"
	"github.com/dariasel12/palindrome-project/internal/domain"
	"github.com/dariasel12/palindrome-project/internal/log"
)

const (
	serviceName    = "palindrome"
	serviceVersion = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stderr); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

// run wires adapters from the environment and serves HTTP until ctx is done.
func run(ctx context.Context, logOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := log.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	sqlite.SetMigrationLogger(log.NewGooseLogger(logger))

	// --- Telemetry ---
	if cfg.TelemetryEnabled {
		providers, err := oteladapter.Setup(ctx, telemetryConfig(cfg))
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := providers.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown", slog.Any("error", err))
			}
		}()
	}

	// --- Adapters (out) ---
	repo, publisher, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.TelemetryEnabled {
		traced, err := oteladapter.NewTracingRepository(repo)
		if err != nil {
			return fmt.Errorf("instrumenting repository: %w", err)
		}
		repo = traced
		tracedPublisher, err := oteladapter.NewTracingPublisher(publisher)
		if err != nil {
			return fmt.Errorf("instrumenting publisher: %w", err)
		}
		publisher = tracedPublisher
	}

	// --- Application ---
	svc := app.NewEntryService(repo, publisher)

	// --- Adapters (in) ---
	router := newRouter(svc, cfg.TelemetryEnabled)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("palindrome service listening",
			slog.String("addr", srv.Addr),
			slog.String("store", cfg.StoreBackend),
			slog.String("docs", "http://localhost:"+cfg.Port+"/docs"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// telemetryConfig converts the OTEL_* settings into provider configuration.
// OTLP runs without TLS in development.
func telemetryConfig(cfg *config.Config) oteladapter.Config {
	return oteladapter.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Exporter:       cfg.Exporter,
		Insecure:       cfg.Environment == "development",
	}
}

// newRouter builds the chi router with the Huma API mounted on it.
func newRouter(svc *app.EntryService, traced bool) *chi.Mux {
	router := chi.NewMux()
	if traced {
		router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))
	}
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	api := humachi.New(router, huma.DefaultConfig("Palindrome Generator API", serviceVersion))
	handler.Register(api, svc)

	return router
}

// openStore selects the repository backend and the matching event publisher.
// The returned cleanup releases everything that was opened.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EntryRepository, domain.EventPublisher, func(), error) {
	fallback := &logPublisher{logger: logger}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return memory.New(), fallback, func() {}, nil

	case config.BackendRedis:
		repo, err := redisadapter.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis: %w", err)
		}
		return repo, fallback, func() { repo.Close() }, nil
	}

	var repo *sqlite.EntryRepository
	if cfg.TelemetryEnabled {
		db, err := oteladapter.OpenDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database: %w", err)
		}
		repo, err = sqlite.NewFromDB(db)
		if err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("database: %w", err)
		}
	} else {
		var err error
		repo, err = sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database: %w", err)
		}
	}

	if !cfg.EventsEnabled {
		return repo, fallback, func() { repo.Close() }, nil
	}

	client, err := riveradapter.Setup(ctx, repo.DB(), logger)
	if err != nil {
		repo.Close()
		return nil, nil, nil, fmt.Errorf("river: %w", err)
	}
	if err := client.Start(context.WithoutCancel(ctx)); err != nil {
		repo.Close()
		return nil, nil, nil, fmt.Errorf("river start: %w", err)
	}

	cleanup := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Stop(stopCtx); err != nil {
			logger.Error("river stop", slog.Any("error", err))
		}
		repo.Close()
	}

	return repo, riveradapter.NewPublisher(client), cleanup, nil
}

// logPublisher is the EventPublisher used when River is not available.
type logPublisher struct {
	logger *slog.Logger
}

func (p *logPublisher) Publish(ctx context.Context, event domain.Event, entry domain.Entry) error {
	p.logger.InfoContext(ctx, "entry event",
		slog.String("event", string(event)),
		slog.String("entry_id", entry.ID),
	)
	return nil
}
