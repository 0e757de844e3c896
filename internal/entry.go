// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/vetdesk/internal/api"
	"github.com/starford/vetdesk/internal/backend"
	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/kv"
	"github.com/starford/vetdesk/internal/mcpserver"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
	"github.com/starford/vetdesk/internal/source"
	"github.com/starford/vetdesk/internal/sse"
	"github.com/starford/vetdesk/internal/storage"
)

// components is everything Run and RunMCP share.
type components struct {
	cfg     *Config
	logger  *slog.Logger
	store   kv.Store
	fixture *source.Fixture
	svc     *clinic.Service
}

func (c *components) Close() {
	if err := c.store.Close(); err != nil {
		c.logger.Warn("store close failed", slog.String("error", err.Error()))
	}
}

func setup(opts ...Option) (*components, error) {
	app := &application{logOutput: os.Stdout, now: time.Now}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("backend_url", cfg.Backend.BaseURL),
		slog.String("store_driver", cfg.Store.Driver),
		slog.String("fixtures_path", cfg.Fixtures.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := kv.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	fixture := source.NewFixture(source.DefaultDataset(), app.now)
	if cfg.Fixtures.Path != "" {
		if err := fixture.LoadDir(cfg.Fixtures.Path); err != nil {
			logger.Warn("fixtures load failed, using defaults", slog.String("error", err.Error()))
		}
	}

	var src source.Source = fixture
	if !cfg.Backend.Offline() {
		remote := source.NewRemote(backend.New(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout))
		src = source.NewFallback(remote, fixture, logger, app.now)
	} else {
		logger.Info("No backend configured, serving fixtures")
	}

	blobs, err := storage.NewFS(cfg.Uploads.Path)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init uploads: %w", err)
	}

	notes := notify.New(store, notify.WithLogger(logger), notify.WithClock(app.now))
	svc := clinic.NewService(src, notes,
		clinic.WithClock(app.now),
		clinic.WithLogger(logger),
		clinic.WithPaging(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize, cfg.Pagination.Window),
		clinic.WithUploads(clinic.NewUploads(blobs, app.now)),
	)

	return &components{cfg: cfg, logger: logger, store: store, fixture: fixture, svc: svc}, nil
}

// Run starts the HTTP application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	c, err := setup(opts...)
	if err != nil {
		return err
	}
	defer c.Close()

	cfg, logger, svc := c.cfg, c.logger, c.svc

	// SSE broker. Observers run under the deduplicator lock, so the
	// subscriber snapshot reads a copy kept here instead of calling back.
	var latest atomic.Pointer[[]models.Notification]
	broker := sse.NewBroker(sse.WithSnapshot(func() sse.Event {
		var live []models.Notification
		if p := latest.Load(); p != nil {
			live = *p
		}
		return sse.Event{Type: sse.EventNotificationsUpdated, Data: live}
	}))
	defer broker.Close()

	unsubscribe := svc.SubscribeNotifications(func(live []models.Notification) {
		latest.Store(&live)
		broker.Publish(sse.Event{Type: sse.EventNotificationsUpdated, Data: live})
	})
	defer unsubscribe()

	apiRouter := api.NewRouter(svc, api.RouterConfig{
		AuthEnabled:  cfg.Auth.AuthEnabled(),
		Token:        cfg.Auth.Token,
		DefaultEmail: cfg.Notifications.UserEmail,
		MaxUpload:    cfg.Uploads.MaxBytes,
		Events:       broker,
	})

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	sched, err := newScheduler(cfg, svc, logger)
	if err != nil {
		return err
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Fixture hot reload. A reload regenerates the notification feed.
	if cfg.Fixtures.Watch {
		g.Go(func() error {
			err := source.Watch(gCtx, c.fixture, cfg.Fixtures.Path, logger, func() {
				if _, err := svc.RefreshNotifications(gCtx, cfg.Notifications.UserEmail); err != nil {
					logger.Warn("refresh after reload failed", slog.String("error", err.Error()))
				}
			})
			if err != nil {
				logger.Error("fixture watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Background jobs. Populate the live set once before the first tick.
	g.Go(func() error {
		refreshCtx, cancel := context.WithTimeout(gCtx, jobTimeout)
		_, err := svc.RefreshNotifications(refreshCtx, cfg.Notifications.UserEmail)
		cancel()
		if err != nil {
			logger.Warn("initial notification refresh failed", slog.String("error", err.Error()))
		}
		return sched.Run(gCtx)
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the scheduler and watcher exit too.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools over stdio. Logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	c, err := setup(append([]Option{WithLogOutput(os.Stderr)}, opts...)...)
	if err != nil {
		return err
	}
	defer c.Close()

	if _, err := c.svc.RefreshNotifications(ctx, c.cfg.Notifications.UserEmail); err != nil {
		c.logger.Warn("initial notification refresh failed", slog.String("error", err.Error()))
	}

	c.logger.Info("MCP server starting on stdio")
	return mcpserver.New(c.svc, c.cfg.Notifications.UserEmail).ServeStdio()
}
