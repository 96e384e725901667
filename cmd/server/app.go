package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/swipefeed/internal/config"
	"github.com/phrazzld/swipefeed/internal/events"
	"github.com/phrazzld/swipefeed/internal/feed"
	"github.com/phrazzld/swipefeed/internal/notify"
	"github.com/phrazzld/swipefeed/internal/platform/backend"
	"github.com/phrazzld/swipefeed/internal/redact"
)

// application holds the shared dependencies of the service and owns their
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend *backend.Client
	emitter *events.InMemoryEventEmitter
	inbox   *notify.Inbox
	engine  *feed.Engine
}

// newApplication builds the dependency graph and performs the first feed load.
// A failed first load is logged, not fatal: the feed reports LoadFailed and
// can be reloaded through the API.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.backend, err = backend.NewClient(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	app.inbox = notify.NewInbox(cfg.Feed.NotificationCapacity, logger)
	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(notify.NewToastHandler(app.inbox, logger), notify.EventTypes...)

	opts := feed.OptionsFromConfig(cfg.Feed)
	opts.Emitter = app.emitter
	opts.Logger = logger
	opts.OnPhaseChange = func(from, to feed.AnimationPhase) {
		logger.Debug("animation phase changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	}
	app.engine = feed.NewEngine(app.backend, app.backend, opts)

	if err := app.engine.Load(ctx); err != nil {
		logger.Warn("initial feed load failed", slog.String("error", redact.Error(err)))
	}

	logger.Info("Application initialized successfully",
		"queued_candidates", app.engine.Len(),
		"swipe_threshold", cfg.Feed.SwipeThreshold)
	return app, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup waits for an in-flight decision to reach the backend.
func (app *application) cleanup() {
	if app.engine != nil {
		app.engine.Close()
	}
	app.logger.Info("Application shutdown completed")
}
