// Package main runs the swipe feed service: it loads candidate profiles from
// the backend and exposes a feed session API that turns pointer and button
// input into interested/ignored decisions.
package main

import (
	"context"
	"fmt"
	"log"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("swipefeed: %v", err)
	}
}

// run wires configuration, logging and the application, then serves until a
// shutdown signal arrives or ctx is cancelled.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
