package main

import (
	"log"
	"log/slog"
	"os"

	"meridian/internal/app/bootstrap"
	"meridian/internal/platform/config"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", cfg.ServiceName)

	app, err := bootstrap.BuildAPI(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Server.Start(); err != nil {
		log.Fatalf("meridian api stopped with error: %v", err)
	}
}
