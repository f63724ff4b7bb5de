// Package app wires configuration, logging, storage, the validation
// engine and the sweep service into a running server.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"blockhold/server/internal/config"
	"blockhold/server/internal/inventory"
	servernet "blockhold/server/internal/net"
	"blockhold/server/internal/storage"
	"blockhold/server/internal/sweep"
	"blockhold/server/internal/telemetry"
	"blockhold/server/internal/validation"
	"blockhold/server/logging"
	loggingSinks "blockhold/server/logging/sinks"
)

// Run starts the service and blocks until the HTTP server exits or the
// context is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := telemetry.WrapLogger(log.Default())

	router, err := buildRouter(cfg)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(context.Background()); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	repo, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}

	catalog := inventory.DefaultCatalog()
	engine := validation.NewEngine(catalog, router)
	counters := telemetry.NewCounters()
	hub := sweep.NewHub(logger)

	sweeper := sweep.NewSweeper(sweep.Config{
		Interval:    cfg.Sweep.Interval.Std(),
		Options:     cfg.Validation,
		AutoCorrect: cfg.Sweep.AutoCorrect,
		DryRun:      cfg.Sweep.DryRun,
	}, repo, engine, router, counters, hub, logger)

	sweepCtx, stopSweeps := context.WithCancel(ctx)
	defer stopSweeps()
	go sweeper.Run(sweepCtx)

	handler := servernet.NewHandler(servernet.HandlerConfig{
		Repository: repo,
		Validator:  engine,
		Options:    cfg.Validation,
		Counters:   counters,
		Hub:        hub,
		Sweeper:    sweeper,
		Router:     router,
		Logger:     logger,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Printf("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func buildRouter(cfg config.Config) (*logging.Router, error) {
	routerCfg := cfg.LoggingRouterConfig()

	var namedSinks []logging.NamedSink
	if routerCfg.HasSink("console") {
		namedSinks = append(namedSinks, logging.NamedSink{Name: "console", Sink: loggingSinks.NewConsole(os.Stdout)})
	}
	if routerCfg.HasSink("json") {
		file, err := os.OpenFile(routerCfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open json log: %w", err)
		}
		namedSinks = append(namedSinks, logging.NamedSink{Name: "json", Sink: loggingSinks.NewJSON(file, routerCfg.JSON.FlushInterval)})
	}

	return logging.NewRouter(nil, routerCfg, namedSinks)
}

func buildRepository(ctx context.Context, cfg config.Config, logger telemetry.Logger) (storage.Repository, error) {
	var repo storage.Repository
	switch cfg.Storage.Backend {
	case "file":
		fileRepo, err := storage.NewFileRepository(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		repo = fileRepo
	default:
		repo = storage.NewMemoryRepository()
	}

	for _, playerID := range cfg.Storage.SeedPlayers {
		if _, err := repo.Load(ctx, playerID); err == nil {
			continue
		}
		if err := repo.Save(ctx, playerID, inventory.NewStarterInventory()); err != nil {
			return nil, fmt.Errorf("seed %s: %w", playerID, err)
		}
		logger.Printf("seeded starter inventory for %s", playerID)
	}
	return repo, nil
}
