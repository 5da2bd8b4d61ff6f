package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/baxromumarov/donor-wall/internal/api"
	"github.com/baxromumarov/donor-wall/internal/config"
	"github.com/baxromumarov/donor-wall/internal/core"
	"github.com/baxromumarov/donor-wall/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	ctx := context.Background()

	dbStore, err := store.NewStore(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	if err := dbStore.Init(ctx); err != nil {
		slog.Error("failed to init store", "error", err)
		os.Exit(1)
	}

	syncService := core.NewSyncService(dbStore, cfg)

	// The interval trigger is just an external caller of the sync entry point.
	scheduler := core.NewScheduler(syncService, cfg.SyncInterval)
	scheduler.Start(ctx)

	srv := api.NewServer(dbStore, syncService)

	slog.Info("starting server", "port", cfg.Port, "sync_interval", cfg.SyncInterval.String())
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
