package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/adapters/backend"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/config"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

// app wires the client stack: config, logger, backend adapter, cache store,
// reconciler, completion flow and the dashboard view.
type app struct {
	log   *slog.Logger
	cfg   config.Config
	api   core.Backend
	store *core.Store
	rec   *core.Reconciler
	flow  *core.Flow
	stats *core.StatsView
}

func newApp(configPath string) *app {
	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	api := backend.NewClient(cfg.BackendAddress, log, cfg.BackendTimeout)
	store := core.NewStore()
	rec := core.NewReconciler(log, store, api)

	return &app{
		log:   log,
		cfg:   cfg,
		api:   api,
		store: store,
		rec:   rec,
		flow:  core.NewFlow(log, rec),
		stats: core.NewStatsView(store, cfg.DailyTarget),
	}
}

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "impulse",
		Short:         "Impulse - gamified personal task manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "client configuration file")

	root.AddCommand(
		listCmd(&configPath),
		addCmd(&configPath),
		addProjectCmd(&configPath),
		doneCmd(&configPath),
		toggleCmd(&configPath),
		subCmd(&configPath),
		reopenCmd(&configPath),
		rmCmd(&configPath),
		moveCmd(&configPath),
		statsCmd(&configPath),
		pointsCmd(&configPath),
		pingCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
