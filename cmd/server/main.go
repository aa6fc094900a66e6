package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/splitsnap/splitsnap/internal/api"
	"github.com/splitsnap/splitsnap/internal/config"
	"github.com/splitsnap/splitsnap/internal/state"
	"github.com/splitsnap/splitsnap/internal/storage/sqlite"
	"github.com/splitsnap/splitsnap/pkg/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnv(*configPath)
	logging.Setup(cfg.Logging.Level)

	// Snapshot persistence is best-effort: without it the server still runs,
	// it just forgets everything on restart.
	opts := []state.Option{state.WithHistoryCapacity(cfg.History.Capacity)}
	snaps, err := sqlite.New(cfg.Storage.DatabasePath)
	if err != nil {
		slog.Warn("Snapshot storage unavailable, running in memory only",
			"database", cfg.Storage.DatabasePath, "error", err)
	} else {
		defer snaps.Close()
		opts = append(opts, state.WithSnapshots(snaps))
		slog.Info("Snapshot storage initialized", "database", cfg.Storage.DatabasePath)
	}

	store := state.New(opts...)
	server := api.NewServer(store, cfg.Share.BaseURL)
	router := server.Router(cfg.Server.CORSOrigins)

	slog.Info("Server starting", "address", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
