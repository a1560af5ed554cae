// SSH noise previewer: every session gets its own pannable, zoomable field
// rendered with truecolor half blocks.
//
// Usage: go run ./cmd/noiseserve -addr :2222, then ssh -t -p 2222 localhost
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/latticenoise/config"
	"github.com/pthm-cable/latticenoise/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "Listen address (empty = use config)")
	hostKey := flag.String("host-key", "", "Path to host key PEM (empty = use config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *hostKey != "" {
		cfg.Server.HostKey = *hostKey
	}

	if err := server.EnsureHostKey(cfg.Server.HostKey); err != nil {
		slog.Error("failed to ensure host key", "error", err)
		os.Exit(1)
	}

	srv, err := server.NewSSHServer(cfg)
	if err != nil {
		slog.Error("failed to create ssh server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		slog.Error("ssh server failed", "error", err)
		os.Exit(1)
	}
}
