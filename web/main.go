package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/df07/go-raytracer-core/internal/config"
	"github.com/df07/go-raytracer-core/internal/logger"
	"github.com/df07/go-raytracer-core/web/server"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default ./"+config.DefaultPath+" if present)")
	port := flag.Int("port", 0, "Port to serve on (overrides the config file)")
	scenesDir := flag.String("scenes", "", "Directory of .yaml scene files (overrides the config file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *scenesDir != "" {
		cfg.Server.ScenesDir = *scenesDir
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("Raytracer web server",
		zap.String("url", fmt.Sprintf("http://localhost:%d/api/scenes", cfg.Server.Port)))

	if err := server.NewServer(cfg, logger.Log).Start(ctx); err != nil {
		logger.Log.Error("Server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
