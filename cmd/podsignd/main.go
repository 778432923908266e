// Command podsignd serves the podsign upload/download UI over HTTP.
//
// Configuration is read from an optional YAML file (-config); the PORT
// environment variable overrides the configured port.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/podsign"
	"github.com/lvillar/podsign/config"
	"github.com/lvillar/podsign/httpapi"
	"github.com/lvillar/podsign/overlay"
)

func main() {
	configPath := flag.String("config", "podsign.yaml", "path to the YAML configuration file")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Fatalf("invalid PORT %q: %v", port, err)
		}
		cfg.Server.Port = p
	}

	opts := []podsign.Option{}
	if cfg.TemplatePath != "" {
		tpl, err := overlay.LoadFile(cfg.TemplatePath)
		if err != nil {
			log.Fatalf("loading overlay template: %v", err)
		}
		opts = append(opts, podsign.WithTemplate(tpl))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := httpapi.NewServer(cfg.Server, podsign.New(opts...), logger)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
