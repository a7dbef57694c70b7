// Package main - Entry point for the lab quote server
package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"labquote/adapters/catalogfile"
	"labquote/adapters/mail"
	"labquote/api"
	"labquote/internal/config"
	"labquote/internal/logging"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	catalogPath := flag.String("catalog", "", "path to catalog document (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Logger.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	if *addr != "" {
		cfg.Server.ListenAddr = *addr
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}

	cat, err := catalogfile.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Logger.Fatal("failed to load pricing catalog",
			zap.String("path", cfg.Catalog.Path),
			zap.Error(err))
	}

	var deliverer mail.Deliverer = mail.NopDeliverer{}
	if cfg.Delivery.Enabled {
		smtp, err := config.LoadSMTP()
		if err != nil {
			logging.Logger.Fatal("failed to load SMTP settings", zap.Error(err))
		}
		deliverer = mail.NewSMTPDeliverer(smtp, cfg.Delivery.MaxRetries)
	}

	apiServer := api.NewServer(cat, cfg.Catalog.DefaultServiceKey, version, deliverer)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	logging.Info("lab quote server listening",
		zap.String("addr", cfg.Server.ListenAddr),
		zap.String("catalog", cfg.Catalog.Path),
		zap.Int("services", len(cat.Services)),
		zap.Bool("delivery", cfg.Delivery.Enabled))

	if err := http.ListenAndServe(cfg.Server.ListenAddr, mux); err != nil {
		logging.Logger.Fatal("server exited", zap.Error(err))
	}
}
