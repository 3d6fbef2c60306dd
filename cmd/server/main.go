package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"teadesk-system/internal/auth"
	"teadesk-system/internal/common/httpx"
	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/config"
	"teadesk-system/internal/connections/rabbitmq"
	"teadesk-system/internal/handlers"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/service"
	"teadesk-system/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (default: first of config.yaml, config.yml)")
	port := flag.Int("port", 0, "override HTTP port")
	flag.Parse()

	lg := logger.New("teadesk-server")

	// .env is optional, local development convenience
	_ = godotenv.Load()

	path := *cfgPath
	if path == "" {
		if found, err := config.FindConfig(); err == nil {
			path = found
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := storage.New(lg)
	resolver := storage.NewResolver(cfg.Server.DataDir)
	repo := repository.New(store, resolver)

	var pub service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitmq.Dial(rabbitmq.Config{
			Host:     cfg.RabbitMQ.Host,
			Port:     cfg.RabbitMQ.Port,
			User:     cfg.RabbitMQ.User,
			Password: cfg.RabbitMQ.Password,
			VHost:    cfg.RabbitMQ.VHost,
		})
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, map[string]any{"host": cfg.RabbitMQ.Host})
			os.Exit(1)
		}
		defer rmq.Close()
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "port": cfg.RabbitMQ.Port})
		pub = rmq
	}

	svc := service.New(repo, store, pub, lg)
	authn := auth.New(
		cfg.Auth.Username,
		cfg.Auth.PasswordHash,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	h := handlers.New(svc, authn, lg, cfg.Server.DataDir, cfg.Server.CORSOrigins)

	lg.Info("service_started", map[string]any{
		"port":         cfg.Server.Port,
		"data_dir":     cfg.Server.DataDir,
		"events":       cfg.RabbitMQ.Enabled,
		"auth_enabled": authn.Enabled(),
	})

	srv := httpx.New(":"+strconv.Itoa(cfg.Server.Port), h.Router())
	if err := srv.Run(ctx); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	lg.Info("service_stopped", nil)
}
