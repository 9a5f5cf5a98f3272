package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/config"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/services/auth"
	filestorage "github.com/mcoot/gamehub/internal/storage/file"
	redisstorage "github.com/mcoot/gamehub/internal/storage/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	app, err := factory.New(factoryConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Metrics:           app.Metrics,
		AuthService:       app.AuthService,
		Hub:               app.Hub,
		SessionController: app.SessionController,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr
	server := api.NewServer(router, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runCleanup(ctx, app, cfg, logger)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)
	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func factoryConfig(cfg *config.Config, logger *slog.Logger) factory.Config {
	out := factory.Config{
		AuthConfig: auth.Config{
			SessionDuration: cfg.SessionDuration,
			BcryptCost:      cfg.BcryptCost,
		},
		Logger:      logger,
		StorageType: cfg.StorageType,
		SQLitePath:  cfg.SQLitePath,
		Metrics:     metrics.NewManager(),
	}

	switch cfg.StorageType {
	case config.StorageFile:
		fileCfg := filestorage.DefaultConfig()
		fileCfg.Dir = cfg.DataDir
		out.FileConfig = &fileCfg
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.KeyPrefix = cfg.RedisPrefix
		out.RedisConfig = &redisCfg
	}
	return out
}

// runCleanup drops expired login sessions and idle games until ctx ends
func runCleanup(ctx context.Context, app *factory.App, cfg *config.Config, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions := app.AuthService.CleanExpiredSessions()
			games := app.SessionController.CleanIdle(cfg.GameIdleTimeout)
			if sessions > 0 || games > 0 {
				logger.Debug("cleanup",
					slog.Int("expired_sessions", sessions),
					slog.Int("idle_games", games),
				)
			}
		}
	}
}
