package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benbeisheim/chess-server/internal/config"
	"github.com/benbeisheim/chess-server/internal/controller"
	"github.com/benbeisheim/chess-server/internal/service"
	"github.com/benbeisheim/chess-server/internal/storage"
	"github.com/benbeisheim/chess-server/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
	})

	store, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "storage", cfg.Storage, "err", err)
	}
	defer store.Close()

	// Initialize services
	gameManager := service.NewGameManager(store, logger.WithPrefix("games"))
	userService := service.NewUserService(store, logger.WithPrefix("users"))
	gameService := service.NewGameService(gameManager, ws.NewHub(logger.WithPrefix("hub")), logger.WithPrefix("games"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameManager.RunMatchmaking(ctx, cfg.MatchmakingInterval)

	app := controller.NewApp(userService, gameService, cfg.AllowedOrigins, logger)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("Starting server", "addr", cfg.Addr(), "storage", cfg.Storage)
	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error("Listen error", "err", err)
			done <- nil
		}
	}()

	<-done
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Shutdown", "err", err)
	}
	logger.Info("Shutdown complete")
}

func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.Storage != config.StorageBadger {
		return storage.NewMemoryStore(), nil
	}
	if cfg.DataDir == "" {
		return storage.OpenBadgerInMemory()
	}
	return storage.OpenBadger(cfg.DataDir)
}
