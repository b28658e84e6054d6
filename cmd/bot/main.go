package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ordercrm/internal/bot"
	"ordercrm/internal/config"
	"ordercrm/internal/service"
)

func main() {
	cfg := config.New()

	dir, err := service.LoadDirectory(cfg.RolesFile)
	if err != nil {
		slog.Error("failed to load role assignments", "error", err)
		os.Exit(1)
	}

	b, err := bot.New(cfg.BotToken, cfg.WebAppURL, dir)
	if err != nil {
		slog.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("shutting down...")
		cancel()
	}()

	b.Run(ctx)
}
