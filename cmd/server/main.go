package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"

	"ordercrm/internal/config"
	"ordercrm/internal/handler"
	"ordercrm/internal/service"
	"ordercrm/internal/sheet"
)

func main() {
	cfg := config.New()

	if cfg.InsecureSecretKey() {
		slog.Warn("SECRET_KEY is not set; sessions and CSRF tokens are signed with the insecure default")
	}

	dir, err := service.LoadDirectory(cfg.RolesFile)
	if err != nil {
		slog.Error("failed to load role assignments", "error", err)
		os.Exit(1)
	}

	values := sheet.NewGoogleValues(cfg.SpreadsheetID, cfg.CredentialsFile, cfg.TokenFile)
	store := sheet.NewStore(values)

	access := service.NewAccess()
	orderSvc := service.NewOrderService(store, access)

	h, err := handler.New(orderSvc, access, []byte(cfg.SecretKey))
	if err != nil {
		slog.Error("failed to build handlers", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(csrf.Protect([]byte(cfg.SecretKey), csrf.Secure(cfg.SecureCookies())))

	r.Mount("/", h.Routes(dir))

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
