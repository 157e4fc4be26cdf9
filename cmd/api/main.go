package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/careerai/careerai-go/internal/config"
	"github.com/careerai/careerai-go/internal/crypto"
	"github.com/careerai/careerai-go/internal/genai"
	"github.com/careerai/careerai-go/internal/handler"
	"github.com/careerai/careerai-go/internal/mailer"
	"github.com/careerai/careerai-go/internal/middleware"
	"github.com/careerai/careerai-go/internal/repository"
	"github.com/careerai/careerai-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Env}); err != nil {
			logger.Error("sentry init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	store := newUserStore(cfg, logger)

	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := service.NewAuthService(store, tokens, mailer.NewLogMailer(logger), logger, cfg.BcryptCost)
	authHandler := handler.NewAuthHandler(authService, !cfg.IsProduction())
	coverLetterHandler := handler.NewCoverLetterHandler(genai.NewGenerator(cfg.OpenAIAPIKey, logger))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/auth/register", authHandler.HandleRegister)
		r.Post("/api/auth/login", authHandler.HandleLogin)
		r.Post("/api/auth/refresh-token", authHandler.HandleRefreshToken)
		r.Post("/api/auth/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/api/auth/reset-password", authHandler.HandleResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))
		r.Post("/api/auth/logout", authHandler.HandleLogout)
		r.Get("/api/auth/profile", authHandler.HandleProfile)
		r.Post("/api/ai/cover-letter", coverLetterHandler.HandleGenerate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// newUserStore wires MySQL when a DSN is configured and falls back to the
// in-memory store otherwise.
func newUserStore(cfg config.Config, logger *slog.Logger) repository.UserStore {
	if cfg.DatabaseDSN != "" {
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err == nil {
			logger.Info("using mysql user store")
			return repository.NewMySQLUserStore(db)
		}
		logger.Warn("database connection failed, using in-memory store", "error", err)
	}
	return repository.NewMemoryUserStore()
}
