// Package main is the entry point for the Etown Exchange API server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/etown-exchange/api/internal/config"
	"github.com/etown-exchange/api/internal/database"
	"github.com/etown-exchange/api/internal/handler"
	"github.com/etown-exchange/api/internal/mailer"
	"github.com/etown-exchange/api/internal/middleware"
	"github.com/etown-exchange/api/internal/repository"
	"github.com/etown-exchange/api/internal/service"
	"github.com/etown-exchange/api/internal/storage"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Starting Etown Exchange API",
		slog.String("environment", cfg.Server.Environment),
		slog.Int("port", cfg.Server.Port),
	)

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations completed")

	// Connect to Redis
	redis, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	// Object storage for listing images
	store, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.Pool())
	profileRepo := repository.NewProfileRepository(db.Pool())
	listingRepo := repository.NewListingRepository(db.Pool())
	favoriteRepo := repository.NewFavoriteRepository(db.Pool())
	reportRepo := repository.NewReportRepository(db.Pool())

	// Services
	mail := mailer.NewSMTPMailer(cfg.SMTP)
	authService := service.NewAuthService(userRepo, redis, mail, service.AuthConfig{
		EmailDomain:       cfg.Auth.EmailDomain,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		VerificationTTL:   cfg.Auth.VerificationTTL,
		BaseURL:           cfg.Server.BaseURL,
	}, logger)
	oauthService := service.NewOAuthService(service.OAuthConfig{
		ClientID:     cfg.Auth.OAuthGoogleID,
		ClientSecret: cfg.Auth.OAuthGoogleSecret,
		CallbackURL:  cfg.Auth.OAuthCallbackURL,
		EmailDomain:  cfg.Auth.EmailDomain,
	}, userRepo)
	listingService := service.NewListingService(listingRepo, profileRepo, userRepo, store, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo, listingRepo)
	reportService := service.NewReportService(reportRepo, listingRepo, userRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)

	// Sessions
	sessionStore := sessions.NewCookieStore([]byte(cfg.Auth.SessionSecret))
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Secure = cfg.Server.Environment == "prod"
	sessionStore.Options.MaxAge = int(cfg.Auth.SessionExpiry.Seconds())

	// Handlers
	authHandler := handler.NewAuthHandler(authService, oauthService, sessionStore, cfg.Auth.SessionExpiry)
	listingHandler := handler.NewListingHandler(listingService, favoriteService, profileService, logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	reportHandler := handler.NewReportHandler(reportService)
	profileHandler := handler.NewProfileHandler(profileService)

	requireAuth := middleware.SessionAuth(sessionStore, authService.GetUserByID)
	optionalAuth := middleware.OptionalSessionAuth(sessionStore, authService.GetUserByID)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(nil))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", healthHandler())
	r.Get("/ready", readyHandler(db, redis))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(redis, middleware.DefaultRateLimitConfig()))

		r.Mount("/", handler.APIRouter(handler.RouterConfig{
			Auth:         authHandler,
			Listings:     listingHandler,
			Favorites:    favoriteHandler,
			Reports:      reportHandler,
			Profiles:     profileHandler,
			RequireAuth:  requireAuth,
			OptionalAuth: optionalAuth,
		}))
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	logger.Info("Server stopped gracefully")
}

// healthHandler reports liveness only.
func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}

// readyHandler verifies the database and Redis connections.
func readyHandler(db *database.Postgres, redis *database.Redis) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")

		if err := db.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","component":"database"}`))
			return
		}
		if err := redis.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","component":"redis"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","database":"connected","redis":"connected"}`))
	}
}
