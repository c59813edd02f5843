package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inotebook-server/internal/config"
	"inotebook-server/internal/handler"
	"inotebook-server/internal/idempotency"
	"inotebook-server/internal/middleware"
	"inotebook-server/internal/repository"
	"inotebook-server/internal/service"
	"inotebook-server/internal/validation"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	store, err := repository.Open(startupCtx, cfg.Database.URL(), cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to open CouchDB store: %v", err)
	}
	defer store.Close()

	var redisClient *redis.Client
	var deduper middleware.Deduper
	if cfg.Redis.URL != "" {
		redisClient, err = idempotency.Connect(startupCtx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		deduper = idempotency.NewRedisDeduper(redisClient, cfg.Redis.IdempotencyTTL)
		log.WithField("ttl", cfg.Redis.IdempotencyTTL).Info("Idempotency-Key handling enabled")
	}

	userRepo := repository.NewUserRepository(store.Client(), store.DBName())
	noteRepo := repository.NewNoteRepository(store.Client(), store.DBName())

	v := validation.New()

	authService := service.NewAuthService(userRepo, v, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshTokenExpiration)
	userService := service.NewUserService(userRepo)
	noteService := service.NewNoteService(noteRepo, v)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.TrustProxyHeaders)
	}

	r := handler.NewRouter(handler.RouterConfig{
		Auth:        authHandler,
		Users:       userHandler,
		Notes:       noteHandler,
		Tokens:      authService,
		Deduper:     deduper,
		RateLimiter: limiter,
		Health:      store,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr: addr,
		Handler: middleware.CORSMiddleware(
			cfg.CORS.AllowedOrigins,
			cfg.CORS.AllowedMethods,
			cfg.CORS.AllowedHeaders,
		)(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"addr": addr, "env": cfg.Server.Env}).Info("Starting iNotebook server")
		log.WithFields(log.Fields{"host": cfg.Database.Host, "port": cfg.Database.Port, "db": cfg.Database.Name}).Info("Connected to CouchDB")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.Logging.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Server.Env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
