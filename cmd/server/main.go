package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-tracker/backend/internal/cache"
	"project-tracker/backend/internal/config"
	"project-tracker/backend/internal/database"
	"project-tracker/backend/internal/handlers"
	"project-tracker/backend/internal/middleware"
	"project-tracker/backend/internal/monitoring"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database migrated")

	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisCache.Close()

	accessService := services.NewAccessService(db)
	policy := services.NewPolicyService(accessService)
	projectService := services.NewProjectService(db)
	taskService := services.NewTaskService(db)
	sessionService := services.NewSessionService(redisCache, cfg.Auth.RefreshTokenTTL)
	authService := services.NewAuthService(db, sessionService, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	registerService := services.NewRegisterService(db, cfg.Auth.BCryptCost)

	var rateLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		rateLimit = middleware.NewRateLimiter(cfg.RateLimit).Middleware()
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Register:  handlers.NewRegisterHandler(registerService),
		Auth:      handlers.NewAuthHandler(authService),
		Projects:  handlers.NewProjectHandler(projectService, taskService, accessService, policy),
		Members:   handlers.NewMemberHandler(projectService, policy),
		Tasks:     handlers.NewTaskHandler(projectService, taskService, policy),
		JWTSecret: cfg.Auth.JWTSecret,
		RateLimit: rateLimit,
		Health: map[string]monitoring.HealthCheckFunc{
			"database": func(ctx context.Context) error { return pingDatabase(ctx, db) },
			"redis":    redisCache.Health,
		},
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func pingDatabase(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
