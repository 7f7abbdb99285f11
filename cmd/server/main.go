// Command server runs the employee feedback portal API.
//
// @title                       Employee Feedback Portal API
// @version                     1.0
// @description                 Anonymous employee feedback with admin moderation.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/feedback-portal/portal-api/internal/api"
	"github.com/feedback-portal/portal-api/internal/api/handler"
	"github.com/feedback-portal/portal-api/internal/core/security"
	"github.com/feedback-portal/portal-api/internal/core/service"
	"github.com/feedback-portal/portal-api/internal/infrastructure/db/mongo"
	"github.com/feedback-portal/portal-api/internal/infrastructure/db/redis"
	"github.com/feedback-portal/portal-api/internal/infrastructure/queue"
	"github.com/feedback-portal/portal-api/internal/pkg/config"
	"github.com/feedback-portal/portal-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portal-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	// The pool outlives the signal context; serve stops it once in-flight
	// requests have drained.
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	pool := queue.NewPool(cfg.Auth.HashWorkers, logger.Component("hash-pool"))
	pool.Start(poolCtx)

	hasher := security.NewHasher(cfg.Auth.HashCost, pool)
	tokens := security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(mongo.NewUserRepository(db), hasher, tokens, logger.Component("auth"))
	categoryService := service.NewCategoryService(
		mongo.NewCategoryRepository(db),
		redis.NewCategoryCache(rdb, cfg.Redis.CategoryTTL),
		logger.Component("category"),
	)
	feedbackService := service.NewFeedbackService(mongo.NewFeedbackRepository(db), logger.Component("feedback"))

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Categories: categoryService,
		Feedback:   feedbackService,
		Tokens:     tokens,
		Logger:     logger.Component("http"),
		Checks: map[string]handler.Check{
			"mongodb": mongo.Ping(db),
			"redis":   redis.Ping(rdb),
		},
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
	if err := serve(ctx, e, ":"+cfg.Port, shutdownTimeout, stopPool, log); err != nil {
		log.Error().Err(err).Msg("http server error")
	}
}
