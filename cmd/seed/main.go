// Command seed creates the default admin account and the required feedback
// categories. It is idempotent: existing records are left untouched.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
	"github.com/feedback-portal/portal-api/internal/core/security"
	"github.com/feedback-portal/portal-api/internal/core/service"
	"github.com/feedback-portal/portal-api/internal/infrastructure/db/mongo"
	"github.com/feedback-portal/portal-api/internal/infrastructure/queue"
	"github.com/feedback-portal/portal-api/internal/pkg/config"
	"github.com/feedback-portal/portal-api/pkg/logger"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "portal-seed"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer client.Disconnect(context.Background())

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	pool := queue.NewPool(1, log)
	pool.Start(poolCtx)

	auth := service.NewAuthService(
		mongo.NewUserRepository(db),
		security.NewHasher(cfg.Auth.HashCost, pool),
		security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		log,
	)
	categories := service.NewCategoryService(mongo.NewCategoryRepository(db), nil, log)

	if err := seedAdmin(ctx, auth, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	if err := seedCategories(ctx, categories, log); err != nil {
		log.Fatal().Err(err).Msg("seed categories")
	}
	log.Info().Msg("seed complete")
}

func seedAdmin(ctx context.Context, auth ports.AuthService, log zerolog.Logger) error {
	taken, err := auth.UsernameTaken(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if taken {
		log.Info().Str("username", defaultAdminUsername).Msg("admin already exists, skipping")
		return nil
	}

	if _, err := auth.CreateAdmin(ctx, ports.RegisterInput{
		Username: defaultAdminUsername,
		Password: defaultAdminPassword,
		Name:     "Administrator",
	}); err != nil {
		return err
	}
	log.Warn().Str("username", defaultAdminUsername).Msg("default admin created, change its password")
	return nil
}

func seedCategories(ctx context.Context, categories ports.CategoryService, log zerolog.Logger) error {
	for _, c := range domain.RequiredCategories {
		taken, err := categories.NameTaken(ctx, c.Name)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		if _, err := categories.Create(ctx, ports.CreateCategoryInput{Name: c.Name, Description: c.Description}); err != nil {
			return err
		}
		log.Info().Str("category", c.Name).Msg("category created")
	}
	return nil
}
