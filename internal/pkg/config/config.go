package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is built once at startup and handed to constructors; nothing reads the
// environment after Load returns.
type Config struct {
	Port     string `env:"PORT,default=5000"`
	Env      string `env:"ENV,default=development" validate:"oneof=development test production"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET,required" validate:"min=16"`
	TokenTTL    time.Duration `env:"JWT_EXPIRES_IN,default=24h" validate:"gt=0"`
	HashCost    int           `env:"HASH_COST,default=10" validate:"min=4,max=31"`
	HashWorkers int           `env:"HASH_WORKERS,default=4" validate:"min=1"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,default=mongodb://localhost:27017" validate:"required"`
	Database string `env:"MONGO_DB,default=employee_feedback_portal" validate:"required"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,default=localhost:6379" validate:"required"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,default=0"`
	CategoryTTL time.Duration `env:"CATEGORY_CACHE_TTL,default=10m" validate:"gt=0"`
}

// IsDevelopment reports whether the service runs with developer conveniences
// such as pretty logs.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads an optional .env file, then the process environment, and validates
// the result.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// MustLoad is Load for process entry points; it panics on failure.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
