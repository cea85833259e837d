package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	DriverSQLite   StoreDriver = "sqlite"
	DriverPostgres StoreDriver = "postgres"
	DriverMemory   StoreDriver = "memory"
)

type Config struct {
	HTTPAddr    string      `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    slog.Level  `env:"LOG_LEVEL" envDefault:"INFO"`
	StoreDriver StoreDriver `env:"STORE_DRIVER" envDefault:"sqlite"`
	DBPath      string      `env:"DB_PATH" envDefault:"data/geoduel.db"`
	PostgresDSN string      `env:"POSTGRES_DSN"`
	// RedisURL enables the cross-instance change feed when set.
	RedisURL          string  `env:"REDIS_URL"`
	TxMaxAttempts     int     `env:"TX_MAX_ATTEMPTS" envDefault:"5"`
	RateLimitRPS      float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst    int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
	AdminPasswordHash string  `env:"ADMIN_PASSWORD_HASH"`
	PublicURL         string  `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
}

// Load reads .env files when present, then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.TxMaxAttempts < 1 {
		return fmt.Errorf("TX_MAX_ATTEMPTS must be positive, got %d", c.TxMaxAttempts)
	}
	return nil
}
