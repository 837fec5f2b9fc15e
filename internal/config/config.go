package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Canonical store backends.
const (
	StoreCSV      = "csv"
	StorePostgres = "postgres"
	StoreNone     = "none"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Morsel"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
		// File receives TUI logs; empty discards them.
		File   string `envconfig:"LOG_FILE"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"morsel"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Ingest struct {
		SourceDir     string `envconfig:"SOURCE_DIR" default:"data"`
		OnStart       bool   `envconfig:"INGEST_ON_START" default:"true"`
		SkipMalformed bool   `envconfig:"INGEST_SKIP_MALFORMED" default:"false"`
	}

	Canonical struct {
		Store string `envconfig:"CANONICAL_STORE" default:"csv"`
		Path  string `envconfig:"CANONICAL_PATH" default:"formatted_pink_morsel_data.csv"`
	}

	Query struct {
		CacheTTL time.Duration `envconfig:"QUERY_CACHE_TTL" default:"10m"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Canonical.Store {
	case StoreCSV, StorePostgres, StoreNone:
	default:
		return nil, fmt.Errorf("invalid CANONICAL_STORE %q: want %s, %s or %s",
			cfg.Canonical.Store, StoreCSV, StorePostgres, StoreNone)
	}

	return &cfg, nil
}
