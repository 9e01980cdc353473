package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Data sources the server can load the result table from.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config holds runtime configuration for the dashboard server.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	DataSource      string        `env:"DATA_SOURCE" envDefault:"csv"`
	DataPath        string        `env:"DATA_PATH" envDefault:"data/world_cup.csv"`
	DBURL           string        `env:"DB_URL"`
	DBTable         string        `env:"DB_TABLE" envDefault:"world_cup_results"`
	CodePolicy      string        `env:"CODE_POLICY" envDefault:"first"`
	RedisURL        string        `env:"REDIS_URL"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"0"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file, then builds a Config from environment variables.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceCSV:
		if c.DataPath == "" {
			return fmt.Errorf("DATA_PATH is required for the %s source", SourceCSV)
		}
	case SourceSQLite:
		if c.DataPath == "" && c.DBURL == "" {
			return fmt.Errorf("DATA_PATH or DB_URL is required for the %s source", SourceSQLite)
		}
	case SourcePostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required for the %s source", SourcePostgres)
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of %s, %s, %s; got %q", SourceCSV, SourceSQLite, SourcePostgres, c.DataSource)
	}

	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}
