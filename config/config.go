package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type AppConfig struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Timezone string `env:"TZ" envDefault:"America/Bahia"`

	// sqlite | postgres
	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"DB_PATH" envDefault:"cacau.db"`
	DBDSN    string `env:"DB_DSN"`

	// empty keeps every gateway local
	APIBaseURL string        `env:"API_BASE_URL"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`

	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads the given .env files (".env" when none) and then the
// environment. Missing files are not an error.
func Load(files ...string) (AppConfig, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg AppConfig
	if err := ParseEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DBDSN == "" {
			return AppConfig{}, errors.New("DB_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return AppConfig{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Location is the configured timezone, UTC when TZ is unknown.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Fields renders the config for the startup log. The DSN is left out.
func (c AppConfig) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("tz", c.Timezone),
		zap.String("db_driver", c.DBDriver),
		zap.String("db_path", c.DBPath),
		zap.Bool("db_dsn_set", c.DBDSN != ""),
		zap.String("api_base_url", c.APIBaseURL),
		zap.Duration("api_timeout", c.APITimeout),
		zap.String("log_level", c.LogLevel),
	}
}
