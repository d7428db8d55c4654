package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Config is the complete runtime configuration, read from the environment.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"go-chi-calculator"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	TracesEnabled  bool   `env:"OTEL_TRACES_ENABLED" envDefault:"true"`
	MetricsEnabled bool   `env:"OTEL_METRICS_ENABLED" envDefault:"true"`
	LogsEnabled    bool   `env:"OTEL_LOGS_ENABLED" envDefault:"false"`

	// Locale is a BCP 47 tag controlling digit grouping on the display and
	// in history records.
	Locale string `env:"CALCULATOR_LOCALE" envDefault:"en-US"`

	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	SessionCookieSecure  bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Load reads .env (if present) and then the process environment. Variables
// already set in the process win over .env.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("CALCULATOR_LOCALE %q: %w", c.Locale, err))
	}
	for name, d := range map[string]time.Duration{
		"SHUTDOWN_TIMEOUT":       c.ShutdownTimeout,
		"SESSION_TTL":            c.SessionTTL,
		"SESSION_SWEEP_INTERVAL": c.SessionSweepInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Language returns the parsed locale. Call only on a validated Config.
func (c Config) Language() language.Tag {
	return language.MustParse(c.Locale)
}
