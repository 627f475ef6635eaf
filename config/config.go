// config.go - Handles configuration for the project

package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11" // Environment parsing into tagged struct
	"github.com/joho/godotenv"    // Optional .env file support
)

// Config holds all configuration values. Every field can be set from the
// environment; an optional .env file in the working directory is read first.
type Config struct {
	Port            string        `env:"PORT" envDefault:"5000"`                           // HTTP listen port
	DBPath          string        `env:"DB_PATH" envDefault:"bistro.db"`                   // Path to the SQLite database file
	Env             string        `env:"APP_ENV" envDefault:"development"`                 // development or production
	JWTSecret       string        `env:"SECRET_ACCESS_TOKEN"`                              // HMAC secret, required outside development
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`                        // Access token validity window
	StripeSecretKey string        `env:"STRIPE_PAYMENT_SK"`                                // Payment provider secret key
	Currency        string        `env:"PAYMENT_CURRENCY" envDefault:"usd"`                // Currency for payment intents
	MQTTBroker      string        `env:"MQTT_BROKER"`                                      // Kitchen broker address, empty disables publishing
	KitchenTopic    string        `env:"KITCHEN_TOPIC" envDefault:"bistro/kitchen/orders"` // Topic for paid orders
	AdminEmail      string        `env:"ADMIN_EMAIL"`                                      // Bootstrap admin, created once if set
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`     // Allowed CORS origins
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`                      // debug, info, warn or error
}

// devSecret signs tokens in development when SECRET_ACCESS_TOKEN is unset.
const devSecret = "supersecret"

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // Missing .env is fine, real env vars still apply

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SECRET_ACCESS_TOKEN is required when APP_ENV=%s", cfg.Env)
		}
		cfg.JWTSecret = devSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// IsDevelopment reports whether insecure development defaults may apply.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
