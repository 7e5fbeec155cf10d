// Package config loads process configuration once at startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is built once in main and
// passed by reference; nothing mutates it after Load returns.
type Config struct {
	Port     string `env:"PORT" envDefault:"5000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	MongoURI string `env:"MONGO_URI,required"`
	Database string `env:"MONGO_DATABASE" envDefault:"wishlist_db"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// Origins allowed to call the API from a browser.
	ClientOrigins []string `env:"CLIENT_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Requests per minute allowed on signup/login per client key.
	AuthRateRPM int `env:"AUTH_RATE_RPM" envDefault:"10"`
}

// Load reads an optional .env file and parses the environment into a
// Config. A missing .env is not an error; missing required variables are.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
