// Package config loads the runtime configuration from the environment.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-provided configuration surface. Absence of a
// required value is a fatal startup condition.
type Config struct {
	// Port for the local funcframework runner.
	Port string `env:"PORT" envDefault:"8082"`
	// AllowedUsers is a comma-delimited list of admitted emails. Empty
	// means no one is admitted; startup warns but proceeds.
	AllowedUsers string `env:"ALLOWED_USERS_STR"`
	// FirebaseCredentials is the service-account credential bundle as a
	// JSON blob. Empty falls back to application default credentials.
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS_JSON"`
	// FirebaseWebConfig is the web-client configuration JSON served to
	// the single-page client for its login widget.
	FirebaseWebConfig string `env:"FIREBASE_WEB_CONFIG_JSON,required"`
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if !json.Valid([]byte(cfg.FirebaseWebConfig)) {
		return Config{}, fmt.Errorf("FIREBASE_WEB_CONFIG_JSON is not valid JSON")
	}
	if cfg.FirebaseCredentials != "" && !json.Valid([]byte(cfg.FirebaseCredentials)) {
		return Config{}, fmt.Errorf("FIREBASE_CREDENTIALS_JSON is not valid JSON")
	}
	return cfg, nil
}
