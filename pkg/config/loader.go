package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names consulted for missing credentials
const (
	EnvAccountID = "CORESENDER_SENDING_API_ID"
	EnvAPIKey    = "CORESENDER_SENDING_API_KEY"
)

// ErrInvalidConfiguration is returned when credentials are still missing after the environment fallback
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Load reads the .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env file, but don't fail if missing (environment might be set otherwise)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolveCredentials fills the empty fields of explicit from the environment.
// Explicit values always win; when both are set the environment is not read at all.
// A nil environment means the process environment. Sources are logged through the context logger.
func ResolveCredentials(ctx context.Context, explicit Credentials, environment map[string]string) (Credentials, error) {
	if explicit.Complete() {
		return explicit, nil
	}

	var fromEnv Credentials
	if err := env.ParseWithOptions(&fromEnv, env.Options{Environment: environment}); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	logger := zerolog.Ctx(ctx)
	resolved := explicit
	if resolved.AccountID == "" && fromEnv.AccountID != "" {
		logger.Debug().Str("variable", EnvAccountID).Msg("Setting up account id from environment")
		resolved.AccountID = fromEnv.AccountID
	}
	if resolved.APIKey == "" && fromEnv.APIKey != "" {
		logger.Debug().Str("variable", EnvAPIKey).Msg("Setting up api key from environment")
		resolved.APIKey = fromEnv.APIKey
	}

	if resolved.AccountID == "" {
		return Credentials{}, fmt.Errorf("%w: account id is not set (%s)", ErrInvalidConfiguration, EnvAccountID)
	}
	if resolved.APIKey == "" {
		return Credentials{}, fmt.Errorf("%w: api key is not set (%s)", ErrInvalidConfiguration, EnvAPIKey)
	}
	return resolved, nil
}
