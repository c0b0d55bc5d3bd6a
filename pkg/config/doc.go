// Package config loads environment variables into tagged structs.
//
// A .env file in the working directory is loaded once, lazily, before the
// first parse; a missing file is not an error. Parsing uses the env struct
// tags understood by github.com/caarlos0/env.
//
// Example:
//
//	type SessionConfig struct {
//	    TokenValidity time.Duration `env:"SESSION_TOKEN_VALIDITY" envDefault:"1h"`
//	    MaxAttempts   int           `env:"SESSION_MAX_AUTH_ATTEMPTS" envDefault:"5"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//	    // Handle error
//	}
package config
