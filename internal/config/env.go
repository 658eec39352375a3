package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Env is the process environment configuration. mdBook starts a
// preprocessor without command line arguments, so anything not carried by
// book.toml is tuned through MDBOOK_ADMONISH_* variables.
type Env struct {
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseEnv parses the environment configuration.
func ParseEnv() (*Env, error) {
	conf, err := env.ParseAsWithOptions[Env](env.Options{
		Prefix: "MDBOOK_ADMONISH_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
