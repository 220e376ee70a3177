// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/logman/internal/sink"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// Environment holds the logging defaults read from the process environment.
type Environment struct {
	Directory string `env:"LOGMAN_DIR"`
	Format    string `env:"LOGMAN_FORMAT" envDefault:"json"`
}

// LoadEnvironment reads and validates the logging environment variables.
func LoadEnvironment() (*Environment, error) {
	var envVars Environment
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	// a variable set to the empty string behaves like an unset one
	if envVars.Format == "" {
		envVars.Format = string(sink.FormatJSON)
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Environment) error {
	envError := make([]string, 0)

	if _, err := sink.ParseFormat(envVars.Format); err != nil {
		envError = append(envError, "LOGMAN_FORMAT must be one of json, csv")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}

// DefaultDirectory returns the log root used when neither the environment
// nor the caller provides one, relative to the process working directory.
func DefaultDirectory() string {
	return filepath.Join("data", "logs")
}
