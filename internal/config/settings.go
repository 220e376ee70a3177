// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logman/internal/sink"
)

var (
	// ErrParsing reports failures that occur while decoding settings files.
	ErrParsing = errors.New("error parsing")
)

// Settings holds the manager configuration loaded from a settings file.
// YAML and JSON files are both supported.
type Settings struct {
	Directory     string `json:"directory,omitempty" yaml:"directory,omitempty"`
	DefaultFormat string `json:"defaultFormat,omitempty" yaml:"defaultFormat,omitempty"`
}

// NewSettingsFromPath loads and validates the settings found at path.
func NewSettingsFromPath(path string) (*Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	settings := new(Settings)
	if err := yaml.NewDecoder(file).Decode(settings); err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrParsing, path, err.Error())
	}

	if settings.DefaultFormat != "" {
		if _, err := sink.ParseFormat(settings.DefaultFormat); err != nil {
			return nil, fmt.Errorf("%w %q: %s", ErrParsing, path, err.Error())
		}
	}

	return settings, nil
}
