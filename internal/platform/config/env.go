// Package config holds process configuration helpers shared by commands.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from the process environment, applying
// envDefault tags for unset variables.
func ParseEnv(target any) error {
	return ParseEnvWithOptions(target, env.Options{})
}

// ParseEnvWithOptions loads configuration with explicit parser options, such
// as a fixed environment map.
func ParseEnvWithOptions(target any, opts env.Options) error {
	if target == nil {
		return errors.New("config target is required")
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
