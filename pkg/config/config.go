// Package config loads and validates the communities CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the YAML-loadable configuration for a detection run.
type Config struct {
	// Input is the path of the edge-list file to cluster.
	Input string `yaml:"input" validate:"required"`

	// ReportEvery is the merge interval between progress reports.
	ReportEvery int `yaml:"report_every" validate:"min=1,max=1000000"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// SortBy optionally names a vertex metadata key used to order each
	// community's membership in the output.
	SortBy string `yaml:"sort_by"`

	// Ascending selects the sort direction when SortBy is set.
	Ascending bool `yaml:"ascending"`

	// MetricsListen optionally serves Prometheus metrics on this address.
	MetricsListen string `yaml:"metrics_listen" validate:"omitempty,hostname_port"`
}

// Default returns the configuration defaults applied before file values.
func Default() Config {
	return Config{
		ReportEvery: 100,
		LogLevel:    "info",
		Ascending:   true,
	}
}

// Load reads a YAML config file, applies defaults for absent fields, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, param)
		case "hostname_port":
			return fmt.Errorf("%s: must be a host:port address", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}
	return err
}
