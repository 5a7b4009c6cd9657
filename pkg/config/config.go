// Package config loads graphsim settings from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graphsim/pkg/graph"
	"github.com/dd0wney/cluso-graphsim/pkg/similarity"
	"github.com/dd0wney/cluso-graphsim/pkg/tlg"
	"github.com/dd0wney/cluso-graphsim/pkg/validation"
)

// EnvDatabaseURL overrides database_url when set.
const EnvDatabaseURL = "GRAPHSIM_DATABASE_URL"

// Config holds the settings shared by every command.
type Config struct {
	Workers      int    `yaml:"workers" validate:"min=1"`
	Directedness string `yaml:"directedness" validate:"oneof=directed undirected"`
	Metric       string `yaml:"metric" validate:"oneof=sphere veo fuzzy fuzzyjaccard node"`
	// InputFormat is empty to pick the format from each file extension.
	InputFormat string `yaml:"input_format" validate:"omitempty,oneof=borland tlg bf gml"`
	LabelAsID   bool   `yaml:"label_as_id"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`

	DatabaseURL string `yaml:"database_url"`
	DataDir     string `yaml:"data_dir"`
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`

	S3 S3Config `yaml:"s3"`
}

// S3Config selects the AWS profile and region for s3:// locations.
type S3Config struct {
	Profile string `yaml:"profile"`
	Region  string `yaml:"region"`
}

// DefaultWorkers is a quarter of the available CPUs, at least one.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()/4)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Workers:      DefaultWorkers(),
		Directedness: graph.Undirected.String(),
		Metric:       similarity.StrategySphere.String(),
		LogLevel:     "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// The environment is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if url := os.Getenv(EnvDatabaseURL); url != "" {
		cfg.DatabaseURL = url
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	return validation.NewConfigValidator("Config").
		When(c.DatabaseURL != "" && c.DataDir != "", func(cv *validation.ConfigValidator) {
			cv.Custom("DataDir", func() error {
				return fmt.Errorf("data_dir and database_url are mutually exclusive")
			})
		}).
		Validate()
}

// GraphDirectedness returns the configured directedness.
func (c *Config) GraphDirectedness() graph.Directedness {
	if c.Directedness == graph.Directed.String() {
		return graph.Directed
	}
	return graph.Undirected
}

// Format returns the configured input format and whether one was set.
func (c *Config) Format() (tlg.Format, bool, error) {
	if c.InputFormat == "" {
		return 0, false, nil
	}
	f, err := tlg.ParseFormat(c.InputFormat)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}
