// Package config is the single source of truth for run configuration and
// file locations. All paths are resolved through the Paths type; nothing
// else in the application constructs an artifact path on its own.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Charts  ChartsConfig  `yaml:"charts" envconfig:"CHARTS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// DataConfig contains dataset semantics fixed by the study design
type DataConfig struct {
	// OrganCollectionAge is the mouse age (days) at which cecal and ileal
	// samples were collected. Rows at any other age carry no organ data.
	OrganCollectionAge int `yaml:"organ_collection_age" envconfig:"ORGAN_COLLECTION_AGE" validate:"gt=0"`
}

// ChartsConfig contains the treatment color palette and chart styling
type ChartsConfig struct {
	ABXColor     string  `yaml:"abx_color" envconfig:"ABX_COLOR" validate:"hexcolor"`
	PlaceboColor string  `yaml:"placebo_color" envconfig:"PLACEBO_COLOR" validate:"hexcolor"`
	LineAlpha    float64 `yaml:"line_alpha" envconfig:"LINE_ALPHA" validate:"gt=0,lte=1"`
	ViolinAlpha  float64 `yaml:"violin_alpha" envconfig:"VIOLIN_ALPHA" validate:"gt=0,lte=1"`
}

// defaultConfig returns the built-in configuration. The palette matches the
// published figures: red for the antibiotic arm, blue for placebo.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/gutpipe.log",
		},
		Data: DataConfig{
			OrganCollectionAge: 21,
		},
		Charts: ChartsConfig{
			ABXColor:     "#D62728",
			PlaceboColor: "#1F77B4",
			LineAlpha:    0.45,
			ViolinAlpha:  0.55,
		},
	}
}

// Load returns the built-in defaults overridden by config.yaml (when one
// exists next to the base directory) and then by GUT_* environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables take precedence over both defaults and file values
	if err := envconfig.Process("GUT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks the configuration against the struct tags
func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// getConfigFilePath returns the expected location of the optional config file
func getConfigFilePath() string {
	base, err := baseDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(base, "config.yaml")
}
