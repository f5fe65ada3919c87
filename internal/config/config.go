package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileName = "weekend_picker_config.yaml"

// Config holds the optional application defaults. Flags on the CLI always
// win over values loaded from the config file.
type Config struct {
	TopN         int    `yaml:"topN" validate:"required,min=1"`
	OutputFormat string `yaml:"outputFormat" validate:"required,oneof=text json"`
	OpenAIModel  string `yaml:"openAIModel" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		TopN:         3,
		OutputFormat: "text",
		OpenAIModel:  "gpt-4.1-mini",
	}
}

// Load looks for weekend_picker_config.yaml in the current directory, then
// in the user's home directory. A missing file yields the built-in
// defaults; a present but invalid file is an error.
func Load() (*Config, error) {
	configPath, found, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if !found {
		return Default(), nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Omitted fields fall back to the built-in defaults before validation.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory and
// the home directory.
func findConfigFile() (string, bool, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, true, nil
	}

	return "", false, nil
}
