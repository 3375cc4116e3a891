package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/camcaswell/CJ-team-forming/pkg/core/teamforming"
)

const configFileName = "team_forming.yaml"

// TokenEnvVar is the environment variable holding the forms API token.
// It is typically supplied through a .env file next to the config.
const TokenEnvVar = "FORMS_API_TOKEN"

// FormingConfig holds the team-forming tuning knobs.
type FormingConfig struct {
	TargetTeamSize  int     `yaml:"targetTeamSize" validate:"required,min=1"`
	TargetTzSpan    float64 `yaml:"targetTzSpan" validate:"min=0"`
	MaxTzSpan       float64 `yaml:"maxTzSpan" validate:"min=0"`
	TargetExpRadius float64 `yaml:"targetExpRadius" validate:"min=0"`
	SwapSearchDepth int     `yaml:"swapSearchDepth" validate:"required,min=1,max=5"`
}

// Config represents the application configuration.
type Config struct {
	FormsAPIBaseURL      string        `yaml:"formsAPIBaseURL" validate:"required,url"`
	QualifierFormSlug    string        `yaml:"qualifierFormSlug" validate:"required"`
	ConfirmationFormSlug string        `yaml:"confirmationFormSlug" validate:"required"`
	CSVDir               string        `yaml:"csvDir" validate:"required"`
	ReportPath           string        `yaml:"reportPath,omitempty"`
	Forming              FormingConfig `yaml:"teamForming" validate:"required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load finds and loads the configuration, looking for team_forming.yaml in
// the current directory first, then in the user's home directory.
func Load() (*Config, error) {
	path, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration struct plus the cross-field rules the
// tag syntax cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Forming.MaxTzSpan < cfg.Forming.TargetTzSpan {
		return fmt.Errorf("config validation failed: maxTzSpan %v is below targetTzSpan %v",
			cfg.Forming.MaxTzSpan, cfg.Forming.TargetTzSpan)
	}
	return nil
}

// FormingParams converts the forming section to the core's config type.
func (c *Config) FormingParams() teamforming.Config {
	return teamforming.Config{
		TargetTeamSize:  c.Forming.TargetTeamSize,
		TargetTzSpan:    c.Forming.TargetTzSpan,
		MaxTzSpan:       c.Forming.MaxTzSpan,
		TargetExpRadius: c.Forming.TargetExpRadius,
		SwapSearchDepth: c.Forming.SwapSearchDepth,
	}
}

func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	homePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
