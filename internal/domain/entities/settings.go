package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Defaults applied when options are absent from the configuration file.
const (
	DefaultRegion      = "us-east-1"
	DefaultModel       = "claude-3-haiku-20240307"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.1
	DefaultOutputDir   = "coverage_output"
)

// ProviderSettings configures the remote suggestion provider.
type ProviderSettings struct {
	// Region is reserved for Bedrock-hosted deployments of the same models.
	Region      string  `yaml:"region"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"  validate:"gt=0"`
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=1"`
	APIKey      string  `yaml:"api_key"`
}

// Settings is the top-level configuration for covgen.
type Settings struct {
	Provider  ProviderSettings `yaml:"provider"`
	AutoApply bool             `yaml:"auto_apply"` // apply suggested modifications without confirmation
	OutputDir string           `yaml:"output_dir"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no configuration file exists.
// The API key still comes from the environment so the remote provider can be
// used without any file at all.
func DefaultSettings() *Settings {
	settings := &Settings{
		Provider: ProviderSettings{
			Region:      DefaultRegion,
			Model:       DefaultModel,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
	}
	settings.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	settings.OutputDir = DefaultOutputDir
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and filling in documented defaults for absent options.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Provider.APIKey = resolveSecret(settings.Provider.APIKey)
	if settings.Provider.APIKey == "" {
		settings.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	applyDefaults(&settings)

	if validateErr := validator.New().Struct(&settings); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".covgen.yaml",
		".covgen.yml",
		"covgen.yaml",
		"covgen.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func applyDefaults(settings *Settings) {
	if settings.Provider.Region == "" {
		settings.Provider.Region = DefaultRegion
	}
	if settings.Provider.Model == "" {
		settings.Provider.Model = DefaultModel
	}
	if settings.Provider.MaxTokens == 0 {
		settings.Provider.MaxTokens = DefaultMaxTokens
	}
	if settings.Provider.Temperature == 0 {
		settings.Provider.Temperature = DefaultTemperature
	}
	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}
}

// resolveSecret expands environment variable references (${VAR}) in a
// configured secret value.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
