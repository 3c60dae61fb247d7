package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/piwi3910/CollageCut/internal/model"
)

// EnvPrefix is the prefix of every environment variable read by ReadEnv.
const EnvPrefix = "COLLAGECUT"

// EnvOverrides holds settings taken from the environment. Non-empty fields
// win over the values in the config file.
type EnvOverrides struct {
	ConfigDir string `envconfig:"CONFIG_DIR"`
	Theme     string `envconfig:"THEME"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
	PageSize  string `envconfig:"PAGE_SIZE"`
}

// ReadEnv reads the COLLAGECUT_* environment variables.
func ReadEnv() (EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// Apply returns cfg with the non-empty overrides applied.
func (e EnvOverrides) Apply(cfg model.AppConfig) model.AppConfig {
	if e.Theme != "" {
		cfg.Theme = e.Theme
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.PageSize != "" {
		cfg.PageSize = e.PageSize
	}
	return cfg
}

// DefaultConfigDir returns the directory for application configuration,
// ~/.collagecut/ unless COLLAGECUT_CONFIG_DIR is set.
func DefaultConfigDir() string {
	if env, err := ReadEnv(); err == nil && env.ConfigDir != "" {
		return env.ConfigDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".collagecut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// LoadEffectiveConfig loads the config file at the default path and applies
// the environment overrides on top.
func LoadEffectiveConfig() (model.AppConfig, error) {
	env, err := ReadEnv()
	if err != nil {
		return model.DefaultAppConfig(), err
	}
	cfg, err := LoadAppConfig(DefaultConfigPath())
	if err != nil {
		return env.Apply(model.DefaultAppConfig()), fmt.Errorf("failed to load config: %w", err)
	}
	return env.Apply(cfg), nil
}
