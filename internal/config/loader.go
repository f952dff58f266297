package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CODECTX_*)
// 2. Config file (.codectx/config.yml or .codectx/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".codectx")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides, e.g. CODECTX_SERVER_AUTH_TOKEN
	v.SetEnvPrefix("CODECTX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("server.address")
	v.BindEnv("server.auth_token")
	v.BindEnv("server.max_body_kb")
	v.BindEnv("fetch.timeout_seconds")
	v.BindEnv("fetch.max_bytes")
	v.BindEnv("compress.preserve_inline_comments")
	v.BindEnv("batch.report_path")
	v.BindEnv("batch.workers")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.auth_token", defaults.Server.AuthToken)
	v.SetDefault("server.max_body_kb", defaults.Server.MaxBodyKB)

	v.SetDefault("fetch.timeout_seconds", defaults.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.max_bytes", defaults.Fetch.MaxBytes)

	v.SetDefault("compress.preserve_inline_comments", defaults.Compress.PreserveInlineComments)

	v.SetDefault("batch.include", defaults.Batch.Include)
	v.SetDefault("batch.report_path", defaults.Batch.ReportPath)
	v.SetDefault("batch.workers", defaults.Batch.Workers)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
