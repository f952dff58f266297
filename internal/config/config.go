package config

// Config represents the complete codectx configuration.
// It can be loaded from .codectx/config.yml with environment variable overrides.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Compress CompressConfig `yaml:"compress" mapstructure:"compress"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Address   string `yaml:"address" mapstructure:"address"`       // listen address, e.g. ":8080"
	AuthToken string `yaml:"auth_token" mapstructure:"auth_token"` // bearer token; empty disables auth
	MaxBodyKB int    `yaml:"max_body_kb" mapstructure:"max_body_kb"`
}

// FetchConfig bounds source retrieval.
type FetchConfig struct {
	TimeoutSeconds int   `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxBytes       int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// CompressConfig holds the default compaction options.
type CompressConfig struct {
	PreserveInlineComments bool `yaml:"preserve_inline_comments" mapstructure:"preserve_inline_comments"`
}

// BatchConfig configures batch extraction runs.
type BatchConfig struct {
	Include    []string `yaml:"include" mapstructure:"include"` // glob patterns selecting finding locations
	ReportPath string   `yaml:"report_path" mapstructure:"report_path"`
	Workers    int      `yaml:"workers" mapstructure:"workers"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:   ":8080",
			AuthToken: "",
			MaxBodyKB: 51200, // 50 MiB, matching the fetch cap
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			MaxBytes:       50 * 1024 * 1024,
		},
		Compress: CompressConfig{
			PreserveInlineComments: true,
		},
		Batch: BatchConfig{
			Include: []string{"**"},
			Workers: 4,
		},
	}
}
