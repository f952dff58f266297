package config

import "fmt"

// Validate checks a loaded configuration for values that would break the
// service or batch pipeline at runtime.
func Validate(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if cfg.Server.MaxBodyKB <= 0 {
		return fmt.Errorf("server.max_body_kb must be positive, got %d", cfg.Server.MaxBodyKB)
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.MaxBytes <= 0 {
		return fmt.Errorf("fetch.max_bytes must be positive, got %d", cfg.Fetch.MaxBytes)
	}
	if cfg.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", cfg.Batch.Workers)
	}
	return nil
}
