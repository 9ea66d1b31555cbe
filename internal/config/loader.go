package config

import "time"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	URL     *string
	Key     *string
	User    *string
	Timeout *time.Duration
	Debug   *bool
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.URL != nil {
		config.Redmine.URL = *overrides.URL
	}
	if overrides.Key != nil {
		config.Redmine.Key = *overrides.Key
	}
	if overrides.User != nil {
		config.Redmine.User = *overrides.User
	}
	if overrides.Timeout != nil {
		config.Redmine.Timeout = *overrides.Timeout
	}
	if overrides.Debug != nil {
		config.Application.Debug = *overrides.Debug
	}
}
