package config

import (
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration options for the application. It is an
// explicit value passed to the components that need it; there is no
// process-wide settings state.
type Config struct {
	Redmine     RedmineConfig
	Application ApplicationConfig
}

// RedmineConfig holds the connection settings for the Redmine server
type RedmineConfig struct {
	URL     string        `env:"RH_URL"`
	Key     string        `env:"RH_KEY"`
	User    string        `env:"RH_USER"`
	Timeout time.Duration `env:"RH_HTTP_TIMEOUT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Debug bool `env:"RH_DEBUG"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Redmine: RedmineConfig{
			User:    "me",
			Timeout: 30 * time.Second,
		},
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if u := os.Getenv("RH_URL"); u != "" {
		c.Redmine.URL = u
	}
	if key := os.Getenv("RH_KEY"); key != "" {
		c.Redmine.Key = key
	}
	if user := os.Getenv("RH_USER"); user != "" {
		c.Redmine.User = user
	}
	if timeout := os.Getenv("RH_HTTP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Redmine.Timeout = d
		}
	}
	if debug := os.Getenv("RH_DEBUG"); debug != "" {
		if b, err := strconv.ParseBool(debug); err == nil {
			c.Application.Debug = b
		}
	}
	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Redmine.URL == "" {
		return &ConfigError{Field: "redmine.url", Message: "the Redmine URL is required (set RH_URL or --url)"}
	}
	if parsed, err := url.Parse(c.Redmine.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &ConfigError{Field: "redmine.url", Message: "the Redmine URL must be absolute, e.g. https://redmine.example.com"}
	}
	if c.Redmine.Key == "" {
		return &ConfigError{Field: "redmine.key", Message: "the API key is required (set RH_KEY or --key)"}
	}
	if c.Redmine.User == "" {
		return &ConfigError{Field: "redmine.user", Message: "the user cannot be empty"}
	}
	if c.Redmine.Timeout <= 0 {
		return &ConfigError{Field: "redmine.timeout", Message: "the HTTP timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
