package config

import (
	"redmine-hours/internal/redmine"
)

// CreateClient creates the Redmine transport from the configuration
func CreateClient(config *Config) *redmine.Client {
	return redmine.NewClient(config.Redmine.URL, config.Redmine.Key, config.Redmine.Timeout)
}
