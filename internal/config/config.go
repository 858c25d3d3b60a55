// Package config loads dashboard settings from config files and the
// environment via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultGuardianBaseURL = "https://content.guardianapis.com"
	defaultDevtoBaseURL    = "https://dev.to"
	defaultPageSize        = 10
	defaultTimeoutSeconds  = 15
	defaultStorePath       = "newsdash.db"
)

// Config holds everything the dashboard needs at startup.
type Config struct {
	GuardianAPIKey  string `mapstructure:"guardian_api_key"`
	GuardianBaseURL string `mapstructure:"guardian_base_url"`
	DevtoBaseURL    string `mapstructure:"devto_base_url"`
	PageSize        int    `mapstructure:"page_size"`
	TimeoutSeconds  int    `mapstructure:"http_timeout_seconds"`
	StorePath       string `mapstructure:"store_path"`
	PublishersFile  string `mapstructure:"publishers_file"`
	LogLevel        string `mapstructure:"log_level"`
}

// HTTPTimeout returns the configured request timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from an optional YAML file and NEWSDASH_*
// environment variables. Environment variables win over file values.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("guardian_base_url", defaultGuardianBaseURL)
	v.SetDefault("devto_base_url", defaultDevtoBaseURL)
	v.SetDefault("page_size", defaultPageSize)
	v.SetDefault("http_timeout_seconds", defaultTimeoutSeconds)
	v.SetDefault("store_path", defaultStorePath)
	v.SetDefault("log_level", "info")

	// Unmarshal only sees keys viper already knows about, so keys
	// without defaults need an explicit env binding.
	_ = v.BindEnv("guardian_api_key")
	_ = v.BindEnv("publishers_file")

	v.SetEnvPrefix("NEWSDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.GuardianBaseURL) == "" {
		return errors.New("guardian_base_url is empty")
	}
	if strings.TrimSpace(c.DevtoBaseURL) == "" {
		return errors.New("devto_base_url is empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("http_timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return errors.New("store_path is empty")
	}
	return nil
}
