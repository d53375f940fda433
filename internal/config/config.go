package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	ListenAddr             string        `mapstructure:"listen_addr"`
	UpstreamURL            string        `mapstructure:"upstream_url"`
	UpstreamTimeoutSeconds int64         `mapstructure:"upstream_timeout_seconds"`
	UpstreamTimeout        time.Duration `mapstructure:"-"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`
	KVBucket    string `mapstructure:"kv_bucket"`
	KVKey       string `mapstructure:"kv_key"`
	SeedFile    string `mapstructure:"seed_file"`
}

// Load reads configuration from environment variables and config files.
// Validation happens here so a misconfigured process fails at start,
// not on the first request.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "jsonrelay")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", ":2000")
	v.SetDefault("upstream_url", "http://localhost:1080/hello")
	v.SetDefault("upstream_timeout_seconds", 0) // 0 inherits the transport default
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/kv.db")
	v.SetDefault("kv_bucket", "test")
	v.SetDefault("kv_key", "sample-json")
	v.SetDefault("seed_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.UpstreamTimeoutSeconds > 0 {
		cfg.UpstreamTimeout = time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}

	u, err := url.Parse(c.UpstreamURL)
	if err != nil {
		return fmt.Errorf("invalid upstream_url %q: %w", c.UpstreamURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream_url %q must use http or https", c.UpstreamURL)
	}
	if u.Host == "" {
		return fmt.Errorf("upstream_url %q has no host", c.UpstreamURL)
	}

	if c.UpstreamTimeoutSeconds < 0 {
		return fmt.Errorf("upstream_timeout_seconds must not be negative")
	}

	if strings.TrimSpace(c.KVKey) == "" {
		return fmt.Errorf("kv_key must not be empty")
	}

	return nil
}
