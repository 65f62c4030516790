package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEndpoint is the license key endpoint queried when no override is set.
const DefaultEndpoint = "https://backend.reksfn.dev/ext/get-code"

// Config holds the application configuration loaded from defaults and environment variables.
type Config struct {
	AppName             string        `mapstructure:"app_name"`
	Env                 string        `mapstructure:"app_env"`
	LogLevel            string        `mapstructure:"log_level"`
	EndpointURL         string        `mapstructure:"endpoint_url"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`
	MaxRetries          int           `mapstructure:"max_retries"`
	AgentToken          string        `mapstructure:"agent_token"`
	NoColor             bool          `mapstructure:"no_color"`
}

// Load reads configuration from environment variables, falling back to the built-in constants.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "keyfetch")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("endpoint_url", DefaultEndpoint)
	v.SetDefault("fetch_timeout_seconds", 5)
	v.SetDefault("max_retries", 3)
	v.SetDefault("agent_token", "chrome113")
	v.SetDefault("no_color", false)

	v.SetEnvPrefix("keyfetch")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	return &cfg, nil
}

func (c *Config) validate() error {
	c.EndpointURL = strings.TrimSpace(c.EndpointURL)
	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return fmt.Errorf("invalid endpoint_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint_url scheme %q (expected http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint_url (missing host)")
	}

	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("invalid max_retries (must be positive)")
	}
	if strings.TrimSpace(c.AgentToken) == "" {
		return fmt.Errorf("agent_token must not be empty")
	}
	return nil
}
