package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the client configuration loaded from .env and BLOG_* environment variables.
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	MockAddr       string        `mapstructure:"mock_addr"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(os.TempDir(), "blogpessoal.log"))
	v.SetDefault("timeout_seconds", 0) // no timeout
	v.SetDefault("mock_addr", "127.0.0.1:8080")

	v.SetEnvPrefix("blog")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api_url %q (must be an absolute http(s) URL)", cfg.APIURL)
	}

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be zero or positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}
