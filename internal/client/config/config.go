package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the storefront CLI.
type Config struct {
	ServerBaseURL       string        `env:"STOREFRONT_SERVER_URL"`
	OnlineCheckInterval time.Duration `env:"STOREFRONT_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`
	DatabasePath        string        `env:"STOREFRONT_DB"`
	LogLevel            string        `env:"STOREFRONT_LOG_LEVEL"`
	LogBackend          string        `env:"STOREFRONT_LOG_BACKEND"`
}

func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "storefront.db"
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.ServerBaseURL == "":
		return fmt.Errorf("%w: server base url is empty", ErrInvalidConfig)
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("%w: online check interval must be positive", ErrInvalidConfig)
	case c.RequestTimeout < 0:
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig builds the Config from defaults, the config file, the
// environment and os.Args, in that order.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
