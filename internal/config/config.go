// Package config loads the catalog service configuration from an optional
// YAML file and applies environment-variable overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"MiniCatalog/internal/search"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// CatalogConfig selects the product source. DSN wins over Path; with
// neither set the bundled dataset is used.
type CatalogConfig struct {
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

type SearchConfig struct {
	Engine string `yaml:"engine"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

// RateLimitConfig limits requests per client IP; zero Requests disables it.
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"windowSeconds"`
}

func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Server.Port) }

// Load reads path (if non-empty), then applies env overrides and validates.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3000,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Search: SearchConfig{
			Engine: string(search.EngineBleve),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: 60,
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := search.ParseEngine(c.Search.Engine); err != nil {
		errs = append(errs, fmt.Errorf("search.engine: %w", err))
	}
	if c.RateLimit.Requests < 0 || c.RateLimit.WindowSeconds < 0 {
		errs = append(errs, errors.New("rateLimit values must not be negative"))
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.WindowSeconds == 0 {
		errs = append(errs, errors.New("rateLimit.windowSeconds must be set when requests is"))
	}
	return errors.Join(errs...)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("CATALOG_DSN"); v != "" {
		cfg.Catalog.DSN = v
	}
	if v := os.Getenv("SEARCH_ENGINE"); v != "" {
		cfg.Search.Engine = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = on
	}
	if v := os.Getenv("METRICS_TOKEN"); v != "" {
		cfg.Metrics.Token = v
	}
	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_REQUESTS: %w", err)
		}
		cfg.RateLimit.Requests = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS: %w", err)
		}
		cfg.RateLimit.WindowSeconds = n
	}
	return nil
}
