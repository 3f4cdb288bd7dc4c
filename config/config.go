package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`
	Auth struct {
		Secret          string `yaml:"secret"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	} `yaml:"auth"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
	Loan struct {
		MinAmount float64 `yaml:"min_amount"`
		MaxAmount float64 `yaml:"max_amount"`
		MinCibil  int     `yaml:"min_cibil"`
		Tenures   []int   `yaml:"tenures"`
	} `yaml:"loan"`
	RateLimit struct {
		Requests  int `yaml:"requests"`
		PerMinute int `yaml:"per_minute"`
	} `yaml:"rate_limit"`
	Schedule struct {
		OverdueCron string `yaml:"overdue_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MICROLOAN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Auth.TokenTTLMinutes = ttl
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Uploads.Dir = v
	}
	if v := os.Getenv("OVERDUE_CRON"); v != "" {
		cfg.Schedule.OverdueCron = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":9090"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/microloan.db"
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "data/uploads"
	}
	if cfg.Loan.MinAmount == 0 {
		cfg.Loan.MinAmount = 5_000
	}
	if cfg.Loan.MaxAmount == 0 {
		cfg.Loan.MaxAmount = 200_000
	}
	if cfg.Loan.MinCibil == 0 {
		cfg.Loan.MinCibil = 650
	}
	if len(cfg.Loan.Tenures) == 0 {
		cfg.Loan.Tenures = []int{6, 12, 18, 24}
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 30
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 1
	}
	if cfg.Schedule.OverdueCron == "" {
		// Daily at 01:00.
		cfg.Schedule.OverdueCron = "0 0 1 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}
	if c.Loan.MinAmount <= 0 || c.Loan.MaxAmount <= c.Loan.MinAmount {
		return fmt.Errorf("loan amount bounds are invalid")
	}
	return nil
}
