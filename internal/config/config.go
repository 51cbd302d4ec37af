// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Mode      string  `yaml:"mode"` // polling | noop (local, no Telegram) | webhook (future)
	Workers   int     `yaml:"workers"`
	BypassIDs []int64 `yaml:"bypass_ids"` // exempt from the maintenance gate
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"` // shared secret for the x-bot-token header
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // conversational session TTL
}

type PolicyConfig struct {
	BanCacheTTL       time.Duration `yaml:"ban_cache_ttl"`
	MaintenanceTTL    time.Duration `yaml:"maintenance_ttl"`
	RateLimitInterval time.Duration `yaml:"rate_limit_interval"`
}

type PollerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

// FlowLimits holds the validation bounds of the conversational flows.
// They are tunables of the store, not constraints of the engine.
type FlowLimits struct {
	UsernameMin int `yaml:"username_min"`
	UsernameMax int `yaml:"username_max"`
	OrderMin    int `yaml:"order_min"`
	OrderMax    int `yaml:"order_max"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Policy   PolicyConfig   `yaml:"policy"`
	Poller   PollerConfig   `yaml:"poller"`
	Web      WebConfig      `yaml:"web"`
	Flows    FlowLimits     `yaml:"flows"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.Backend.BaseURL == "" {
		return nil, errors.New("backend.base_url is required")
	}
	if cfg.Backend.Token == "" {
		cfg.Backend.Token = os.Getenv("BOT_API_SECRET")
	}
	if cfg.Backend.Token == "" {
		return nil, errors.New("backend.token (or BOT_API_SECRET) is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = 10 * time.Second
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 15 * time.Minute
	}
	if cfg.Policy.BanCacheTTL <= 0 {
		cfg.Policy.BanCacheTTL = time.Minute
	}
	if cfg.Policy.MaintenanceTTL <= 0 {
		cfg.Policy.MaintenanceTTL = 30 * time.Second
	}
	if cfg.Policy.RateLimitInterval <= 0 {
		cfg.Policy.RateLimitInterval = 500 * time.Millisecond
	}
	if cfg.Poller.Interval <= 0 {
		cfg.Poller.Interval = 30 * time.Second
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8081
	}
	if cfg.Flows.UsernameMin <= 0 {
		cfg.Flows.UsernameMin = 3
	}
	if cfg.Flows.UsernameMax <= 0 {
		cfg.Flows.UsernameMax = 50
	}
	if cfg.Flows.OrderMin <= 0 {
		cfg.Flows.OrderMin = 10
	}
	if cfg.Flows.OrderMax <= 0 {
		cfg.Flows.OrderMax = 100000
	}
}
