package infra

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every knob of the engine. Engine constants are fixed at
// construction and never reloaded at runtime.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Trading struct {
		Mode     string `yaml:"mode"`     // PAPER, MOCK or LIVE
		Strategy string `yaml:"strategy"` // SPREAD or TOP

		IntervalSeconds     int   `yaml:"interval_seconds"`
		MaxActionsPerWindow int   `yaml:"max_actions_per_window"`
		LotSize             int64 `yaml:"lot_size"`
		PositionLimit       int64 `yaml:"position_limit"`
		TickSizeInCents     int64 `yaml:"tick_size_in_cents"`
		MaxActiveOrders     int   `yaml:"max_active_orders"`
		QuoteOffsetTicks    int64 `yaml:"quote_offset_ticks"`
	} `yaml:"trading"`

	Feed struct {
		URL               string `yaml:"url"`
		ReadTimeoutSec    int    `yaml:"read_timeout_sec"`
		PingIntervalSec   int    `yaml:"ping_interval_sec"`
		HandshakeTimeoutSec int  `yaml:"handshake_timeout_sec"`
	} `yaml:"feed"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the reference engine constants. Tests and the
// paper mode start from these.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "crazy-thursday"
	cfg.App.Version = "dev"
	cfg.Trading.Mode = "PAPER"
	cfg.Trading.Strategy = "SPREAD"
	cfg.Trading.IntervalSeconds = 1
	cfg.Trading.MaxActionsPerWindow = 50
	cfg.Trading.LotSize = 10
	cfg.Trading.PositionLimit = 100
	cfg.Trading.TickSizeInCents = 100
	cfg.Trading.MaxActiveOrders = 8
	cfg.Trading.QuoteOffsetTicks = 3
	cfg.Feed.ReadTimeoutSec = 60
	cfg.Feed.PingIntervalSec = 30
	cfg.Feed.HandshakeTimeoutSec = 10
	cfg.Logging.Level = "info"
	return cfg
}

// LoadConfig reads and parses a yaml config file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ResolveConfigPath prefers an explicit ARB_CONFIG path, then the local
// config.yaml.
func ResolveConfigPath() string {
	if p := os.Getenv("ARB_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	t := &c.Trading
	if t.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive, got %d", t.IntervalSeconds)
	}
	if t.MaxActionsPerWindow <= 0 {
		return fmt.Errorf("max_actions_per_window must be positive, got %d", t.MaxActionsPerWindow)
	}
	if t.LotSize <= 0 {
		return fmt.Errorf("lot_size must be positive, got %d", t.LotSize)
	}
	if t.PositionLimit < t.LotSize {
		return fmt.Errorf("position_limit %d must be at least one lot (%d)", t.PositionLimit, t.LotSize)
	}
	if t.TickSizeInCents <= 0 {
		return fmt.Errorf("tick_size_in_cents must be positive, got %d", t.TickSizeInCents)
	}
	if t.MaxActiveOrders <= 0 {
		return fmt.Errorf("max_active_orders must be positive, got %d", t.MaxActiveOrders)
	}
	if t.QuoteOffsetTicks < 0 {
		return fmt.Errorf("quote_offset_ticks must not be negative, got %d", t.QuoteOffsetTicks)
	}
	switch t.Mode {
	case "PAPER", "MOCK", "LIVE":
	default:
		return fmt.Errorf("unknown trading mode: %q", t.Mode)
	}
	switch t.Strategy {
	case "SPREAD", "TOP":
	default:
		return fmt.Errorf("unknown strategy: %q", t.Strategy)
	}
	if t.Mode == "LIVE" && c.Feed.URL == "" {
		return fmt.Errorf("feed url is required in LIVE mode")
	}
	return nil
}

// overrideWithEnv lets the environment win over the file for deployment
// specific values.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ARB_MODE"); v != "" {
		cfg.Trading.Mode = v
	}
	if v := os.Getenv("ARB_STRATEGY"); v != "" {
		cfg.Trading.Strategy = v
	}
	if v := os.Getenv("ARB_FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("ARB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ARB_POSITION_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Trading.PositionLimit = n
		}
	}
}
