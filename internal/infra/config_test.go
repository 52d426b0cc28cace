package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Trading.LotSize != 10 {
		t.Errorf("default lot_size = %d, want 10", cfg.Trading.LotSize)
	}
	if cfg.Trading.PositionLimit != 100 {
		t.Errorf("default position_limit = %d, want 100", cfg.Trading.PositionLimit)
	}
	if cfg.Trading.MaxActionsPerWindow != 50 {
		t.Errorf("default max_actions_per_window = %d, want 50", cfg.Trading.MaxActionsPerWindow)
	}
	if cfg.Trading.MaxActiveOrders != 8 {
		t.Errorf("default max_active_orders = %d, want 8", cfg.Trading.MaxActiveOrders)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults pass", func(c *Config) {}, false},
		{"Zero interval", func(c *Config) { c.Trading.IntervalSeconds = 0 }, true},
		{"Zero action cap", func(c *Config) { c.Trading.MaxActionsPerWindow = 0 }, true},
		{"Zero lot size", func(c *Config) { c.Trading.LotSize = 0 }, true},
		{"Limit below lot", func(c *Config) { c.Trading.PositionLimit = 5 }, true},
		{"Negative offset", func(c *Config) { c.Trading.QuoteOffsetTicks = -1 }, true},
		{"Bad mode", func(c *Config) { c.Trading.Mode = "YOLO" }, true},
		{"Bad strategy", func(c *Config) { c.Trading.Strategy = "MOON" }, true},
		{"Live needs feed url", func(c *Config) { c.Trading.Mode = "LIVE" }, true},
		{"Live with url", func(c *Config) {
			c.Trading.Mode = "LIVE"
			c.Feed.URL = "wss://example.com/feed"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
app:
  name: test-engine
trading:
  mode: MOCK
  position_limit: 200
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.App.Name != "test-engine" {
		t.Errorf("app name = %q, want test-engine", cfg.App.Name)
	}
	if cfg.Trading.Mode != "MOCK" {
		t.Errorf("mode = %q, want MOCK", cfg.Trading.Mode)
	}
	if cfg.Trading.PositionLimit != 200 {
		t.Errorf("position_limit = %d, want 200", cfg.Trading.PositionLimit)
	}
	// Values the file omits keep their defaults.
	if cfg.Trading.LotSize != 10 {
		t.Errorf("lot_size = %d, want default 10", cfg.Trading.LotSize)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("trading:\n  mode: PAPER\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ARB_MODE", "MOCK")
	t.Setenv("ARB_POSITION_LIMIT", "300")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Trading.Mode != "MOCK" {
		t.Errorf("mode = %q, want env override MOCK", cfg.Trading.Mode)
	}
	if cfg.Trading.PositionLimit != 300 {
		t.Errorf("position_limit = %d, want env override 300", cfg.Trading.PositionLimit)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("trading:\n  lot_size: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() accepted a negative lot_size")
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("ARB_CONFIG", "/tmp/custom.yaml")
	if got := ResolveConfigPath(); got != "/tmp/custom.yaml" {
		t.Errorf("ResolveConfigPath() = %q, want /tmp/custom.yaml", got)
	}
}
