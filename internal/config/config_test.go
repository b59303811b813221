package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with defaults failed: %v", err)
	}

	if cfg.Poll.Interval != 60*time.Second {
		t.Fatalf("poll.interval default: got %s", cfg.Poll.Interval)
	}
	if cfg.Ticker.Interval != 1500*time.Millisecond {
		t.Fatalf("ticker.interval default: got %s", cfg.Ticker.Interval)
	}
	if cfg.Ticker.Volatility != 0.0002 || cfg.Ticker.Drift != 0.1 {
		t.Fatalf("ticker defaults: got %v / %v", cfg.Ticker.Volatility, cfg.Ticker.Drift)
	}
	if cfg.Defaults.Source != "pax-gold" || cfg.Defaults.Range != "24H" {
		t.Fatalf("selection defaults: got %+v", cfg.Defaults)
	}
	if cfg.Provider.RelayURL == "" {
		t.Fatal("relay url default missing")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Poll.Interval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero poll interval should fail validation")
	}

	cfg = base()
	cfg.Ticker.Drift = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("drift above 1 should fail validation")
	}

	cfg = base()
	cfg.Chart.MaxPoints = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero max points should fail validation")
	}
}
