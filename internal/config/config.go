package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"spotwatch/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Provider ProviderConfig `mapstructure:"provider"`
	Poll     PollConfig     `mapstructure:"poll"`
	Ticker   TickerConfig   `mapstructure:"ticker"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Chart    ChartConfig    `mapstructure:"chart"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ProviderConfig covers market-data provider connectivity.
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RelayURL       string        `mapstructure:"relay_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// PollConfig governs snapshot acquisition cadence.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TickerConfig tunes the displayed-value animation.
type TickerConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	Volatility float64       `mapstructure:"volatility"`
	Drift      float64       `mapstructure:"drift"`
}

// DefaultsConfig holds the session's initial selections.
type DefaultsConfig struct {
	Source   string `mapstructure:"source"`
	Currency string `mapstructure:"currency"`
	Unit     string `mapstructure:"unit"`
	Range    string `mapstructure:"range"`
}

// ChartConfig sets chart export behaviour.
type ChartConfig struct {
	Width     int `mapstructure:"width"`
	Height    int `mapstructure:"height"`
	MaxPoints int `mapstructure:"max_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SPOTWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "spotwatch")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("provider.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("provider.relay_url", "https://api.allorigins.win/raw")
	v.SetDefault("provider.request_timeout", "10s")
	v.SetDefault("provider.user_agent", "spotwatch/1.0")

	v.SetDefault("poll.interval", "60s")

	v.SetDefault("ticker.interval", "1500ms")
	v.SetDefault("ticker.volatility", 0.0002)
	v.SetDefault("ticker.drift", 0.1)

	v.SetDefault("defaults.source", "pax-gold")
	v.SetDefault("defaults.currency", "usd")
	v.SetDefault("defaults.unit", "oz")
	v.SetDefault("defaults.range", "24H")

	v.SetDefault("chart.width", 1280)
	v.SetDefault("chart.height", 720)
	v.SetDefault("chart.max_points", 2000)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be greater than zero")
	}
	if c.Ticker.Interval <= 0 {
		return fmt.Errorf("ticker.interval must be greater than zero")
	}
	if c.Ticker.Volatility < 0 {
		return fmt.Errorf("ticker.volatility cannot be negative")
	}
	if c.Ticker.Drift <= 0 || c.Ticker.Drift > 1 {
		return fmt.Errorf("ticker.drift must be in (0, 1]")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url must be configured")
	}
	if c.Chart.MaxPoints <= 0 {
		return fmt.Errorf("chart.max_points must be greater than zero")
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Chart.MaxPoints
}
