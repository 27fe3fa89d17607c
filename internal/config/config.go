package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"ShortSentinel/internal/collector"
	"ShortSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Exchange string `yaml:"exchange"` // "bybit" or "binance"
		BaseURL  string `yaml:"base_url"`
	} `yaml:"data_source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		PruneCron   string `yaml:"prune_cron"`
	} `yaml:"schedule"`
	Collector   collector.Options `yaml:"collector"`
	Scoring     strategy.Params   `yaml:"scoring"`
	Seasonality struct {
		ExcludeTopVolume int `yaml:"exclude_top_volume"`
	} `yaml:"seasonality"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path"`
		RetentionDays int    `yaml:"retention_days"`
		TopKRecorded  int    `yaml:"top_k_recorded"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; the defaults
// describe a fully working setup against the public Bybit API.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Collector: collector.DefaultOptions(),
		Scoring:   strategy.DefaultParams(),
	}

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
	if v := os.Getenv("EXCHANGE"); v != "" {
		cfg.DataSource.Exchange = v
	}
	if v := os.Getenv("EXCHANGE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.Exchange == "" {
		cfg.DataSource.Exchange = "bybit"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "0 0 4 * * *"
	}
	if cfg.Seasonality.ExcludeTopVolume == 0 {
		cfg.Seasonality.ExcludeTopVolume = 10
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.RetentionDays == 0 {
		cfg.Database.RetentionDays = 30
	}
	if cfg.Database.TopKRecorded == 0 {
		cfg.Database.TopKRecorded = 20
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Exchange {
	case "bybit", "binance":
	default:
		return fmt.Errorf("data_source.exchange must be bybit or binance, got %q", c.DataSource.Exchange)
	}
	if c.Collector.UniverseSize <= 0 {
		return fmt.Errorf("collector.universe_size must be positive")
	}
	for name, period := range map[string]int{
		"rsi_period":     c.Collector.RSIPeriod,
		"atr_period":     c.Collector.ATRPeriod,
		"adx_period":     c.Collector.ADXPeriod,
		"fast_ma_period": c.Collector.FastMAPeriod,
		"slow_ma_period": c.Collector.SlowMAPeriod,
		"vwma_period":    c.Collector.VWMAPeriod,
		"sr_lookback":    c.Collector.SRLookback,
		"profile_bins":   c.Collector.ProfileBins,
	} {
		if period <= 0 {
			return fmt.Errorf("collector.%s must be positive", name)
		}
	}

	w := c.Scoring.Weights
	total := w.VPVR + w.ADX + w.RSI + w.Funding + w.MA + w.Volume + w.Timing
	if math.Abs(total-1.0) > 0.001 {
		return fmt.Errorf("scoring.weights must total 1.0, got %.3f", total)
	}
	return nil
}
