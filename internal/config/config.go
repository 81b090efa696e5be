package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// TokenEntry is one watched token: the chart series it trades in and the
// baseline (entry) price its gain is measured against.
type TokenEntry struct {
	Symbol        string  `yaml:"symbol"`
	PoolID        string  `yaml:"pool_id"`
	BaselinePrice float64 `yaml:"baseline_price"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Chart struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		CoarseTag      string `yaml:"coarse_tag"` // API tag for coarse resolution, one bar per day
		FineTag        string `yaml:"fine_tag"`   // API tag for fine resolution, one bar per minute
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		PointCeiling   int    `yaml:"point_ceiling"` // max samples the source returns per call
	} `yaml:"chart"`
	Engine struct {
		CoarseLookbackDays int `yaml:"coarse_lookback_days"` // full history span of the one coarse call
		FineBufferMinutes  int `yaml:"fine_buffer_minutes"`  // symmetric half-window around the coarse peak
		Tiers              struct {
			Excellent float64 `yaml:"excellent"`
			Great     float64 `yaml:"great"`
			Good      float64 `yaml:"good"`
			Fair      float64 `yaml:"fair"`
		} `yaml:"tiers"` // gain-percent thresholds, strict >
	} `yaml:"engine"`
	Schedule struct {
		DiscoveryCron string `yaml:"discovery_cron"`
		MaxConcurrent int    `yaml:"max_concurrent"`
	} `yaml:"schedule"`
	Watchlist []TokenEntry `yaml:"watchlist"`
	Database  struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Record struct {
		Dir string `yaml:"dir"` // flat JSON discovery files, one per token
	} `yaml:"record"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CHART_BASE_URL"); v != "" {
		cfg.Chart.BaseURL = v
	}
	if v := os.Getenv("CHART_API_KEY"); v != "" {
		cfg.Chart.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DISCOVERY"); v != "" {
		cfg.Schedule.DiscoveryCron = v
	}
	if v := os.Getenv("MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.MaxConcurrent = n
		}
	}

	// Defaults
	if cfg.Chart.CoarseTag == "" {
		cfg.Chart.CoarseTag = "1d"
	}
	if cfg.Chart.FineTag == "" {
		cfg.Chart.FineTag = "1m"
	}
	if cfg.Chart.TimeoutSeconds == 0 {
		cfg.Chart.TimeoutSeconds = 30
	}
	if cfg.Chart.PointCeiling == 0 {
		cfg.Chart.PointCeiling = 1000
	}
	if cfg.Engine.CoarseLookbackDays == 0 {
		cfg.Engine.CoarseLookbackDays = 365
	}
	if cfg.Engine.FineBufferMinutes == 0 {
		cfg.Engine.FineBufferMinutes = 240
	}
	if cfg.Engine.Tiers.Excellent == 0 {
		cfg.Engine.Tiers.Excellent = 1000
	}
	if cfg.Engine.Tiers.Great == 0 {
		cfg.Engine.Tiers.Great = 500
	}
	if cfg.Engine.Tiers.Good == 0 {
		cfg.Engine.Tiers.Good = 100
	}
	if cfg.Engine.Tiers.Fair == 0 {
		cfg.Engine.Tiers.Fair = 50
	}
	if cfg.Schedule.DiscoveryCron == "" {
		cfg.Schedule.DiscoveryCron = "0 0 * * * *"
	}
	if cfg.Schedule.MaxConcurrent == 0 {
		cfg.Schedule.MaxConcurrent = 4
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/ath_sentinel.db"
	}
	if cfg.Record.Dir == "" {
		cfg.Record.Dir = "data/discoveries"
	}

	return cfg, nil
}

// Validate checks required fields and fails fast on any window that would
// exceed the chart source's point ceiling at its resolution.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Chart.BaseURL == "" {
		return fmt.Errorf("chart.base_url is required")
	}
	if c.Chart.TimeoutSeconds <= 0 {
		return fmt.Errorf("chart.timeout_seconds must be positive")
	}
	if c.Chart.PointCeiling <= 0 {
		return fmt.Errorf("chart.point_ceiling must be positive")
	}
	if c.Engine.CoarseLookbackDays <= 0 {
		return fmt.Errorf("engine.coarse_lookback_days must be positive")
	}
	// One coarse bar per day: the lookback itself is the expected point count.
	if c.Engine.CoarseLookbackDays > c.Chart.PointCeiling {
		return fmt.Errorf("engine.coarse_lookback_days (%d) exceeds chart.point_ceiling (%d) at one bar per day",
			c.Engine.CoarseLookbackDays, c.Chart.PointCeiling)
	}
	if c.Engine.FineBufferMinutes <= 0 {
		return fmt.Errorf("engine.fine_buffer_minutes must be positive")
	}
	// One fine bar per minute, symmetric window around the anchor.
	if 2*c.Engine.FineBufferMinutes > c.Chart.PointCeiling {
		return fmt.Errorf("engine.fine_buffer_minutes (%d) spans %d points, exceeding chart.point_ceiling (%d) at one bar per minute",
			c.Engine.FineBufferMinutes, 2*c.Engine.FineBufferMinutes, c.Chart.PointCeiling)
	}
	t := c.Engine.Tiers
	if t.Fair <= 0 || t.Good <= t.Fair || t.Great <= t.Good || t.Excellent <= t.Great {
		return fmt.Errorf("engine.tiers must be positive and strictly descending (excellent > great > good > fair)")
	}
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	for i, tok := range c.Watchlist {
		if tok.Symbol == "" || tok.PoolID == "" {
			return fmt.Errorf("watchlist[%d]: symbol and pool_id are required", i)
		}
		if tok.BaselinePrice <= 0 {
			return fmt.Errorf("watchlist[%d] (%s): baseline_price must be positive", i, tok.Symbol)
		}
	}
	return nil
}

// ChartTimeout returns the per-call network timeout.
func (c *Config) ChartTimeout() time.Duration {
	return time.Duration(c.Chart.TimeoutSeconds) * time.Second
}

// CoarseLookback returns the coarse scan's full history span.
func (c *Config) CoarseLookback() time.Duration {
	return time.Duration(c.Engine.CoarseLookbackDays) * 24 * time.Hour
}

// FineBuffer returns the refinement half-window.
func (c *Config) FineBuffer() time.Duration {
	return time.Duration(c.Engine.FineBufferMinutes) * time.Minute
}
