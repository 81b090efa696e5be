package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "chat"
	cfg.Chart.BaseURL = "https://charts.example.com"
	cfg.Chart.TimeoutSeconds = 30
	cfg.Chart.PointCeiling = 1000
	cfg.Engine.CoarseLookbackDays = 365
	cfg.Engine.FineBufferMinutes = 240
	cfg.Engine.Tiers.Excellent = 1000
	cfg.Engine.Tiers.Great = 500
	cfg.Engine.Tiers.Good = 100
	cfg.Engine.Tiers.Fair = 50
	cfg.Watchlist = []TokenEntry{{Symbol: "WIF", PoolID: "pool-1", BaselinePrice: 0.0001}}
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_CoarseLookbackExceedsCeiling(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.CoarseLookbackDays = 1001
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "point_ceiling")
}

func TestValidate_FineBufferExceedsCeiling(t *testing.T) {
	// 2 * 501 minutes = 1002 expected fine points > 1000 ceiling.
	cfg := validConfig()
	cfg.Engine.FineBufferMinutes = 501
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "point_ceiling")
}

func TestValidate_TiersMustDescend(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Tiers.Great = 1200 // above excellent
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Engine.Tiers.Fair = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_WatchlistRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Watchlist = nil
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Watchlist[0].BaselinePrice = 0
	require.Error(t, cfg.Validate())
}

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  bot_token: yaml-token
  chat_id: "123"
chart:
  base_url: https://charts.example.com
watchlist:
  - symbol: WIF
    pool_id: pool-1
    baseline_price: 0.0001
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("CHART_BASE_URL", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "env-token", cfg.Telegram.BotToken, "env must override yaml")
	require.Equal(t, "https://charts.example.com", cfg.Chart.BaseURL)
	require.Equal(t, "1d", cfg.Chart.CoarseTag)
	require.Equal(t, "1m", cfg.Chart.FineTag)
	require.Equal(t, 1000, cfg.Chart.PointCeiling)
	require.Equal(t, 365, cfg.Engine.CoarseLookbackDays)
	require.Equal(t, 240, cfg.Engine.FineBufferMinutes)
	require.Equal(t, float64(1000), cfg.Engine.Tiers.Excellent)
	require.Equal(t, 4, cfg.Schedule.MaxConcurrent)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, "1d", cfg.Chart.CoarseTag)
	// Still fails validation: required fields are absent.
	require.Error(t, cfg.Validate())
}
