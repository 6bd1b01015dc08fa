package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FLEETLEDGER_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, filepath.Join(home, ".local", "share", "fleetledger", "fleetledger.db"), cfg.Database.Path)
	require.Equal(t, "budget_template.csv", cfg.Export.Path)
	require.Equal(t, "split", cfg.Export.Layout)
	require.Equal(t, "₱", cfg.UI.CurrencySymbol)
	require.Equal(t, 10*time.Minute, cfg.Cache.VehicleTTL)
	require.Empty(t, cfg.Cache.RedisURL)
	require.False(t, cfg.Ledger.StrictInput)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	body := `
[database]
driver = "postgres"
url = "postgres://ledger:ledger@db:5432/ledger?sslmode=disable"

[export]
layout = "legacy"

[ledger]
strict_input = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("FLEETLEDGER_CONFIG", path)
	t.Setenv("FLEETLEDGER_UI_CURRENCY_SYMBOL", "$")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "postgres://ledger:ledger@db:5432/ledger?sslmode=disable", cfg.Database.URL)
	require.Equal(t, "legacy", cfg.Export.Layout)
	require.True(t, cfg.Ledger.StrictInput)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[export]\nlayout = \"columns\"\n"), 0o600))
	t.Setenv("FLEETLEDGER_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestLoadPostgresNeedsURL(t *testing.T) {
	isolate(t)
	t.Setenv("FLEETLEDGER_DATABASE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("FLEETLEDGER_CONFIG", filepath.Join(dir, "nope.toml"))

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")
}
