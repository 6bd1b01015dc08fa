package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	UI       UIConfig       `mapstructure:"ui"`
	Export   ExportConfig   `mapstructure:"export"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig selects the table gateway backend.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path   string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	URL    string `mapstructure:"url" validate:"required_if=Driver postgres"`
}

// CacheConfig holds the optional redis cache for reference data.
type CacheConfig struct {
	RedisURL   string        `mapstructure:"redis_url"`
	VehicleTTL time.Duration `mapstructure:"vehicle_ttl" validate:"gte=0"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format" validate:"required"`
}

// ExportConfig controls the CSV download.
type ExportConfig struct {
	Path   string `mapstructure:"path" validate:"required"`
	Layout string `mapstructure:"layout" validate:"oneof=split legacy"`
}

// LedgerConfig holds sync behaviour switches.
type LedgerConfig struct {
	StrictInput bool `mapstructure:"strict_input"`
}

// HTTPConfig is used by serve mode only.
type HTTPConfig struct {
	Addr         string   `mapstructure:"addr" validate:"required"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig points the diagnostic log somewhere the TUI won't draw over.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "fleetledger")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(dataDir(), "fleetledger.db"))
	v.SetDefault("database.url", "")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.vehicle_ttl", "10m")
	v.SetDefault("ui.currency_symbol", "₱")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("export.path", "budget_template.csv")
	v.SetDefault("export.layout", "split")
	v.SetDefault("ledger.strict_input", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allow_origins", []string{"*"})
	v.SetDefault("log.path", filepath.Join(dataDir(), "fleetledger.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix FLEETLEDGER_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FLEETLEDGER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "fleetledger"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FLEETLEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing default config file is fine; anything else is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks struct constraints on a loaded config.
func Validate(c Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
