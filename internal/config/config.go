// Package config handles configuration loading for AlphaVault.
// It supports YAML config files with environment variable overrides and
// an optional .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ALPHAVAULT_API_PORT.
const EnvPrefix = "ALPHAVAULT"

// Config represents the complete application configuration.
type Config struct {
	Edgar     EdgarConfig     `mapstructure:"edgar"     yaml:"edgar"`
	Parser    ParserConfig    `mapstructure:"parser"    yaml:"parser"`
	Analytics AnalyticsConfig `mapstructure:"analytics" yaml:"analytics"`
	RefData   RefDataConfig   `mapstructure:"refdata"   yaml:"refdata"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// EdgarConfig holds SEC EDGAR client settings.
type EdgarConfig struct {
	UserAgent   string `mapstructure:"user_agent"   yaml:"user_agent"` // "Company contact@example.com"
	DataURL     string `mapstructure:"data_url"     yaml:"data_url"`
	ArchivesURL string `mapstructure:"archives_url" yaml:"archives_url"`
	BrowseURL   string `mapstructure:"browse_url"   yaml:"browse_url"`
	TickersURL  string `mapstructure:"tickers_url"  yaml:"tickers_url"`
	RateLimit   int    `mapstructure:"rate_limit"   yaml:"rate_limit"` // requests/second
	TimeoutSec  int    `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
	CacheTTL    int    `mapstructure:"cache_ttl"    yaml:"cache_ttl"` // seconds
}

// Timeout returns the request timeout as a duration.
func (e EdgarConfig) Timeout() time.Duration { return time.Duration(e.TimeoutSec) * time.Second }

// CacheDuration returns the cache TTL as a duration.
func (e EdgarConfig) CacheDuration() time.Duration { return time.Duration(e.CacheTTL) * time.Second }

// ParserConfig holds filing parser limits.
type ParserConfig struct {
	S4MinLength     int `mapstructure:"s4_min_length"     yaml:"s4_min_length"`
	Form8KMinLength int `mapstructure:"form8k_min_length" yaml:"form8k_min_length"`
	SectionCap      int `mapstructure:"section_cap"       yaml:"section_cap"`
	ExcerptLength   int `mapstructure:"excerpt_length"    yaml:"excerpt_length"`
}

// AnalyticsConfig holds M&A engine settings.
type AnalyticsConfig struct {
	LookbackDays       int `mapstructure:"lookback_days"        yaml:"lookback_days"`
	ActivityWindowDays int `mapstructure:"activity_window_days" yaml:"activity_window_days"`
}

// RefDataConfig points at an optional reference data overlay.
type RefDataConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // YAML; empty uses built-in tables
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns host:port.
func (a APIConfig) Addr() string { return fmt.Sprintf("%s:%d", a.Host, a.Port) }

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.alphavault/config.yaml (home directory)
//  3. /etc/alphavault/config.yaml (system)
//
// A .env file in the working directory is loaded into the environment
// first; variables already set win. Environment variables override config
// file values. Format: ALPHAVAULT_<SECTION>_<KEY>, e.g.
// ALPHAVAULT_EDGAR_USER_AGENT.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".alphavault"))
	v.AddConfigPath("/etc/alphavault")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// EDGAR defaults (SEC fair access: 10 requests/second)
	v.SetDefault("edgar.user_agent", "")
	v.SetDefault("edgar.data_url", "https://data.sec.gov")
	v.SetDefault("edgar.archives_url", "https://www.sec.gov/Archives/edgar/data")
	v.SetDefault("edgar.browse_url", "https://www.sec.gov/cgi-bin/browse-edgar")
	v.SetDefault("edgar.tickers_url", "https://www.sec.gov/files/company_tickers.json")
	v.SetDefault("edgar.rate_limit", 10)
	v.SetDefault("edgar.timeout_sec", 30)
	v.SetDefault("edgar.cache_ttl", 3600) // 1 hour

	// Parser defaults
	v.SetDefault("parser.s4_min_length", 1000)
	v.SetDefault("parser.form8k_min_length", 500)
	v.SetDefault("parser.section_cap", 5000)
	v.SetDefault("parser.excerpt_length", 500)

	// Analytics defaults
	v.SetDefault("analytics.lookback_days", 90)
	v.SetDefault("analytics.activity_window_days", 30)

	v.SetDefault("refdata.path", "")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv falls back to SEC_USER_AGENT when no EDGAR identity is
// configured.
func overrideFromEnv(cfg *Config) {
	if cfg.Edgar.UserAgent != "" {
		return
	}
	if ua := os.Getenv("SEC_USER_AGENT"); ua != "" {
		cfg.Edgar.UserAgent = ua
	}
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch {
	case c.Edgar.RateLimit < 0:
		return fmt.Errorf("config: edgar.rate_limit must be >= 0, got %d", c.Edgar.RateLimit)
	case c.Edgar.TimeoutSec <= 0:
		return fmt.Errorf("config: edgar.timeout_sec must be > 0, got %d", c.Edgar.TimeoutSec)
	case c.Parser.S4MinLength < 0 || c.Parser.Form8KMinLength < 0:
		return fmt.Errorf("config: parser minimum lengths must be >= 0")
	case c.Analytics.LookbackDays <= 0:
		return fmt.Errorf("config: analytics.lookback_days must be > 0, got %d", c.Analytics.LookbackDays)
	case c.Analytics.ActivityWindowDays <= 0:
		return fmt.Errorf("config: analytics.activity_window_days must be > 0, got %d", c.Analytics.ActivityWindowDays)
	case c.API.Port <= 0 || c.API.Port > 65535:
		return fmt.Errorf("config: api.port out of range: %d", c.API.Port)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
