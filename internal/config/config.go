// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`
	APIKey      string   `mapstructure:"apikey"`

	// GA4 Data API settings
	GA4PropertyID        string `mapstructure:"ga4propertyid"`
	GA4AccessToken       string `mapstructure:"ga4accesstoken"`
	GA4BaseURL           string `mapstructure:"ga4baseurl"`
	GA4TimeoutSeconds    int    `mapstructure:"ga4timeoutseconds"`
	ConversionEvent      string `mapstructure:"conversionevent"`
	ReportWorkers        int    `mapstructure:"reportworkers"`
	CacheTTLMinutes      int    `mapstructure:"cachettlminutes"`
	PromptCacheTTLDays   int    `mapstructure:"promptcachettldays"`
	CleanupIntervalHours int    `mapstructure:"cleanupintervalhours"`

	// File paths
	StoragePath     string `mapstructure:"storagepath"`
	DatabaseName    string `mapstructure:"-"` // Derived from other settings
	PromptCachePath string `mapstructure:"promptcachepath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "visionly")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("ga4baseurl", "")
		v.SetDefault("ga4timeoutseconds", 30)
		v.SetDefault("conversionevent", "")
		v.SetDefault("reportworkers", 4)
		v.SetDefault("cachettlminutes", 60)
		v.SetDefault("promptcachettldays", 30)
		v.SetDefault("cleanupintervalhours", 24)
		v.SetDefault("storagepath", "storage")
		v.SetDefault("promptcachepath", "storage/promptcache.db")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)

		// Bind environment variables
		v.BindEnv("appname", "VISIONLY_APP_NAME")
		v.BindEnv("appport", "VISIONLY_APP_PORT")
		v.BindEnv("environment", "VISIONLY_ENV")
		v.BindEnv("loglevel", "VISIONLY_LOG_LEVEL")
		v.BindEnv("apikey", "VISIONLY_API_KEY")
		v.BindEnv("ga4propertyid", "VISIONLY_GA4_PROPERTY_ID")
		v.BindEnv("ga4accesstoken", "VISIONLY_GA4_ACCESS_TOKEN")
		v.BindEnv("ga4baseurl", "VISIONLY_GA4_BASE_URL")
		v.BindEnv("ga4timeoutseconds", "VISIONLY_GA4_TIMEOUT_SECONDS")
		v.BindEnv("conversionevent", "VISIONLY_CONVERSION_EVENT")
		v.BindEnv("reportworkers", "VISIONLY_REPORT_WORKERS")
		v.BindEnv("cachettlminutes", "VISIONLY_CACHE_TTL_MINUTES")
		v.BindEnv("promptcachettldays", "VISIONLY_PROMPT_CACHE_TTL_DAYS")
		v.BindEnv("cleanupintervalhours", "VISIONLY_CLEANUP_INTERVAL_HOURS")
		v.BindEnv("storagepath", "VISIONLY_STORAGE_PATH")
		v.BindEnv("promptcachepath", "VISIONLY_PROMPT_CACHE_PATH")
		v.BindEnv("logsdir", "VISIONLY_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "VISIONLY_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "VISIONLY_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "VISIONLY_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbmaxopenconns", "VISIONLY_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "VISIONLY_DB_MAX_IDLE_CONNS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		// Validate
		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		// Set derived values
		cfg.DatabaseName = cfg.GetDatabasePath()

		// In production the API must not run unauthenticated.
		if cfg.IsProduction() && cfg.APIKey == "" {
			log.Fatal("Production requires VISIONLY_API_KEY to be set")
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.ReportWorkers <= 0 {
		return fmt.Errorf("invalid report worker count: %d", c.ReportWorkers)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("invalid cache TTL: %d", c.CacheTTLMinutes)
	}
	if c.CleanupIntervalHours < 0 {
		return fmt.Errorf("invalid cleanup interval: %d", c.CleanupIntervalHours)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.StoragePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetMaxOpenConns returns the appropriate MaxOpenConns value based on environment.
// If explicitly set via env var, uses that value. Otherwise:
// - Test: 1 (required for E2E test stability)
// - Development/Production: 10 (allows concurrent reads for parallel dashboard queries)
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}

	if c.Environment == Test {
		return 1
	}

	return 10
}

// GetMaxIdleConns returns the appropriate MaxIdleConns value based on environment.
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}

	if c.Environment == Test {
		return 1
	}

	return 5
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
