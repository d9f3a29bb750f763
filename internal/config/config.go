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

// Config holds all configuration parameters for the pipeline
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Data layout. Each stage reads the previous stage's directory: unroll
	// writes unrolleddir, classify writes enricheddir, aggregate reads
	// enricheddir and writes statsfile.
	DataDirectory     string `mapstructure:"datadir"`
	UnrolledDirectory string `mapstructure:"unrolleddir"`
	EnrichedDirectory string `mapstructure:"enricheddir"`
	StatsFile         string `mapstructure:"statsfile"`
	DatabasePath      string `mapstructure:"storagepath"`
	DatabaseName      string `mapstructure:"-"` // Derived from other settings

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Classifier settings
	OpenAIAPIKey          string `mapstructure:"openaiapikey"`
	ClassifierModel       string `mapstructure:"classifiermodel"`
	ClassifierConcurrency int    `mapstructure:"classifierconcurrency"`
	ClassifierMaxRetries  int    `mapstructure:"classifiermaxretries"`
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
		v.SetDefault("appname", "chatwrapped")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("datadir", "data")
		v.SetDefault("unrolleddir", filepath.Join("data", "unrolled"))
		v.SetDefault("enricheddir", filepath.Join("data", "wmeta"))
		v.SetDefault("statsfile", filepath.Join("data", "stats", "stats.json"))
		v.SetDefault("storagepath", "storage")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("classifiermodel", "gpt-5-mini")
		v.SetDefault("classifierconcurrency", 4)
		v.SetDefault("classifiermaxretries", 3)

		// Bind environment variables
		v.BindEnv("appname", "WRAPPED_APP_NAME")
		v.BindEnv("appport", "WRAPPED_APP_PORT")
		v.BindEnv("environment", "WRAPPED_ENV")
		v.BindEnv("loglevel", "WRAPPED_LOG_LEVEL")
		v.BindEnv("datadir", "WRAPPED_DATA_DIR")
		v.BindEnv("unrolleddir", "WRAPPED_UNROLLED_DIR")
		v.BindEnv("enricheddir", "WRAPPED_ENRICHED_DIR")
		v.BindEnv("statsfile", "WRAPPED_STATS_FILE")
		v.BindEnv("storagepath", "WRAPPED_STORAGE_PATH")
		v.BindEnv("logsdir", "WRAPPED_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "WRAPPED_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "WRAPPED_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "WRAPPED_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("openaiapikey", "OPENAI_API_KEY")
		v.BindEnv("classifiermodel", "WRAPPED_CLASSIFIER_MODEL")
		v.BindEnv("classifierconcurrency", "WRAPPED_CLASSIFIER_CONCURRENCY")
		v.BindEnv("classifiermaxretries", "WRAPPED_CLASSIFIER_MAX_RETRIES")

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

	if c.ClassifierConcurrency < 1 {
		return fmt.Errorf("classifier concurrency must be >= 1, got %d", c.ClassifierConcurrency)
	}
	if c.ClassifierMaxRetries < 0 {
		return fmt.Errorf("classifier max retries must be >= 0, got %d", c.ClassifierMaxRetries)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
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

// GetLogLevel returns the log level as a string
func (c *Config) GetLogLevel() string {
	return string(c.LogLevel)
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
