// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override (PDN_LOG_LEVEL, ...).
const EnvPrefix = "PDN"

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig locates the working data directory.
type DataConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// SourceConfig describes where regional wages come from and how they are recognized.
type SourceConfig struct {
	SpreadsheetFile     string   `mapstructure:"spreadsheet_file" yaml:"spreadsheet_file"`
	HeaderRow           int      `mapstructure:"header_row" yaml:"header_row"`
	TargetColumn        string   `mapstructure:"target_column" yaml:"target_column"`
	RemoteURL           string   `mapstructure:"remote_url" yaml:"remote_url"`
	FetchTimeoutSeconds int      `mapstructure:"fetch_timeout_seconds" yaml:"fetch_timeout_seconds"`
	RegionTokens        []string `mapstructure:"region_tokens" yaml:"region_tokens"`
	WageTokens          []string `mapstructure:"wage_tokens" yaml:"wage_tokens"`
	ExclusionMarkers    []string `mapstructure:"exclusion_markers" yaml:"exclusion_markers"`
}

// SnapshotConfig selects the snapshot backend.
type SnapshotConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	File      string `mapstructure:"file" yaml:"file"`
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisKey  string `mapstructure:"redis_key" yaml:"redis_key"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
}

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	Source   SourceConfig   `mapstructure:"source" yaml:"source"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// Snapshot backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom loads configuration with hierarchical precedence:
// defaults, then the config file (configFile if set, else config.yaml in the
// standard locations), then PDN_* environment variables.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.pdn-calc")
		v.AddConfigPath(".pdn-calc")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case !errors.As(err, &notFound):
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")

	v.SetDefault("source.spreadsheet_file", "")
	v.SetDefault("source.header_row", 1)
	v.SetDefault("source.target_column", "июль")
	v.SetDefault("source.remote_url", "")
	v.SetDefault("source.fetch_timeout_seconds", 15)
	v.SetDefault("source.region_tokens", []string{"регион", "субъект"})
	v.SetDefault("source.wage_tokens", []string{"зарплат", "зараб"})
	v.SetDefault("source.exclusion_markers", []string{"округ", "российская"})

	v.SetDefault("snapshot.backend", BackendFile)
	v.SetDefault("snapshot.file", "")
	v.SetDefault("snapshot.redis_addr", "localhost:6379")
	v.SetDefault("snapshot.redis_key", "pdn:regions_wages")

	v.SetDefault("server.address", ":8000")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Source.HeaderRow < 0 {
		return fmt.Errorf("source.header_row must not be negative, got: %d", config.Source.HeaderRow)
	}

	if config.Source.FetchTimeoutSeconds < 1 || config.Source.FetchTimeoutSeconds > 300 {
		return fmt.Errorf("source.fetch_timeout_seconds must be between 1 and 300, got: %d", config.Source.FetchTimeoutSeconds)
	}

	if strings.TrimSpace(config.Source.TargetColumn) == "" {
		return fmt.Errorf("source.target_column must not be empty")
	}

	if config.Source.RemoteURL != "" {
		if err := validation.IsValidRemoteURL(config.Source.RemoteURL); err != nil {
			return fmt.Errorf("source.remote_url: %w", err)
		}
	}

	if len(config.Source.RegionTokens) == 0 {
		return fmt.Errorf("source.region_tokens must list at least one token")
	}

	switch config.Snapshot.Backend {
	case BackendFile:
	case BackendRedis:
		if config.Snapshot.RedisAddr == "" {
			return fmt.Errorf("snapshot.redis_addr required when snapshot.backend is redis")
		}
	default:
		return fmt.Errorf("invalid snapshot backend: %s (must be 'file' or 'redis')", config.Snapshot.Backend)
	}

	if config.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}

	return nil
}

// SpreadsheetPath returns the workbook location, defaulting into the data directory.
func (c *Config) SpreadsheetPath() string {
	if c.Source.SpreadsheetFile != "" {
		return c.Source.SpreadsheetFile
	}
	return filepath.Join(c.Data.Directory, "rosstat_data_regions.xlsx")
}

// SnapshotPath returns the snapshot file location, defaulting into the data directory.
func (c *Config) SnapshotPath() string {
	if c.Snapshot.File != "" {
		return c.Snapshot.File
	}
	return filepath.Join(c.Data.Directory, "regions_wages.json")
}

// FetchTimeout returns the remote fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.FetchTimeoutSeconds) * time.Second
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
