// Package config provides configuration loading and validation for the
// modelfang tools.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLogLevel     = errors.New("invalid logging level")
	ErrInvalidLogFormat    = errors.New("invalid logging format")
	ErrInvalidGuardRatio   = errors.New("replace guard ratio must be in (0, 1]")
	ErrInvalidCacheSize    = errors.New("pattern cache size must be positive")
	ErrInvalidSuggestLimit = errors.New("scope suggestion limit must be positive")
)

// Default configuration values.
const (
	defaultGuardRatio       = 0.5
	defaultPatternCacheSize = 512
	defaultSuggestLimit     = 5
)

// Config holds all configuration for the modelfang tools.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Edit      EditConfig      `mapstructure:"edit"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds OpenTelemetry export configuration. An empty
// endpoint leaves tracing and metrics on noop providers.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// EditConfig holds edit-engine configuration.
type EditConfig struct {
	// GuardRatio is the fraction of a scope's direct children a fragment
	// must match before replace_scope runs without force.
	GuardRatio float64 `mapstructure:"guard_ratio"`

	// PatternCacheSize bounds the compiled delete-pattern LRU cache.
	PatternCacheSize int `mapstructure:"pattern_cache_size"`

	// SuggestLimit caps scope suggestions when a merge target is missing.
	SuggestLimit int `mapstructure:"suggest_limit"`

	// CreateScope makes merges materialize missing target scopes by default.
	CreateScope bool `mapstructure:"create_scope"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("modelfang")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/modelfang")
	}

	viperCfg.SetEnvPrefix("MODELFANG")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "json")
	viperCfg.SetDefault("logging.output", "stderr")

	// Telemetry defaults: disabled until an endpoint is configured.
	viperCfg.SetDefault("telemetry.endpoint", "")
	viperCfg.SetDefault("telemetry.service_name", "modelfang")
	viperCfg.SetDefault("telemetry.insecure", false)

	// Edit defaults.
	viperCfg.SetDefault("edit.guard_ratio", defaultGuardRatio)
	viperCfg.SetDefault("edit.pattern_cache_size", defaultPatternCacheSize)
	viperCfg.SetDefault("edit.suggest_limit", defaultSuggestLimit)
	viperCfg.SetDefault("edit.create_scope", false)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch config.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Edit.GuardRatio <= 0 || config.Edit.GuardRatio > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidGuardRatio, config.Edit.GuardRatio)
	}

	if config.Edit.PatternCacheSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, config.Edit.PatternCacheSize)
	}

	if config.Edit.SuggestLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSuggestLimit, config.Edit.SuggestLimit)
	}

	return nil
}
