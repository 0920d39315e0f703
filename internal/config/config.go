// Package config provides configuration loading and validation for the
// jsmangle CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers  = errors.New("analysis workers must not be negative")
	ErrInvalidFormat   = errors.New("unknown output format")
	ErrInvalidLogLevel = errors.New("unknown log level")
)

// Default configuration values.
const (
	defaultFormat    = "text"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config holds all configuration for the jsmangle CLI.
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// OutputConfig holds output rendering configuration.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// AnalysisConfig holds analysis-specific configuration. Workers set to zero
// means one worker per CPU.
type AnalysisConfig struct {
	Workers int `mapstructure:"workers"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a file and environment variables. An empty
// configPath falls back to $HOME/.jsmangle.yaml and the current directory.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".jsmangle")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix("JSMANGLE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := viperCfg.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config

	err = viperCfg.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("output.format", defaultFormat)
	viperCfg.SetDefault("output.color", true)
	viperCfg.SetDefault("analysis.workers", 0)
	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "table", "none":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFormat, c.Output.Format)
	}

	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Analysis.Workers)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}
