// Package config loads the CLI configuration from an optional YAML file
// plus TIMETABLE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the tool-level configuration. Engine settings stay in-memory
// values passed per call; only operational knobs live here.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Registry RegistryConfig `mapstructure:"registry"`
	Output   OutputConfig   `mapstructure:"output"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// RegistryConfig locates the committed-timetable store.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig holds default export destinations.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads the configuration. With no file given, a missing
// timetable.yaml in the working directory is not an error and defaults
// and environment variables apply; an explicitly named file that is
// missing is an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
	v.SetDefault("registry.path", "timetables.json")
	v.SetDefault("output.dir", ".")

	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("timetable")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &config, nil
}
