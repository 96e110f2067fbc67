// Package config loads static application configuration. Values come from
// built-in defaults, optionally overridden by a YAML config file and by
// PBPARSE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type OutputConfig struct {
	// Dir is where the generated tables are written.
	Dir string `mapstructure:"dir"`
	CSV bool   `mapstructure:"csv"`
	// SQLite additionally writes all tables into one database file.
	SQLite     bool   `mapstructure:"sqlite"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// If set to a non-empty path, logs will also be written to the log file.
	File string `mapstructure:"file"`
}

type GameConfig struct {
	// RegulationMinutes feeds the minutes-played estimate. 40 for college
	// halves, 48 for NBA feeds.
	RegulationMinutes float64 `mapstructure:"regulation_minutes"`
	// InferWindow is how many leading events starter inference scans when a
	// document declares no starters.
	InferWindow int `mapstructure:"infer_window"`
}

type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Game   GameConfig   `mapstructure:"game"`
}

func setDefaults() {
	viper.SetDefault("output.dir", "basketball_analysis_output")
	viper.SetDefault("output.csv", true)
	viper.SetDefault("output.sqlite", false)
	viper.SetDefault("output.sqlite_path", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("game.regulation_minutes", 40.0)
	viper.SetDefault("game.infer_window", 20)
}

// Read loads configuration. cfgFile may be empty, in which case only the
// defaults and environment apply; a named file that does not exist is an
// error, since the caller asked for it explicitly.
func Read(cfgFile string) (Config, error) {
	setDefaults()

	viper.SetEnvPrefix("pbparse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if errRead := viper.ReadInConfig(); errRead != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", errRead)
		}
	}

	var conf Config
	if errUnmarshal := viper.Unmarshal(&conf); errUnmarshal != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", errUnmarshal)
	}

	if errValidate := conf.validate(); errValidate != nil {
		return Config{}, errValidate
	}

	return conf, nil
}

var errConfig = errors.New("invalid config")

func (conf Config) validate() error {
	if conf.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir must not be empty", errConfig)
	}
	if conf.Game.RegulationMinutes <= 0 {
		return fmt.Errorf("%w: game.regulation_minutes must be positive", errConfig)
	}
	if conf.Game.InferWindow < 1 {
		return fmt.Errorf("%w: game.infer_window must be at least 1", errConfig)
	}
	if conf.Output.SQLite && conf.Output.SQLitePath == "" {
		return fmt.Errorf("%w: output.sqlite_path required when sqlite output enabled", errConfig)
	}

	return nil
}
