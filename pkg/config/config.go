// Package config discovers memo's settings from a .memo file and MEMO_
// environment variables.
package config

import (
	"errors"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/memo/pkg/logging"
)

const (
	// EnvConfigPath names a directory searched for the .memo config file.
	EnvConfigPath = "MEMO_CONFIG_PATH"

	DefaultPath  = "~/.memo.db"
	DefaultTheme = "light"
)

// Config holds the resolved settings.
type Config struct {
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
	Theme    string `mapstructure:"theme"`

	// File is the config file that was read, empty when none was found.
	File string
}

// BasePath is the directory holding the persisted slots.
func (c *Config) BasePath() string {
	return c.Path
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	levels := make([]interface{}, 0, len(logging.Levels()))
	for _, l := range logging.Levels() {
		levels = append(levels, l)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.LogLevel, validation.In(levels...)),
		validation.Field(&c.Theme, validation.In("light", "dark")),
	)
}

// Load reads configuration with viper. Defaults apply when no file exists.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log_level", logging.DefaultOptions().Level)
	v.SetDefault("theme", DefaultTheme)
	v.SetConfigName(".memo") // .yaml is implicit
	v.SetEnvPrefix("MEMO")
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	path, err := homedir.Expand(cfg.Path)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
