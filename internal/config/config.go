// Package config resolves toolbelt settings from flags, environment and an
// optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment, so the
// root directory comes from TOOLBELT_ROOT.
const EnvPrefix = "TOOLBELT"

const (
	KeyRoot        = "root"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyJoinTimeout = "join_timeout"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"root":         KeyRoot,
	"log-level":    KeyLogLevel,
	"log-format":   KeyLogFormat,
	"join-timeout": KeyJoinTimeout,
}

type Config struct {
	Root        string
	LogLevel    string
	LogFormat   string
	JoinTimeout time.Duration

	// File is the config file that was read, if any.
	File string
}

// Load builds a Config. cfgFile, when set, must exist; otherwise
// $HOME/.toolbelt/config.yaml is read if present. Flags in fs that were set
// explicitly override everything else.
func Load(cfgFile string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyRoot, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyJoinTimeout, 5*time.Minute)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".toolbelt"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	cfg := Config{
		Root:        v.GetString(KeyRoot),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		JoinTimeout: v.GetDuration(KeyJoinTimeout),
		File:        v.ConfigFileUsed(),
	}
	return cfg, cfg.Validate()
}

// Validate checks values that viper cannot type-check on its own.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	if c.JoinTimeout < 0 {
		return fmt.Errorf("%w: join_timeout %s is negative", ErrInvalidConfig, c.JoinTimeout)
	}
	return nil
}
