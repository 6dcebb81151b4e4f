package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every settings key when read from the environment,
// e.g. RELCFG_LOG_LEVEL.
const EnvPrefix = "RELCFG"

// Settings are user defaults read from config.yaml and the environment.
type Settings struct {
	LogLevel string `mapstructure:"log_level"`
	Format   string `mapstructure:"format"`
	Validate bool   `mapstructure:"validate"`
	// Params are default render parameters, keyed by token name.
	Params map[string]any `mapstructure:"params"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{LogLevel: "warn", Format: "json", Validate: true}
}

// LoadSettings reads settings from path, or from SettingsPath when path is
// empty. A missing default file is not an error; a missing explicit file is.
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()
	v := viper.New()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("format", def.Format)
	v.SetDefault("validate", def.Validate)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		p, err := SettingsPath()
		if err != nil {
			return Settings{}, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.Wrapf(err, "read settings %s", path)
		}
	} else if explicit {
		return Settings{}, errors.Wrapf(err, "settings file %s", path)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	// viper lowercases keys; token names are uppercase.
	if len(s.Params) > 0 {
		params := make(map[string]any, len(s.Params))
		for k, val := range s.Params {
			params[strings.ToUpper(k)] = val
		}
		s.Params = params
	}
	return s, nil
}
