// Package settings loads user preferences for the jsxlint CLI. Preferences are
// read from ~/.jsxlint/settings.yaml and JSXLINT_* environment variables; flags
// given on the command line take precedence over both.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDir is the directory holding user-level jsxlint files.
const DefaultDir = "~/.jsxlint"

// EnvPrefix prefixes environment overrides, e.g. JSXLINT_OUTPUT_FORMAT.
const EnvPrefix = "JSXLINT"

// Settings are the user's CLI preferences.
type Settings struct {
	Output      Output `mapstructure:"output"`
	Cache       Cache  `mapstructure:"cache"`
	Concurrency int    `mapstructure:"concurrency"`
}

// Output defines output preferences.
type Output struct {
	Color  bool   `mapstructure:"color"`
	Format string `mapstructure:"format"`
}

// Cache defines result cache preferences.
type Cache struct {
	Enabled  bool   `mapstructure:"enabled"`
	Location string `mapstructure:"location"`
}

// Defaults are applied before the settings file and environment are read.
var Defaults = Settings{
	Output:      Output{Color: true, Format: "text"},
	Cache:       Cache{Enabled: false, Location: ".jsxlintcache"},
	Concurrency: 4,
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads settings from the given file, or settings.yaml in DefaultDir when
// path is empty. A missing file is not an error.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("output.color", Defaults.Output.Color)
	v.SetDefault("output.format", Defaults.Output.Format)
	v.SetDefault("cache.enabled", Defaults.Cache.Enabled)
	v.SetDefault("cache.location", Defaults.Cache.Location)
	v.SetDefault("concurrency", Defaults.Concurrency)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(expandPath(path))
	} else {
		v.AddConfigPath(expandPath(DefaultDir))
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) { //nolint:errorlint
			return nil, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}

	s.Cache.Location = expandPath(s.Cache.Location)
	if s.Concurrency < 1 {
		s.Concurrency = 1
	}
	if s.Output.Format == "" {
		s.Output.Format = Defaults.Output.Format
	}

	return &s, nil
}
