// SPDX-License-Identifier: MPL-2.0

// Package config loads typack's tool configuration: the package store
// roots, the compiler binary, and UI settings. Store roots default to
// the directories the Typst compiler itself uses, but every value can
// be overridden through an optional TOML config file so the pipeline is
// testable with injected roots.
package config

import (
	"errors"
	"fmt"

	"typack-cli/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "typack"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config is the tool configuration.
type Config struct {
	// DataDir is the persistent package store root.
	DataDir string `mapstructure:"data_dir"`

	// CacheDir is the preview package store root.
	CacheDir string `mapstructure:"cache_dir"`

	// TypstBin is the compiler binary invoked for version reporting and
	// template compilation.
	TypstBin string `mapstructure:"typst_bin"`

	UI UIConfig `mapstructure:"ui"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// configFileOverride allows the --config flag (and tests) to force a
// specific config file.
var configFileOverride string

// SetConfigFilePathOverride forces a specific config file for the next
// Load call.
func SetConfigFilePathOverride(path string) {
	configFileOverride = path
}

// Load reads the configuration, merging the optional config file over
// platform defaults. A missing config file is not an error; a malformed
// one is.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	dataDir, err := TypstDataDir()
	if err != nil {
		return nil, err
	}
	cacheDir, err := TypstCacheDir()
	if err != nil {
		return nil, err
	}

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("cache_dir", cacheDir)
	v.SetDefault("typst_bin", "typst")
	v.SetDefault("ui.verbose", false)

	if configFileOverride != "" {
		v.SetConfigFile(configFileOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFileOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file contains valid TOML").
				Wrap(err).
				BuildError()
		}
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(cfgDir)
		v.SetConfigName(ConfigFileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cfgDir).
					WithSuggestion("Check that config.toml contains valid TOML").
					Wrap(err).
					BuildError()
			}
			// No config file found, defaults apply.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
