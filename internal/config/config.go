// Package config loads fplot settings from an optional config file and FPLOT_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"fplot/curve"
)

// EnvPrefix is prepended to every environment override, e.g. FPLOT_SAMPLES.
const EnvPrefix = "FPLOT"

type Export struct {
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

type Config struct {
	Samples int    `mapstructure:"samples"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	Scale   int    `mapstructure:"scale"`
	TPS     int    `mapstructure:"tps"`
	Export  Export `mapstructure:"export"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("samples", curve.DefaultSamples)
	v.SetDefault("width", 400)
	v.SetDefault("height", 400)
	v.SetDefault("scale", 2)
	v.SetDefault("tps", 60)
	v.SetDefault("export.width_in", 6.0)
	v.SetDefault("export.height_in", 4.0)
}

// Default returns the built-in settings.
func Default() Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path when it is set. Otherwise it looks for fplot.{yaml,toml,json,...} in the
// working directory and the user config dir, and a missing file is not an error.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fplot")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "fplot"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the plotter cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Samples < curve.MinSamples || c.Samples > curve.MaxSamples {
		errs = append(errs, fmt.Errorf("samples %d out of range %d..%d", c.Samples, curve.MinSamples, curve.MaxSamples))
	}
	if c.Width < 160 || c.Height < 160 {
		errs = append(errs, fmt.Errorf("window %dx%d smaller than 160x160", c.Width, c.Height))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale %d must be at least 1", c.Scale))
	}
	if c.TPS < 1 {
		errs = append(errs, fmt.Errorf("tps %d must be at least 1", c.TPS))
	}
	if c.Export.WidthIn <= 0 || c.Export.HeightIn <= 0 {
		errs = append(errs, fmt.Errorf("export size %gx%g in must be positive", c.Export.WidthIn, c.Export.HeightIn))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
