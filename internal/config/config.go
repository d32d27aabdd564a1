// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads benchmark settings from an optional YAML file and
// VELLOBENCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/gogpu/vellobench/internal/bench"
	"github.com/gogpu/vellobench/internal/device"
	"github.com/gogpu/vellobench/internal/profiler"
)

// EnvPrefix prefixes every environment variable, e.g. VELLOBENCH_SAMPLES.
const EnvPrefix = "VELLOBENCH"

// Config keys.
const (
	KeySamples          = "samples"
	KeyWidth            = "width"
	KeyHeight           = "height"
	KeyPasses           = "passes"
	KeyComplexity       = "complexity"
	KeyBackend          = "backend"
	KeyUseCPU           = "use_cpu"
	KeyFormat           = "format"
	KeyLogLevel         = "log_level"
	KeyDebugGroups      = "debug_groups"
	KeyMaxPendingFrames = "max_pending_frames"
)

// Config is the merged configuration.
type Config struct {
	Samples          int    `mapstructure:"samples"`
	Width            int    `mapstructure:"width"`
	Height           int    `mapstructure:"height"`
	Passes           int    `mapstructure:"passes"`
	Complexity       int    `mapstructure:"complexity"`
	Backend          string `mapstructure:"backend"`
	UseCPU           bool   `mapstructure:"use_cpu"`
	Format           string `mapstructure:"format"`
	LogLevel         string `mapstructure:"log_level"`
	DebugGroups      bool   `mapstructure:"debug_groups"`
	MaxPendingFrames int    `mapstructure:"max_pending_frames"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	settings := profiler.DefaultSettings()
	return Config{
		Samples:          bench.SampleCount,
		Width:            bench.Width,
		Height:           bench.Height,
		Passes:           bench.MinPasses,
		Complexity:       bench.Complexity,
		Backend:          device.BackendAuto,
		Format:           string(bench.FormatText),
		LogLevel:         "warn",
		DebugGroups:      settings.EnableDebugGroups,
		MaxPendingFrames: settings.MaxNumPendingFrames,
	}
}

// New returns a viper instance with defaults and environment binding.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeySamples, d.Samples)
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyHeight, d.Height)
	v.SetDefault(KeyPasses, d.Passes)
	v.SetDefault(KeyComplexity, d.Complexity)
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyUseCPU, d.UseCPU)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDebugGroups, d.DebugGroups)
	v.SetDefault(KeyMaxPendingFrames, d.MaxPendingFrames)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads path into v, validating it against the schema first, and
// returns the merged configuration. An empty path reads nothing but the
// environment and defaults.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		issues, err := ValidateYAML(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
		if len(issues) > 0 {
			return Config{}, &InvalidError{Path: path, Issues: issues}
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that may come from the environment and so
// bypass the schema.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.BenchOptions(); err != nil {
		errs = append(errs, err)
	}
	if _, err := bench.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BenchOptions converts c to benchmark options.
func (c Config) BenchOptions() (bench.Options, error) {
	opts := bench.DefaultOptions()
	opts.Samples = c.Samples
	opts.Width = c.Width
	opts.Height = c.Height
	opts.Passes = c.Passes
	opts.Complexity = c.Complexity
	opts.UseCPU = c.UseCPU
	opts.Profiler.EnableDebugGroups = c.DebugGroups
	opts.Profiler.MaxNumPendingFrames = c.MaxPendingFrames

	backends, err := device.ParseBackend(c.Backend)
	if err != nil {
		return bench.Options{}, fmt.Errorf("config: %w", err)
	}
	opts.Device.Backends = backends

	if err := opts.Validate(); err != nil {
		return bench.Options{}, fmt.Errorf("config: %w", err)
	}
	if err := opts.Profiler.Validate(); err != nil {
		return bench.Options{}, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// OutputFormat returns the report format.
func (c Config) OutputFormat() (bench.Format, error) {
	return bench.ParseFormat(c.Format)
}

// SlogLevel maps log_level to a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
