// Package config provides batch analysis configuration.
package config

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/multierr"

	"github.com/mariorollojr/power-density-variables/internal/audio"
	"github.com/mariorollojr/power-density-variables/internal/util"
)

// Configuration defaults.
const (
	DefaultIntervalSeconds = audio.DefaultIntervalSeconds
	DefaultInputDirectory  = "."
	DefaultOutputPath      = "power_densities_results.csv"
	DefaultExtension       = ".wav"
	MaxWorkers             = 256
)

// Config holds the settings for one batch run.
type Config struct {
	IntervalSeconds float64 `json:"interval_seconds,omitempty"`
	InputDirectory  string  `json:"input_directory,omitempty"`
	OutputPath      string  `json:"output_path,omitempty"`
	Extension       string  `json:"extension,omitempty"`
	Workers         int     `json:"workers,omitempty"` // 0 selects one per CPU
	ChannelMode     string  `json:"channel_mode,omitempty"`
	MetricsPath     string  `json:"metrics_path,omitempty"`

	filePath string
}

// New creates a Config with default values that Load will read from filePath.
// An empty filePath means defaults only.
func New(filePath string) *Config {
	return &Config{
		IntervalSeconds: DefaultIntervalSeconds,
		InputDirectory:  DefaultInputDirectory,
		OutputPath:      DefaultOutputPath,
		Extension:       DefaultExtension,
		ChannelMode:     string(audio.ChannelFirst),
		filePath:        filePath,
	}
}

// Load reads the config file, if one was given, and fills unset fields with defaults.
func (c *Config) Load() error {
	if c.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return util.WrapError("parse config", err)
	}

	c.applyDefaults()
	return nil
}

// applyDefaults sets default values for zero-value fields.
func (c *Config) applyDefaults() {
	c.IntervalSeconds = cmp.Or(c.IntervalSeconds, DefaultIntervalSeconds)
	c.InputDirectory = cmp.Or(c.InputDirectory, DefaultInputDirectory)
	c.OutputPath = cmp.Or(c.OutputPath, DefaultOutputPath)
	c.Extension = cmp.Or(c.Extension, DefaultExtension)
	c.ChannelMode = cmp.Or(c.ChannelMode, string(audio.ChannelFirst))
}

// Validate reports every invalid field. It must pass before any file is processed.
func (c *Config) Validate() error {
	var err error
	add := func(v *util.ValidationError) {
		if v != nil {
			err = multierr.Append(err, v)
		}
	}

	add(util.ValidatePositive("interval_seconds", c.IntervalSeconds))
	add(util.ValidateDir("input_directory", c.InputDirectory))
	add(util.ValidateParentDir("output_path", c.OutputPath))
	add(util.ValidateRange("workers", c.Workers, 0, MaxWorkers))
	if c.MetricsPath != "" {
		add(util.ValidateParentDir("metrics_path", c.MetricsPath))
	}
	if _, modeErr := audio.ParseChannelMode(c.ChannelMode); modeErr != nil {
		add(&util.ValidationError{Field: "channel_mode", Message: modeErr.Error()})
	}

	return err
}

// Mode returns the configured stereo reduction. Unknown values fall back to the first channel.
func (c *Config) Mode() audio.ChannelMode {
	mode, err := audio.ParseChannelMode(c.ChannelMode)
	if err != nil {
		return audio.ChannelFirst
	}
	return mode
}

// WorkerCount returns the number of concurrent file workers.
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
