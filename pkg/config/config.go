// Copyright (c) Jeff Berkowitz 2023. All rights reserved.

// Package config loads the optional formasm.toml settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read when no file is named on the command line.
const DefaultFile = "formasm.toml"

type Config struct {
	LogLevel string   `toml:"log_level"`
	Asm      Asm      `toml:"asm"`
	Sim      Sim      `toml:"sim"`
	Download Download `toml:"download"`
}

type Asm struct {
	Dump bool `toml:"dump"`
}

type Sim struct {
	MaxSteps int `toml:"max_steps"` // 0 means no limit
}

type Download struct {
	Device          string   `toml:"device"`
	Baud            int      `toml:"baud"`
	ResponseTimeout Duration `toml:"response_timeout"`
}

// Duration is a time.Duration spelled as a string ("500ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when there is no file.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Sim:      Sim{MaxSteps: 100000},
		Download: Download{
			Device:          "/dev/ttyUSB0",
			Baud:            115200,
			ResponseTimeout: Duration{500 * time.Millisecond},
		},
	}
}

// Load reads name over the defaults. If name is empty, DefaultFile is
// tried and its absence is not an error.
func Load(name string) (*Config, error) {
	cfg := Default()
	optional := name == ""
	if optional {
		name = DefaultFile
	}

	md, err := toml.DecodeFile(name, cfg)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.MaxSteps < 0 {
		return fmt.Errorf("sim.max_steps must not be negative")
	}
	if c.Download.Baud <= 0 {
		return fmt.Errorf("download.baud must be positive")
	}
	if c.Download.ResponseTimeout.Duration <= 0 {
		return fmt.Errorf("download.response_timeout must be positive")
	}
	return nil
}
