// Copyright (c) Jeff Berkowitz 2023. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	name := filepath.Join(t.TempDir(), "formasm.toml")
	require.NoError(t, os.WriteFile(name, []byte(body), 0644))
	return name
}

func TestLoad(t *testing.T) {
	name := writeConfig(t, `
log_level = "debug"

[asm]
dump = true

[sim]
max_steps = 50

[download]
device = "/dev/cu.usbserial-AQ0169PT"
response_timeout = "2s"
`)
	cfg, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Asm.Dump)
	assert.Equal(t, 50, cfg.Sim.MaxSteps)
	assert.Equal(t, "/dev/cu.usbserial-AQ0169PT", cfg.Download.Device)
	assert.Equal(t, 115200, cfg.Download.Baud)
	assert.Equal(t, 2*time.Second, cfg.Download.ResponseTimeout.Duration)
}

func TestLoadDefaultMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNamedMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "[asm]\ndumb = true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asm.dumb")
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[sim]\nmax_steps = -1\n"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "[download]\nresponse_timeout = \"soon\"\n"))
	assert.Error(t, err)
}
