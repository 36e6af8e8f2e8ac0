package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/plus3/hexmap/internal/discovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(nil)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, opts.Duration)
	assert.Equal(t, 1000, opts.VerifyEvery)
	assert.Equal(t, discovery.DefaultConfig(), opts.Walk)
	assert.Equal(t, slog.LevelInfo, opts.level)
}

func TestParseOptionsFlags(t *testing.T) {
	opts, err := parseOptions([]string{
		"--steps", "50",
		"--width", "8",
		"--height=6",
		"--loss-rate", "0.1",
		"--relocate-every", "20",
		"--log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, opts.Steps)
	assert.Equal(t, 8, opts.Walk.Width)
	assert.Equal(t, 6, opts.Walk.Height)
	assert.Equal(t, 0.1, opts.Walk.LossRate)
	assert.Equal(t, 20, opts.Walk.RelocateEvery)
	assert.Equal(t, slog.LevelDebug, opts.level)
}

func TestParseOptionsConfigFile(t *testing.T) {
	path := writeConfig(t, `
duration: 2s
steps: 300
logLevel: warn
walk:
  width: 10
  seed: 42
  lossRate: 0.2
`)

	opts, err := parseOptions([]string{"--config", path, "--seed", "7"})
	require.NoError(t, err)

	assert.Equal(t, path, opts.Config)
	assert.Equal(t, 2*time.Second, opts.Duration)
	assert.Equal(t, 300, opts.Steps)
	assert.Equal(t, slog.LevelWarn, opts.level)
	assert.Equal(t, 10, opts.Walk.Width)
	assert.Equal(t, discovery.DefaultConfig().Height, opts.Walk.Height, "keys missing from the file keep their defaults")
	assert.Equal(t, 0.2, opts.Walk.LossRate)
	assert.Equal(t, uint64(7), opts.Walk.Seed, "flags override the file")
}

func TestParseOptionsConfigErrors(t *testing.T) {
	_, err := parseOptions([]string{"-f", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := writeConfig(t, "walk: [1, 2]\n")
	_, err = parseOptions([]string{"--config=" + path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestParseOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no limit", []string{"--duration", "0s"}},
		{"negative steps", []string{"--steps=-1"}},
		{"zero width", []string{"--width", "0"}},
		{"loss rate too high", []string{"--loss-rate", "1"}},
		{"negative radius", []string{"--neighbor-radius=-2"}},
		{"unknown log level", []string{"--log-level", "loud"}},
		{"positional argument", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseOptionsHelp(t *testing.T) {
	_, err := parseOptions([]string{"--help"})

	var flagsErr *flags.Error
	require.True(t, errors.As(err, &flagsErr))
	assert.Equal(t, flags.ErrHelp, flagsErr.Type)
	assert.Contains(t, flagsErr.Message, "--verify-every")
}

func TestExtractConfigPath(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"--steps", "5"}, ""},
		{[]string{"-f", "a.yaml"}, "a.yaml"},
		{[]string{"--steps", "5", "--config", "b.yaml"}, "b.yaml"},
		{[]string{"--config=c.yaml"}, "c.yaml"},
		{[]string{"--config"}, ""},
		{[]string{"--", "-f", "d.yaml"}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractConfigPath(tt.args), "args %v", tt.args)
	}
}
