// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, []string{"]C1", "]d2", "]Q3"}, cfg.SymbologyPrefixes)
	assert.Equal(t, "<GS>", cfg.SeparatorAlias)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Strict)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "gs1scan.yaml", `
strict: true
format: json
symbology_prefixes: ["]C1"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Strict)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, []string{"]C1"}, cfg.SymbologyPrefixes)
	// untouched keys keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "<GS>", cfg.SeparatorAlias)
}

func TestLoadEmptyPathAndFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	cfg, err = Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "unknown.yaml", "colour: blue\n"))
	assert.ErrorContains(t, err, "colour")
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Defaults().ApplyEnv(lookupFrom(map[string]string{
		EnvTable:          "/etc/gs1/table.yaml",
		EnvPrefixes:       "]C1, ]e0 ,,",
		EnvStrict:         "true",
		EnvFormat:         "yaml",
		EnvLogLevel:       "debug",
		EnvSeparatorAlias: "{GS}",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/etc/gs1/table.yaml", cfg.TablePath)
	assert.Equal(t, []string{"]C1", "]e0"}, cfg.SymbologyPrefixes)
	assert.True(t, cfg.Strict)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "{GS}", cfg.SeparatorAlias)
}

func TestApplyEnvOverridesFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "c.yaml", "format: json\n"))
	require.NoError(t, err)

	cfg, err = cfg.ApplyEnv(lookupFrom(map[string]string{EnvFormat: "yaml"}))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, cfg.Format)
}

func TestApplyEnvBadBool(t *testing.T) {
	_, err := Defaults().ApplyEnv(lookupFrom(map[string]string{EnvStrict: "sometimes"}))
	assert.ErrorContains(t, err, EnvStrict)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"format", func(c *Config) { c.Format = "xml" }, "unknown format"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"blank prefix", func(c *Config) { c.SymbologyPrefixes = []string{" "} }, "must not be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "GS1SCAN_TEST_DOTENV=from-file\nGS1SCAN_TEST_PRESET=from-file\n")
	t.Setenv("GS1SCAN_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("GS1SCAN_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("GS1SCAN_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("GS1SCAN_TEST_PRESET"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestParser(t *testing.T) {
	table := writeFile(t, "table.yaml", `
identifiers:
  - ai: "21"
  - ai: "01"
    length: 14
`)
	cfg := Defaults()
	cfg.TablePath = table
	cfg.SymbologyPrefixes = []string{"]e0"}

	p, err := cfg.Parser()
	require.NoError(t, err)
	assert.True(t, p.HasRecognizedFields("]e021SERIAL"))
	assert.False(t, p.HasRecognizedFields("]C10112345678901234"))

	cfg.SymbologyPrefixes = nil
	p, err = cfg.Parser()
	require.NoError(t, err)
	assert.Equal(t, "]C10112345678901234", p.Clean("]C10112345678901234"))

	cfg.TablePath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Parser()
	assert.Error(t, err)
}
