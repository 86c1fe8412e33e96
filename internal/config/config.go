// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package config loads gs1scan settings. Precedence, lowest first:
// defaults, config file, environment, command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
	"github.com/MultiTechSystems/gs1-payload-schema/internal/diag"
)

// Environment variables read by ApplyEnv.
const (
	EnvTable          = "GS1SCAN_TABLE"
	EnvPrefixes       = "GS1SCAN_PREFIXES"
	EnvStrict         = "GS1SCAN_STRICT"
	EnvFormat         = "GS1SCAN_FORMAT"
	EnvLogLevel       = "GS1SCAN_LOG_LEVEL"
	EnvSeparatorAlias = "GS1SCAN_SEPARATOR_ALIAS"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds gs1scan settings.
type Config struct {
	TablePath         string   `yaml:"table_path"`
	SymbologyPrefixes []string `yaml:"symbology_prefixes"`
	// SeparatorAlias is typed in place of FNC1, which keyboards cannot
	// produce. Empty disables the substitution.
	SeparatorAlias string `yaml:"separator_alias"`
	Strict         bool   `yaml:"strict"`
	Format         string `yaml:"format"`
	LogLevel       string `yaml:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		SymbologyPrefixes: gs1.DefaultSymbologyPrefixes(),
		SeparatorAlias:    "<GS>",
		Format:            FormatText,
		LogLevel:          "info",
	}
}

// Load overlays the YAML file at path on Defaults. Unknown keys are
// rejected. An empty path returns Defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup
// (normally os.LookupEnv).
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvTable); ok {
		c.TablePath = v
	}
	if v, ok := lookup(EnvPrefixes); ok {
		c.SymbologyPrefixes = splitList(v)
	}
	if v, ok := lookup(EnvStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Strict = b
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Format = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvSeparatorAlias); ok {
		c.SeparatorAlias = v
	}
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", c.Format)
	}
	if !diag.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	for _, p := range c.SymbologyPrefixes {
		if strings.TrimSpace(p) == "" {
			return errors.New("symbology prefixes must not be blank")
		}
	}
	return nil
}

// Parser builds the parser described by the config.
func (c Config) Parser() (*gs1.Parser, error) {
	var table *gs1.Table
	if c.TablePath != "" {
		t, err := gs1.LoadTable(c.TablePath)
		if err != nil {
			return nil, err
		}
		table = t
	}
	prefixes := c.SymbologyPrefixes
	if prefixes == nil {
		prefixes = []string{}
	}
	return gs1.NewParser(table, prefixes), nil
}
