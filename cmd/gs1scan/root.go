// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
	"github.com/MultiTechSystems/gs1-payload-schema/internal/config"
	"github.com/MultiTechSystems/gs1-payload-schema/internal/diag"
)

// app carries flag values and the state built from them.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	tablePath  string
	format     string
	logLevel   string
	strict     bool

	cfg    config.Config
	parser *gs1.Parser
	logger *slog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:               "gs1scan",
		Short:             "Decode GS1-128 barcode payloads",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (YAML)")
	f.StringVar(&a.tablePath, "table", "", "AI table file (YAML or JSON)")
	f.StringVarP(&a.format, "format", "f", "", "output format: text, json or yaml")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&a.strict, "strict", false, "reject unparsed trailing data and truncated values")

	root.AddCommand(a.decodeCmd(), a.validateCmd(), a.encodeCmd(), a.tableCmd())
	return root
}

// setup resolves the configuration: defaults, file, .env and
// environment, then flags that were set explicitly.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cfg, err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("table") {
		cfg.TablePath = a.tablePath
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = diag.NewLogger(a.errOut, cfg.LogLevel)
	a.parser, err = cfg.Parser()
	if err != nil {
		return err
	}
	a.logger.Debug("configured",
		"table", a.parser.Table().Name(),
		"strict", cfg.Strict,
		"format", cfg.Format)
	return nil
}

// payloads returns args, or the non-empty lines of stdin when no
// arguments were given.
func (a *app) payloads(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// unalias replaces the typed separator alias with the table separator.
func (a *app) unalias(raw string) string {
	if a.cfg.SeparatorAlias == "" {
		return raw
	}
	return strings.ReplaceAll(raw, a.cfg.SeparatorAlias, string(a.parser.Table().Separator()))
}

// alias is the inverse of unalias, for display.
func (a *app) alias(s string) string {
	if a.cfg.SeparatorAlias == "" {
		return s
	}
	return strings.ReplaceAll(s, string(a.parser.Table().Separator()), a.cfg.SeparatorAlias)
}
