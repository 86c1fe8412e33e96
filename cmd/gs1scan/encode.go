// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
	"github.com/MultiTechSystems/gs1-payload-schema/internal/config"
)

func (a *app) encodeCmd() *cobra.Command {
	var (
		gtin, lot, expiry string
		raw               bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build an element string from field values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rec gs1.Record
			if cmd.Flags().Changed("gtin") {
				rec.TradeItemNumber = &gtin
			}
			if cmd.Flags().Changed("lot") {
				rec.LotNumber = &lot
			}
			if cmd.Flags().Changed("expiry") {
				rec.ExpirationDate = &expiry
			}

			s, err := a.parser.Encode(rec)
			if err != nil {
				a.logger.Debug("encode failed", "err", err)
				return err
			}
			if !raw {
				s = a.alias(s)
			}
			fmt.Fprintln(a.out, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&gtin, "gtin", "", "trade item number, AI 01 (14 digits)")
	cmd.Flags().StringVar(&lot, "lot", "", "batch or lot number, AI 10")
	cmd.Flags().StringVar(&expiry, "expiry", "", "expiration date, AI 17 (DD/MM/YYYY or YYMMDD)")
	cmd.Flags().BoolVar(&raw, "raw", false, "emit the separator itself instead of its alias")
	return cmd
}

func (a *app) tableCmd() *cobra.Command {
	var schema bool
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the active AI table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schema {
				_, err := io.WriteString(a.out, gs1.TableSchema)
				return err
			}
			if a.cfg.Format == config.FormatJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(a.parser.Table())
			}
			enc := yaml.NewEncoder(a.out)
			enc.SetIndent(2)
			if err := enc.Encode(a.parser.Table()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&schema, "schema", false, "print the JSON Schema table files are checked against")
	return cmd
}
