// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MultiTechSystems/gs1-payload-schema/internal/diag"
	"github.com/MultiTechSystems/gs1-payload-schema/scan"
)

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [payload...]",
		Short: "Decode payloads given as arguments or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := a.payloads(args)
			if err != nil {
				return fmt.Errorf("read payloads: %w", err)
			}

			proc := scan.NewProcessor(a.parser, scan.Options{Strict: a.cfg.Strict, Logger: a.logger})
			session := scan.NewSession(proc, a.logger)
			r := newRenderer(a.cfg.Format, a.out)

			failed := 0
			for _, p := range payloads {
				res := session.OnBarcodeDetected(a.unalias(p))
				if res.State == scan.StateError {
					failed++
					a.logger.Debug("decode failed", "scan_id", res.ID, "code", diag.Classify(res.Err))
				}
				if err := r.Render(decoded{Input: p, Result: res}); err != nil {
					return err
				}
			}
			if err := r.Close(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d payloads could not be decoded", failed, len(payloads))
			}
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [payload...]",
		Short: "Check payloads without printing their fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := a.payloads(args)
			if err != nil {
				return fmt.Errorf("read payloads: %w", err)
			}

			proc := scan.NewProcessor(a.parser, scan.Options{Strict: a.cfg.Strict, Logger: a.logger})
			invalid := 0
			for _, p := range payloads {
				if _, err := proc.Process(a.unalias(p)); err != nil {
					invalid++
					fmt.Fprintf(a.out, "invalid\t%s\t%s\t%v\n", diag.Classify(err), strconv.Quote(p), err)
					continue
				}
				fmt.Fprintf(a.out, "ok\t%s\n", strconv.Quote(p))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d payloads invalid", invalid, len(payloads))
			}
			return nil
		},
	}
}
