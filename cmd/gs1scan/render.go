// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/MultiTechSystems/gs1-payload-schema/internal/config"
	"github.com/MultiTechSystems/gs1-payload-schema/scan"
)

// decoded is one rendered scan: the payload as given plus its result.
type decoded struct {
	Input       string `json:"input" yaml:"input"`
	scan.Result `yaml:",inline"`
}

// renderer writes decoded scans in one output format.
type renderer interface {
	Render(d decoded) error
	Close() error
}

func newRenderer(format string, w io.Writer) renderer {
	switch format {
	case config.FormatJSON:
		return &jsonRenderer{enc: json.NewEncoder(w)}
	case config.FormatYAML:
		return &yamlRenderer{enc: yaml.NewEncoder(w)}
	default:
		return &textRenderer{w: w}
	}
}

// jsonRenderer writes one JSON object per line.
type jsonRenderer struct {
	enc *json.Encoder
}

func (r *jsonRenderer) Render(d decoded) error { return r.enc.Encode(d) }
func (r *jsonRenderer) Close() error           { return nil }

// yamlRenderer writes one YAML document per scan.
type yamlRenderer struct {
	enc *yaml.Encoder
}

func (r *yamlRenderer) Render(d decoded) error { return r.enc.Encode(d) }
func (r *yamlRenderer) Close() error           { return r.enc.Close() }

type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) Render(d decoded) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 1, ' ', 0)
	if d.State == scan.StateError {
		fmt.Fprintf(tw, "[%s] error: %s\n", d.ID, d.Message)
	} else {
		fmt.Fprintf(tw, "[%s] %s\n", d.ID, d.State)
	}
	fmt.Fprintf(tw, "  input:\t%s\n", strconv.Quote(d.Input))
	if rec := d.Record; rec != nil {
		if rec.TradeItemNumber != nil {
			fmt.Fprintf(tw, "  trade_item_number:\t%s\n", *rec.TradeItemNumber)
		}
		if rec.LotNumber != nil {
			fmt.Fprintf(tw, "  lot_number:\t%s\n", *rec.LotNumber)
		}
		if rec.ExpirationDate != nil {
			fmt.Fprintf(tw, "  expiration_date:\t%s\n", *rec.ExpirationDate)
		}
		fmt.Fprintf(tw, "  raw_data:\t%s\n", strconv.Quote(rec.RawData))
	}
	return tw.Flush()
}

func (r *textRenderer) Close() error { return nil }
