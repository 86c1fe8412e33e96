// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package scan turns decoded barcode strings into GS1 records for display,
// rejecting blank and unrecognizable payloads.
package scan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
)

var (
	ErrEmptyBarcode  = errors.New("barcode data is empty")
	ErrInvalidFormat = errors.New("invalid GS1-128 barcode format")
)

// Decoder is the parsing capability a Processor depends on.
// *gs1.Parser satisfies it.
type Decoder interface {
	Build(raw string) gs1.Record
	HasRecognizedFields(raw string) bool
}

// validator is implemented by decoders that offer a strict check.
type validator interface {
	Validate(raw string) error
}

// Options configures a Processor.
type Options struct {
	// Strict rejects payloads with unparsed trailing data or truncated
	// values. Requires a decoder with a Validate method; NewProcessor logs
	// a warning and decodes leniently otherwise.
	Strict bool
	Logger *slog.Logger
}

// Processor validates and decodes scanned payloads.
type Processor struct {
	decoder Decoder
	strict  bool
	logger  *slog.Logger
}

// NewProcessor creates a processor. A nil decoder selects the default
// gs1 parser.
func NewProcessor(decoder Decoder, opts Options) *Processor {
	if decoder == nil {
		decoder = gs1.NewParser(nil, nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if _, ok := decoder.(validator); opts.Strict && !ok {
		logger.Warn("strict mode requested but decoder has no Validate method; strict checks disabled",
			"decoder", fmt.Sprintf("%T", decoder))
	}
	return &Processor{decoder: decoder, strict: opts.Strict, logger: logger}
}

// Process decodes raw. Blank input fails with ErrEmptyBarcode and input
// without any recognized AI fails with ErrInvalidFormat.
func (p *Processor) Process(raw string) (gs1.Record, error) {
	if gs1.IsBlank(raw) {
		p.logger.Debug("rejected blank barcode", "len", len(raw))
		return gs1.Record{}, ErrEmptyBarcode
	}
	if !p.decoder.HasRecognizedFields(raw) {
		p.logger.Debug("rejected barcode", "raw", raw, "err", ErrInvalidFormat)
		return gs1.Record{}, ErrInvalidFormat
	}
	if p.strict {
		if v, ok := p.decoder.(validator); ok {
			if err := v.Validate(raw); err != nil {
				p.logger.Debug("strict check failed", "raw", raw, "err", err)
				return gs1.Record{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
			}
		}
	}

	rec := p.decoder.Build(raw)
	p.logger.Debug("decoded barcode",
		"gtin", rec.TradeItemNumber != nil,
		"lot", rec.LotNumber != nil,
		"expiry", rec.ExpirationDate != nil)
	return rec, nil
}
