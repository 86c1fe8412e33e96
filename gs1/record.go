// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	"github.com/samber/lo"
)

// Record holds the fields decoded from one payload.
// A nil field means the AI was not present.
type Record struct {
	TradeItemNumber *string `json:"trade_item_number,omitempty" yaml:"trade_item_number,omitempty"`
	LotNumber       *string `json:"lot_number,omitempty" yaml:"lot_number,omitempty"`
	ExpirationDate  *string `json:"expiration_date,omitempty" yaml:"expiration_date,omitempty"`
	RawData         string  `json:"raw_data" yaml:"raw_data"` // exactly as scanned
}

// Empty reports whether no field was decoded.
func (r Record) Empty() bool {
	return r.TradeItemNumber == nil && r.LotNumber == nil && r.ExpirationDate == nil
}

// Parser decodes payloads with a given table and set of symbology
// identifiers. It holds no mutable state and is safe for concurrent use.
type Parser struct {
	table    *Table
	prefixes []string
}

// NewParser creates a parser. A nil table selects DefaultTable and nil
// prefixes select DefaultSymbologyPrefixes.
func NewParser(table *Table, prefixes []string) *Parser {
	if table == nil {
		table = DefaultTable()
	}
	if prefixes == nil {
		prefixes = defaultPrefixes
	}
	return &Parser{
		table:    table,
		prefixes: lo.Uniq(lo.Compact(prefixes)),
	}
}

var defaultParser = NewParser(nil, nil)

// Table returns the parser's rule table.
func (p *Parser) Table() *Table {
	return p.table
}

// Clean strips symbology identifiers and surrounding whitespace.
func (p *Parser) Clean(raw string) string {
	return cleanWith(raw, p.prefixes)
}

// Tokenize splits cleaned input into AIs in order of appearance.
// Scanning stops at the first position where no AI in the table matches.
func (p *Parser) Tokenize(cleaned string) []ApplicationIdentifier {
	ais, _, _ := p.table.scan(cleaned)
	return ais
}

// Build decodes raw into a Record. It never fails: malformed input
// yields a record with no fields.
func (p *Parser) Build(raw string) Record {
	ais := p.Tokenize(p.Clean(raw))

	rec := Record{
		TradeItemNumber: firstValue(ais, AIGTIN),
		LotNumber:       firstValue(ais, AIBatchLot),
		ExpirationDate:  firstValue(ais, AIExpirationDate),
		RawData:         raw,
	}
	if rec.ExpirationDate != nil {
		d := FormatDate(*rec.ExpirationDate)
		rec.ExpirationDate = &d
	}
	return rec
}

// HasRecognizedFields reports whether raw contains at least one AI.
func (p *Parser) HasRecognizedFields(raw string) bool {
	return len(p.Tokenize(p.Clean(raw))) > 0
}

func firstValue(ais []ApplicationIdentifier, tag string) *string {
	ai, ok := lo.Find(ais, func(ai ApplicationIdentifier) bool {
		return ai.Tag == tag
	})
	if !ok {
		return nil
	}
	return &ai.Value
}

// Clean strips symbology identifiers and surrounding whitespace using the
// default identifiers.
func Clean(raw string) string {
	return defaultParser.Clean(raw)
}

// Tokenize splits cleaned input into AIs using DefaultTable.
func Tokenize(cleaned string) []ApplicationIdentifier {
	return defaultParser.Tokenize(cleaned)
}

// Build decodes raw into a Record using the default parser.
func Build(raw string) Record {
	return defaultParser.Build(raw)
}

// HasRecognizedFields reports whether raw contains at least one AI known
// to the default parser.
func HasRecognizedFields(raw string) bool {
	return defaultParser.HasRecognizedFields(raw)
}
