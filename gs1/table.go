// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package gs1 decodes GS1-128 element strings into structured records.
// Application Identifiers (AIs) are recognized through a declarative rule
// table, and selected values (such as expiration dates) are normalized
// while the record is assembled.
package gs1

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Application Identifiers mapped onto Record fields.
const (
	AIGTIN           = "01"
	AIBatchLot       = "10"
	AIExpirationDate = "17"
)

// FNC1 is the GS1 Function Code 1 as delivered by scanners (ASCII GS).
// It terminates variable-length values.
const FNC1 = '\x1D'

// Candidate AI lengths, tried shortest first.
const (
	minTagLength = 2
	maxTagLength = 4
)

// Rule describes how the value following an AI is extracted.
type Rule struct {
	AI          string `json:"ai" yaml:"ai"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Length      int    `json:"length,omitempty" yaml:"length,omitempty"` // 0 = variable, ends at separator
}

// Fixed reports whether the value has a fixed length.
func (r Rule) Fixed() bool {
	return r.Length > 0
}

// tableDef is the serialized form of a Table.
type tableDef struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Separator   string `json:"separator,omitempty" yaml:"separator,omitempty"`
	Identifiers []Rule `json:"identifiers" yaml:"identifiers"`
}

// Table is an immutable set of AI extraction rules.
type Table struct {
	name      string
	separator rune
	rules     map[string]Rule
	order     []string
}

var defaultTable = mustTable(NewTable("gs1-default", FNC1, []Rule{
	{AI: AIGTIN, Name: "gtin", Description: "Global Trade Item Number", Length: 14},
	{AI: AIBatchLot, Name: "batch_lot", Description: "Batch or lot number"},
	{AI: AIExpirationDate, Name: "expiry", Description: "Expiration date (YYMMDD)", Length: 6},
}))

func mustTable(t *Table, err error) *Table {
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns the table of AIs decoded into a Record.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable validates rules and builds a table from them.
// A zero separator selects FNC1.
func NewTable(name string, separator rune, rules []Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("table %q has no identifiers", name)
	}
	if separator == 0 {
		separator = FNC1
	}

	t := &Table{
		name:      name,
		separator: separator,
		rules:     make(map[string]Rule, len(rules)),
		order:     make([]string, 0, len(rules)),
	}
	for i, r := range rules {
		if !validAI(r.AI) {
			return nil, fmt.Errorf("identifier %d: AI %q must be %d-%d digits", i, r.AI, minTagLength, maxTagLength)
		}
		if r.Length < 0 {
			return nil, fmt.Errorf("identifier %d: AI %s has negative length %d", i, r.AI, r.Length)
		}
		if _, dup := t.rules[r.AI]; dup {
			return nil, fmt.Errorf("identifier %d: duplicate AI %s", i, r.AI)
		}
		t.rules[r.AI] = r
		t.order = append(t.order, r.AI)
	}
	return t, nil
}

func validAI(ai string) bool {
	if len(ai) < minTagLength || len(ai) > maxTagLength {
		return false
	}
	for i := 0; i < len(ai); i++ {
		if ai[i] < '0' || ai[i] > '9' {
			return false
		}
	}
	return true
}

// ParseTable parses a table from a YAML or JSON string. The document
// must conform to TableSchema.
func ParseTable(data string) (*Table, error) {
	var doc any
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse table: %w", err)
		}
	}
	if err := checkTableDocument(doc); err != nil {
		return nil, err
	}

	// The schema guarantees a JSON-compatible shape.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	var def tableDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}

	var sep rune
	if def.Separator != "" {
		if utf8.RuneCountInString(def.Separator) != 1 {
			return nil, fmt.Errorf("separator %q must be a single character", def.Separator)
		}
		sep, _ = utf8.DecodeRuneInString(def.Separator)
	}
	return NewTable(def.Name, sep, def.Identifiers)
}

// LoadTable reads a table definition file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	t, err := ParseTable(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Separator returns the character terminating variable-length values.
func (t *Table) Separator() rune {
	return t.separator
}

// Lookup returns the rule for an AI.
func (t *Table) Lookup(ai string) (Rule, bool) {
	r, ok := t.rules[ai]
	return r, ok
}

// Rules returns a copy of the rules in declaration order.
func (t *Table) Rules() []Rule {
	return lo.Map(t.order, func(ai string, _ int) Rule {
		return t.rules[ai]
	})
}

// MarshalYAML renders the table in the same form ParseTable accepts.
func (t *Table) MarshalYAML() (any, error) {
	return t.def(), nil
}

// MarshalJSON renders the table in the same form ParseTable accepts.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.def())
}

func (t *Table) def() tableDef {
	return tableDef{
		Name:        t.name,
		Separator:   string(t.separator),
		Identifiers: t.Rules(),
	}
}
