// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	"fmt"
	"unicode/utf8"
)

// ParseError reports where a payload stopped being decodable.
// Offset counts runes into the cleaned payload.
type ParseError struct {
	Offset    int
	Remaining string
	Message   string
}

func (e *ParseError) Error() string {
	if e.Remaining == "" {
		return e.Message
	}
	return fmt.Sprintf("%s at offset %d: %q", e.Message, e.Offset, e.Remaining)
}

// Validate is a strict check layered over Build. It fails when no AI is
// recognized, when a fixed-length value was cut short by the end of the
// payload, or when trailing data was left unparsed. Build itself keeps
// ignoring all three.
func (p *Parser) Validate(raw string) error {
	cleaned := p.Clean(raw)
	ais, offset, rest := p.table.scan(cleaned)
	if len(ais) == 0 {
		return &ParseError{Remaining: cleaned, Message: "no recognized application identifier"}
	}

	last := ais[len(ais)-1]
	if rule, _ := p.table.Lookup(last.Tag); rule.Fixed() {
		if n := utf8.RuneCountInString(last.Value); n < rule.Length {
			return &ParseError{
				Offset:    offset - n,
				Remaining: last.Value,
				Message:   fmt.Sprintf("AI %s value truncated to %d of %d characters", last.Tag, n, rule.Length),
			}
		}
	}

	if rest != "" {
		return &ParseError{Offset: offset, Remaining: rest, Message: "unparsed trailing data"}
	}
	return nil
}

// Validate applies the strict check with the default parser.
func Validate(raw string) error {
	return defaultParser.Validate(raw)
}
