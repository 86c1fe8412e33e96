// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EncodeError reports a record field that cannot be written as an
// element string.
type EncodeError struct {
	AI      string
	Message string
}

func (e *EncodeError) Error() string {
	if e.AI == "" {
		return e.Message
	}
	return fmt.Sprintf("AI %s: %s", e.AI, e.Message)
}

// Encode writes rec as an element string. Fixed-length AIs come first;
// variable-length AIs follow, separated by the table separator. RawData
// is ignored.
//
// Build decodes the result back to the same fields when ExpirationDate is
// nil or in DD/MM/20YY form. A raw YYMMDD expiry is accepted too, but it
// decodes back as DD/MM/20YY.
func (p *Parser) Encode(rec Record) (string, error) {
	type element struct {
		ai    string
		value string
	}
	var elements []element

	if rec.TradeItemNumber != nil {
		elements = append(elements, element{AIGTIN, *rec.TradeItemNumber})
	}
	if rec.ExpirationDate != nil {
		v := *rec.ExpirationDate
		if raw, ok := unformatDate(v); ok {
			v = raw
		} else if utf8.RuneCountInString(v) != 6 {
			return "", &EncodeError{AI: AIExpirationDate, Message: fmt.Sprintf("date %q is neither DD/MM/20YY nor YYMMDD", v)}
		}
		elements = append(elements, element{AIExpirationDate, v})
	}
	if rec.LotNumber != nil {
		elements = append(elements, element{AIBatchLot, *rec.LotNumber})
	}
	if len(elements) == 0 {
		return "", &EncodeError{Message: "record has no fields"}
	}

	var fixed, variable strings.Builder
	sep := string(p.table.separator)
	for _, el := range elements {
		rule, ok := p.table.Lookup(el.ai)
		if !ok {
			return "", &EncodeError{AI: el.ai, Message: fmt.Sprintf("not in table %q", p.table.name)}
		}
		if el.value == "" {
			return "", &EncodeError{AI: el.ai, Message: "empty value"}
		}
		if !utf8.ValidString(el.value) {
			return "", &EncodeError{AI: el.ai, Message: "value is not valid UTF-8"}
		}
		if strings.IndexFunc(el.value, unencodable) >= 0 {
			return "", &EncodeError{AI: el.ai, Message: fmt.Sprintf("value %q contains whitespace or control characters", el.value)}
		}
		if strings.ContainsRune(el.value, p.table.separator) {
			return "", &EncodeError{AI: el.ai, Message: "value contains the separator"}
		}

		if rule.Fixed() {
			if n := utf8.RuneCountInString(el.value); n != rule.Length {
				return "", &EncodeError{AI: el.ai, Message: fmt.Sprintf("value has %d characters, want %d", n, rule.Length)}
			}
			fixed.WriteString(el.ai + el.value)
			continue
		}
		if variable.Len() > 0 {
			variable.WriteString(sep)
		}
		variable.WriteString(el.ai + el.value)
	}
	return fixed.String() + variable.String(), nil
}

func unencodable(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// Encode writes rec with the default parser.
func Encode(rec Record) (string, error) {
	return defaultParser.Encode(rec)
}
