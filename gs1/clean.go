// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Symbology identifiers emitted by scanners ahead of GS1 data:
// GS1-128, GS1 DataMatrix and GS1 QR Code.
var defaultPrefixes = []string{"]C1", "]d2", "]Q3"}

// DefaultSymbologyPrefixes returns the symbology identifiers stripped by
// the default parser.
func DefaultSymbologyPrefixes() []string {
	return append([]string(nil), defaultPrefixes...)
}

// isTrimmable reports whitespace and the ASCII information separators
// (FS, GS, RS, US) that scanners pad payloads with.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// IsBlank reports whether raw holds nothing but whitespace or separators.
func IsBlank(raw string) bool {
	return strings.TrimFunc(raw, isTrimmable) == ""
}

// cleanWith strips leading symbology identifiers and surrounding padding
// until neither remains, so cleaning a cleaned string is a no-op.
// Interior content is never touched.
func cleanWith(raw string, prefixes []string) string {
	s := strings.TrimFunc(raw, isTrimmable)
	for {
		p, ok := lo.Find(prefixes, func(p string) bool {
			return strings.HasPrefix(s, p)
		})
		if !ok {
			return s
		}
		s = strings.TrimFunc(s[len(p):], isTrimmable)
	}
}

// FormatDate turns a YYMMDD value into DD/MM/YYYY, assuming the 2000s.
// Values that are not exactly six characters are returned unchanged.
// The date is not checked against the calendar.
func FormatDate(v string) string {
	r := splitRunes(v)
	if len(r) != 6 {
		return v
	}
	return r[4] + r[5] + "/" + r[2] + r[3] + "/20" + r[0] + r[1]
}

// unformatDate is the inverse of FormatDate.
func unformatDate(v string) (string, bool) {
	r := splitRunes(v)
	if len(r) != 10 || r[2] != "/" || r[5] != "/" || r[6] != "2" || r[7] != "0" {
		return "", false
	}
	return r[8] + r[9] + r[3] + r[4] + r[0] + r[1], true
}

// splitRunes cuts v into one substring per rune, leaving invalid UTF-8
// bytes as they are.
func splitRunes(v string) []string {
	out := make([]string, 0, len(v))
	for len(v) > 0 {
		_, w := utf8.DecodeRuneInString(v)
		out = append(out, v[:w])
		v = v[w:]
	}
	return out
}
