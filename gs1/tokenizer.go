// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import "unicode/utf8"

// ApplicationIdentifier is an AI tag paired with its extracted value.
type ApplicationIdentifier struct {
	Tag   string `json:"ai" yaml:"ai"`
	Value string `json:"value" yaml:"value"`
}

// scanContext maintains state during tokenization. Pos is a byte index
// into Data and Offset counts the runes consumed so far. Invalid UTF-8
// bytes count as one rune each and are returned unchanged.
type scanContext struct {
	Data   string
	Pos    int
	Offset int
}

func newScanContext(s string) *scanContext {
	return &scanContext{Data: s}
}

// Remaining returns the number of runes remaining.
func (ctx *scanContext) Remaining() int {
	return utf8.RuneCountInString(ctx.Data[ctx.Pos:])
}

// span measures the next n runes, or fewer if the input ends first.
func (ctx *scanContext) span(n int) (size, runes int) {
	for runes < n && ctx.Pos+size < len(ctx.Data) {
		_, w := utf8.DecodeRuneInString(ctx.Data[ctx.Pos+size:])
		size += w
		runes++
	}
	return size, runes
}

func (ctx *scanContext) advance(size, runes int) string {
	v := ctx.Data[ctx.Pos : ctx.Pos+size]
	ctx.Pos += size
	ctx.Offset += runes
	return v
}

// Peek returns n runes at the current offset without advancing.
func (ctx *scanContext) Peek(n int) (string, bool) {
	size, runes := ctx.span(n)
	if runes < n {
		return "", false
	}
	return ctx.Data[ctx.Pos : ctx.Pos+size], true
}

// ReadFixed reads up to n runes, fewer if the input ends first.
func (ctx *scanContext) ReadFixed(n int) string {
	return ctx.advance(ctx.span(n))
}

// ReadUntil reads up to the next sep or the end of input.
// The separator is consumed but not returned.
func (ctx *scanContext) ReadUntil(sep rune) string {
	sepLen := utf8.RuneLen(sep)
	size, runes := 0, 0
	for ctx.Pos+size < len(ctx.Data) {
		r, w := utf8.DecodeRuneInString(ctx.Data[ctx.Pos+size:])
		if r == sep && w == sepLen {
			v := ctx.advance(size, runes)
			ctx.advance(w, 1)
			return v
		}
		size += w
		runes++
	}
	return ctx.advance(size, runes)
}

// scan tokenizes cleaned input and returns the AIs found together with
// the rune offset where scanning stopped and the unparsed rest.
func (t *Table) scan(cleaned string) ([]ApplicationIdentifier, int, string) {
	ctx := newScanContext(cleaned)
	var ais []ApplicationIdentifier

	for ctx.Pos < len(ctx.Data) {
		ai, ok := t.next(ctx)
		if !ok {
			// Unknown or empty AI; trailing data is left unparsed.
			break
		}
		ais = append(ais, ai)
	}
	return ais, ctx.Offset, ctx.Data[ctx.Pos:]
}

// next matches one AI at the current offset. Shorter tags win: once a
// candidate is in the table, longer candidates are not considered.
// On failure the offset is left unchanged.
func (t *Table) next(ctx *scanContext) (ApplicationIdentifier, bool) {
	for n := minTagLength; n <= maxTagLength; n++ {
		tag, ok := ctx.Peek(n)
		if !ok {
			break
		}
		rule, ok := t.rules[tag]
		if !ok {
			continue
		}

		saved := *ctx
		ctx.advance(len(tag), n)
		var value string
		if rule.Fixed() {
			value = ctx.ReadFixed(rule.Length)
		} else {
			value = ctx.ReadUntil(t.separator)
		}
		if value == "" {
			*ctx = saved
			return ApplicationIdentifier{}, false
		}
		return ApplicationIdentifier{Tag: tag, Value: value}, true
	}
	return ApplicationIdentifier{}, false
}
