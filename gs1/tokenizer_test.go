// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package gs1

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ApplicationIdentifier
	}{
		{
			name:  "gtin only",
			input: "0112345678901234",
			want:  []ApplicationIdentifier{{"01", "12345678901234"}},
		},
		{
			name:  "gtin and lot",
			input: "011234567890123410ABC123",
			want:  []ApplicationIdentifier{{"01", "12345678901234"}, {"10", "ABC123"}},
		},
		{
			name:  "lot terminated by separator",
			input: "01123456789012341017231231\x1d10LOT123",
			want: []ApplicationIdentifier{
				{"01", "12345678901234"},
				{"10", "17231231"},
				{"10", "LOT123"},
			},
		},
		{
			name:  "expiry then lot",
			input: "011234567890123417231231" + "10LOT123",
			want: []ApplicationIdentifier{
				{"01", "12345678901234"},
				{"17", "231231"},
				{"10", "LOT123"},
			},
		},
		{
			name:  "separator after fixed value stops scan",
			input: "011234567890123417231231\x1d10LOT123",
			want: []ApplicationIdentifier{
				{"01", "12345678901234"},
				{"17", "231231"},
			},
		},
		{
			name:  "fixed value truncated at end of input",
			input: "01123",
			want:  []ApplicationIdentifier{{"01", "123"}},
		},
		{
			name:  "trailing garbage dropped",
			input: "0112345678901234172312311",
			want:  []ApplicationIdentifier{{"01", "12345678901234"}, {"17", "231231"}},
		},
		{
			name:  "unknown AI stops scan",
			input: "21SERIAL\x1d0112345678901234",
			want:  nil,
		},
		{
			name:  "empty variable value dropped",
			input: "10\x1d0112345678901234",
			want:  nil,
		},
		{
			name:  "empty value after valid AI stops scan",
			input: "0112345678901234" + "10\x1d17231231",
			want:  []ApplicationIdentifier{{"01", "12345678901234"}},
		},
		{
			name:  "tag with nothing after it",
			input: "17",
			want:  nil,
		},
		{
			name:  "separator consumed between variable values",
			input: "10A\x1d10B\x1d",
			want:  []ApplicationIdentifier{{"10", "A"}, {"10", "B"}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "single character",
			input: "0",
			want:  nil,
		},
		{
			name:  "multibyte value not split",
			input: "10Lötß",
			want:  []ApplicationIdentifier{{"10", "Lötß"}},
		},
		{
			name:  "invalid utf-8 kept as is",
			input: "10A\xffB\x1d01\xfe2345678901234",
			want:  []ApplicationIdentifier{{"10", "A\xffB"}, {"01", "\xfe2345678901234"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeShortestTagWins(t *testing.T) {
	// "10" and "100" both exist; the two-digit tag must win.
	table, err := NewTable("prefix", 0, []Rule{
		{AI: "10"},
		{AI: "100", Length: 2},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	p := NewParser(table, nil)

	got := p.Tokenize("10042")
	want := []ApplicationIdentifier{{"10", "042"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeFourDigitAI(t *testing.T) {
	table, err := NewTable("weights", 0, []Rule{
		{AI: "3103", Length: 6},
		{AI: "01", Length: 14},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	p := NewParser(table, nil)

	got := p.Tokenize("31030012500112345678901234")
	want := []ApplicationIdentifier{{"3103", "001250"}, {"01", "12345678901234"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeCustomSeparator(t *testing.T) {
	table, err := NewTable("pipe", '|', []Rule{{AI: "10"}, {AI: "21"}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	p := NewParser(table, nil)

	got := p.Tokenize("10LOT|21SER\x1d1")
	want := []ApplicationIdentifier{{"10", "LOT"}, {"21", "SER\x1d1"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestScanOffset(t *testing.T) {
	tests := []struct {
		input    string
		want     int
		wantRest string
	}{
		{"", 0, ""},
		{"0112345678901234", 16, ""},
		{"0112345678901234XX", 16, "XX"},
		{"10AB\x1d", 5, ""},
		{"10\x1d", 0, "10\x1d"},
		{"10é\x1dzz", 4, "zz"},
		{"10A\xff\x1d\xfezz", 5, "\xfezz"},
	}

	for _, tt := range tests {
		_, got, rest := DefaultTable().scan(tt.input)
		if got != tt.want {
			t.Errorf("scan(%q) offset = %d, want %d", tt.input, got, tt.want)
		}
		if rest != tt.wantRest {
			t.Errorf("scan(%q) rest = %q, want %q", tt.input, rest, tt.wantRest)
		}
	}
}

func TestScanContextMultibyte(t *testing.T) {
	ctx := newScanContext("é\xffab")

	if got, ok := ctx.Peek(2); !ok || got != "é\xff" {
		t.Errorf("Peek(2) = %q, %v", got, ok)
	}
	if got := ctx.ReadFixed(3); got != "é\xffa" {
		t.Errorf("ReadFixed(3) = %q", got)
	}
	if ctx.Offset != 3 || ctx.Pos != 4 {
		t.Errorf("Offset, Pos = %d, %d, want 3, 4", ctx.Offset, ctx.Pos)
	}
	if ctx.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", ctx.Remaining())
	}
}

func TestScanContext(t *testing.T) {
	ctx := newScanContext("ab\x1dcd")

	if got, ok := ctx.Peek(2); !ok || got != "ab" {
		t.Errorf("Peek(2) = %q, %v", got, ok)
	}
	if _, ok := ctx.Peek(6); ok {
		t.Error("Peek past end should fail")
	}
	if got := ctx.ReadUntil(FNC1); got != "ab" {
		t.Errorf("ReadUntil() = %q, want %q", got, "ab")
	}
	if ctx.Offset != 3 || ctx.Pos != 3 {
		t.Errorf("Offset, Pos = %d, %d, want 3, 3", ctx.Offset, ctx.Pos)
	}
	if got := ctx.ReadFixed(10); got != "cd" {
		t.Errorf("ReadFixed(10) = %q, want %q", got, "cd")
	}
	if ctx.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", ctx.Remaining())
	}
}
