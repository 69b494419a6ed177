// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import (
	"testing"

	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func TestAtDocumentBoundary(t *testing.T) {
	tests := []struct {
		src    string
		offset int
		sep    byte
		want   bool
	}{
		{"---\n", 0, 0, true},
		{"--- a", 0, '-', true},
		{"...", 0, '-', false},
		{"...", 0, '.', true},
		{"a\n---", 2, 0, true},
		{"a---", 1, 0, false},
		{"----", 0, 0, false},
		{"--", 0, 0, false},
		{"", 0, 0, true},
		{"a", 1, '.', true},
	}
	for _, tt := range tests {
		got := AtDocumentBoundary(tt.src, tt.offset, tt.sep)
		assert.Equalf(t, tt.want, got, "AtDocumentBoundary(%q, %d, %q)", tt.src, tt.offset, tt.sep)
	}
}

func TestCursorFunctions(t *testing.T) {
	assert.Equal(t, 4, EndOfIdentifier("&abc def", 1))
	assert.Equal(t, 8, EndOfIdentifier("!<tag:x> y", 1))
	assert.Equal(t, 1, EndOfIdentifier("a,b", 0))

	assert.Equal(t, 2, EndOfIndent("  a", 0))
	assert.Equal(t, 0, EndOfIndent("\ta", 0))
	assert.Equal(t, 3, EndOfWhiteSpace(" \t a", 0))
	assert.Equal(t, 2, EndOfLine("ab\ncd", 0))
	assert.Equal(t, 5, EndOfLine("ab\ncd", 3))

	assert.Equal(t, 3, StartOfLine("ab\ncd", 4))
	assert.Equal(t, 3, StartOfLine("ab\ncd", 3))
	assert.Equal(t, 0, StartOfLine("ab\ncd", 1))

	assert.True(t, AtBlank("a b", 1, false))
	assert.False(t, AtBlank("ab", 2, false))
	assert.True(t, AtBlank("ab", 2, true))
	assert.True(t, AtCollectionItem("- a", 0))
	assert.True(t, AtCollectionItem("?", 0))
	assert.False(t, AtCollectionItem("-a", 0))

	assert.Equal(t, 1, NormalizeOffset("a\nb", 2))
	assert.Equal(t, 3, NormalizeOffset("a  b", 1))
	assert.Equal(t, 1, NormalizeOffset("a\nb", 1))
}

func TestEndOfBlockIndent(t *testing.T) {
	end, ok := EndOfBlockIndent("  a", 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 2, end)

	_, ok = EndOfBlockIndent("a", 0, 0)
	assert.False(t, ok)

	end, ok = EndOfBlockIndent("   \nb", 4, 0)
	assert.True(t, ok)
	assert.Equal(t, 3, end)
}

func TestFoldNewline(t *testing.T) {
	tests := []struct {
		src    string
		offset int
		indent int
		fold   string
		end    int
		bad    bool
	}{
		{"a\nb", 1, -1, " ", 1, false},
		{"a\n\nb", 1, -1, "\n", 2, false},
		{"a\n\n\nb", 1, -1, "\n\n", 3, false},
		{"a\nb", 1, 0, " ", 1, true},
		{"a\n  b", 1, 0, " ", 3, false},
	}
	for _, tt := range tests {
		fold, end, bad := FoldNewline(tt.src, tt.offset, tt.indent)
		assert.Equalf(t, tt.fold, fold, "fold of %q", tt.src)
		assert.Equalf(t, tt.end, end, "end of %q", tt.src)
		assert.Equalf(t, tt.bad, bad, "bad of %q", tt.src)
	}
}

func TestNextNodeIsIndented(t *testing.T) {
	assert.True(t, NextNodeIsIndented('a', 1, false))
	assert.False(t, NextNodeIsIndented('a', 0, true))
	assert.True(t, NextNodeIsIndented('-', 0, true))
	assert.False(t, NextNodeIsIndented('-', 0, false))
}

func TestSourceLineBreaks(t *testing.T) {
	s := NewSource("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", s.Text)
	assert.Equal(t, "a\r\nb\rc", s.Original())
	assert.Equal(t, 1, s.Orig(1))
	assert.Equal(t, 3, s.Orig(2))
	assert.Equal(t, "a\r\nb", s.OrigSlice(Range{0, 3}))
	assert.Equal(t, "b\nc", s.Slice(Range{2, 5}))
	assert.Equal(t, "", s.Slice(Range{4, 2}))

	m := s.Mark(4)
	assert.Equal(t, 3, m.Line)
	assert.Equal(t, 0, m.Column)
	assert.Equal(t, 5, m.Index)
}

func TestMarkString(t *testing.T) {
	assert.Equal(t, "line 2, column 4", Mark{Line: 2, Column: 3}.String())
	assert.Equal(t, "line 1", Mark{Line: 1}.String())
	assert.Equal(t, "<unknown position>", Mark{}.String())
}

func TestRange(t *testing.T) {
	assert.True(t, Range{3, 3}.IsEmpty())
	assert.False(t, Range{3, 4}.IsEmpty())
	assert.Equal(t, 2, Range{1, 3}.Len())
	assert.Equal(t, 0, Range{3, 1}.Len())
}
