// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Cursor utilities over the source text.
//
// Every function here is pure: it takes the normalized source and an offset
// and returns another offset. Offsets past either end of the text read as
// eof, so callers may probe freely.

package cst

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// eof is returned by at for offsets outside the text.
const eof = -1

const bom = "\uFEFF"

func at(src string, i int) int {
	if i < 0 || i >= len(src) {
		return eof
	}
	return int(src[i])
}

func isBlank(ch int) bool {
	return ch == eof || ch == '\n' || ch == '\t' || ch == ' '
}

// AtBlank reports whether the character at offset is a space, tab or
// newline. With endAsBlank, the end of the text counts as blank too.
func AtBlank(src string, offset int, endAsBlank bool) bool {
	switch at(src, offset) {
	case '\n', '\t', ' ':
		return true
	case eof:
		return endAsBlank
	}
	return false
}

// AtCollectionItem reports whether offset starts a `-`, `?` or `:`
// indicator followed by a blank.
func AtCollectionItem(src string, offset int) bool {
	switch at(src, offset) {
	case '-', '?', ':':
		return AtBlank(src, offset+1, true)
	}
	return false
}

// AtDocumentBoundary reports whether offset starts a `---` or `...` line.
// A sep of 0 accepts either marker; otherwise only the given one. The end of
// the text is always a boundary.
func AtDocumentBoundary(src string, offset int, sep byte) bool {
	ch0 := at(src, offset)
	if ch0 == eof {
		return true
	}
	if prev := at(src, offset-1); prev != eof && prev != '\n' {
		return false
	}
	if sep != 0 {
		if ch0 != int(sep) {
			return false
		}
	} else if ch0 != '-' && ch0 != '.' {
		return false
	}
	ch1 := at(src, offset+1)
	ch2 := at(src, offset+2)
	if ch1 != ch0 || ch2 != ch0 {
		return false
	}
	return isBlank(at(src, offset+3))
}

// EndOfIdentifier returns the end of an anchor, alias or tag name starting at
// offset. A name starting with `<` is verbatim and runs to the closing `>`.
func EndOfIdentifier(src string, offset int) int {
	ch := at(src, offset)
	verbatim := ch == '<'
	for ch != eof {
		if verbatim {
			if ch == '\n' || ch == '\t' || ch == ' ' || ch == '>' {
				break
			}
		} else if strings.IndexByte("\n\t []{},", byte(ch)) >= 0 {
			break
		}
		offset++
		ch = at(src, offset)
	}
	if verbatim && ch == '>' {
		offset++
	}
	return offset
}

// EndOfIndent skips spaces.
func EndOfIndent(src string, offset int) int {
	for at(src, offset) == ' ' {
		offset++
	}
	return offset
}

// EndOfLine returns the offset of the next newline, or the end of the text.
func EndOfLine(src string, offset int) int {
	for ch := at(src, offset); ch != eof && ch != '\n'; ch = at(src, offset) {
		offset++
	}
	return offset
}

// EndOfWhiteSpace skips spaces and tabs.
func EndOfWhiteSpace(src string, offset int) int {
	for ch := at(src, offset); ch == '\t' || ch == ' '; ch = at(src, offset) {
		offset++
	}
	return offset
}

// StartOfLine returns the offset of the first character of the line that
// contains offset.
func StartOfLine(src string, offset int) int {
	ch := at(src, offset-1)
	if ch == '\n' {
		return offset
	}
	for ch != eof && ch != '\n' {
		offset--
		ch = at(src, offset)
	}
	return offset + 1
}

// EndOfBlockIndent returns the end of the indentation of the line starting
// at lineStart, if that line is indented more than indent or consists only
// of white space. ok is false otherwise.
func EndOfBlockIndent(src string, indent, lineStart int) (end int, ok bool) {
	inEnd := EndOfIndent(src, lineStart)
	if inEnd > lineStart+indent {
		return inEnd, true
	}
	wsEnd := EndOfWhiteSpace(src, inEnd)
	if ch := at(src, wsEnd); ch == eof || ch == '\n' {
		return wsEnd, true
	}
	return 0, false
}

// NextNodeIsIndented reports whether content starting with ch and indented
// by indentDiff relative to its parent belongs to that parent. A `-` or `?`
// indicator at the parent's own column still counts when
// indicatorAsIndent is set.
func NextNodeIsIndented(ch int, indentDiff int, indicatorAsIndent bool) bool {
	if indentDiff > 0 {
		return true
	}
	return indicatorAsIndent && ch == '-'
}

// NormalizeOffset moves an offset that sits just after a newline back onto
// that newline; otherwise it skips white space.
func NormalizeOffset(src string, offset int) int {
	ch := at(src, offset)
	if ch == eof {
		return offset
	}
	if ch != '\n' && at(src, offset-1) == '\n' {
		return offset - 1
	}
	return EndOfWhiteSpace(src, offset)
}

// FoldNewline folds the line break at offset and the blank lines that follow
// it. fold is a single space for one break, or one newline for each
// additional empty line. end is the offset of the last character consumed.
// bad reports a continuation line that is not indented past indent.
func FoldNewline(src string, offset, indent int) (fold string, end int, bad bool) {
	inCount := 0
	var b strings.Builder
	ch := at(src, offset+1)
	for ch == ' ' || ch == '\t' || ch == '\n' {
		switch ch {
		case '\n':
			inCount = 0
			offset++
			b.WriteByte('\n')
		case '\t':
			if inCount <= indent {
				bad = true
			}
			offset = EndOfWhiteSpace(src, offset+2) - 1
		case ' ':
			inCount++
			offset++
		}
		ch = at(src, offset+1)
	}
	fold = b.String()
	if fold == "" {
		fold = " "
	}
	if ch != eof && inCount <= indent {
		bad = true
	}
	return fold, offset, bad
}

// Range is a half-open [Start, End) span of byte offsets.
type Range struct {
	Start, End int
}

// IsEmpty reports whether the range holds no characters.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Mark is a position in the source text.
type Mark struct {
	Index  int // byte offset in the original text
	Line   int // 1-based
	Column int // 0-based, in characters
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}

	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Column+1)
	}

	return builder.String()
}

// Source is the text a Stream was parsed from.
//
// Text is the normalized text all offsets refer to: every CRLF pair is
// replaced by LF and every lone CR by LF. The original bytes are kept so
// they can be re-emitted exactly.
type Source struct {
	Text string

	orig string
	// crs holds, in increasing order, the normalized offsets of the LF
	// characters that replaced a CRLF pair.
	crs []int
}

// NewSource normalizes line breaks in text.
func NewSource(text string) *Source {
	s := &Source{orig: text}
	if strings.IndexByte(text, '\r') < 0 {
		s.Text = text
		return s
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '\r' {
			b.WriteByte(ch)
			continue
		}
		if i+1 < len(text) && text[i+1] == '\n' {
			s.crs = append(s.crs, b.Len())
			i++
		}
		b.WriteByte('\n')
	}
	s.Text = b.String()
	return s
}

// Original returns the text exactly as it was given.
func (s *Source) Original() string {
	return s.orig
}

// Orig maps a normalized offset to the matching offset in the original text.
func (s *Source) Orig(offset int) int {
	n := 0
	for n < len(s.crs) && s.crs[n] < offset {
		n++
	}
	return offset + n
}

// OrigSlice returns the original bytes covered by a normalized range.
func (s *Source) OrigSlice(r Range) string {
	start, end := clamp(r.Start, len(s.Text)), clamp(r.End, len(s.Text))
	if end < start {
		end = start
	}
	return s.orig[s.Orig(start):s.Orig(end)]
}

// Slice returns the normalized text covered by r.
func (s *Source) Slice(r Range) string {
	start, end := clamp(r.Start, len(s.Text)), clamp(r.End, len(s.Text))
	if end < start {
		return ""
	}
	return s.Text[start:end]
}

// Mark returns the line and column of a normalized offset.
func (s *Source) Mark(offset int) Mark {
	offset = clamp(offset, len(s.Text))
	line := strings.Count(s.Text[:offset], "\n") + 1
	lineStart := strings.LastIndexByte(s.Text[:offset], '\n') + 1
	return Mark{
		Index:  s.Orig(offset),
		Line:   line,
		Column: utf8.RuneCountInString(s.Text[lineStart:offset]),
	}
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
