// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// endOfQuote returns the offset just past the closing quote of the scalar
// whose opening quote is at start. If there is none, the scalar runs up to
// the first document boundary line after start, or to the end of the text,
// and closed is false.
func endOfQuote(src string, start int, quote byte) (end int, closed bool) {
	offset := start + 1
	for ch := at(src, offset); ch != eof; ch = at(src, offset) {
		switch {
		case quote == '\'' && ch == '\'':
			if at(src, offset+1) != '\'' {
				return offset + 1, true
			}
			offset += 2
		case quote == '"' && ch == '"':
			return offset + 1, true
		case quote == '"' && ch == '\\':
			offset += 2
		default:
			offset++
		}
	}
	for i := start; i < len(src); i++ {
		if src[i] == '\n' && i+1 < len(src) && AtDocumentBoundary(src, i+1, 0) {
			return i, false
		}
	}
	return len(src), false
}

func (n *Node) parseQuoted(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	quote := src[start]
	offset, closed := endOfQuote(src, start, quote)
	n.ValueRange = Range{start, offset}
	if !closed {
		if quote == '\'' {
			n.Error = NewError(SyntaxError, n, "Missing closing 'quote")
		} else {
			n.Error = NewError(SyntaxError, n, `Missing closing "quote`)
		}
		return offset
	}
	offset = EndOfWhiteSpace(src, offset)
	return n.parseComment(offset)
}

// quotedBody returns the range between the quotes of a quoted scalar.
func (n *Node) quotedBody() (start, end int) {
	start, end = n.ValueRange.Start+1, n.ValueRange.End
	src := n.text()
	if end > start && at(src, end-1) == int(src[n.ValueRange.Start]) && n.Error == nil {
		end--
	}
	return start, end
}

// foldQuoted folds the line break at i inside a quoted scalar.
func (n *Node) foldQuoted(b *strings.Builder, i int, style string, errs []*Error) (int, []*Error) {
	src := n.text()
	if AtDocumentBoundary(src, i+1, 0) {
		errs = append(errs, NewError(SemanticError, n, "Document boundary indicators are not allowed within string values"))
	}
	fold, offset, bad := FoldNewline(src, i, n.ctx.Indent)
	b.WriteString(fold)
	if bad {
		errs = append(errs, NewError(SemanticError, n, "Multi-line "+style+" string needs to be sufficiently indented"))
	}
	return offset, errs
}

// trimSpace writes the white space run at i unless it ends a line, and
// returns the offset of its last character.
func trimSpace(b *strings.Builder, src string, i int) int {
	wsStart := i
	next := at(src, i+1)
	for next == ' ' || next == '\t' {
		i++
		next = at(src, i+1)
	}
	if next != '\n' {
		b.WriteString(src[wsStart : i+1])
	}
	return i
}

func (n *Node) singleQuotedValue() (string, []*Error) {
	src := n.text()
	start, end := n.quotedBody()
	var b strings.Builder
	var errs []*Error
	for i := start; i < end; i++ {
		switch ch := src[i]; ch {
		case '\n':
			i, errs = n.foldQuoted(&b, i, "single-quoted", errs)
		case '\'':
			b.WriteByte(ch)
			i++
		case ' ', '\t':
			i = trimSpace(&b, src, i)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), errs
}

var simpleEscapes = map[byte]string{
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	'e':  "\x1b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
	'N':  "\u0085",
	'_':  "\u00a0",
	'L':  "\u2028",
	'P':  "\u2029",
	' ':  " ",
	'"':  `"`,
	'/':  "/",
	'\\': `\`,
	'\t': "\t",
}

func (n *Node) doubleQuotedValue() (string, []*Error) {
	src := n.text()
	start, end := n.quotedBody()
	var b strings.Builder
	var errs []*Error
	for i := start; i < end; i++ {
		switch ch := src[i]; ch {
		case '\n':
			i, errs = n.foldQuoted(&b, i, "double-quoted", errs)
		case '\\':
			i++
			esc := at(src, i)
			if s, ok := simpleEscapes[byte(esc)]; ok && esc != eof {
				b.WriteString(s)
				continue
			}
			switch esc {
			case 'x':
				errs = n.writeCharCode(&b, i+1, 2, errs)
				i += 2
			case 'u':
				errs = n.writeCharCode(&b, i+1, 4, errs)
				i += 4
			case 'U':
				errs = n.writeCharCode(&b, i+1, 8, errs)
				i += 8
			case '\n':
				// An escaped line break is dropped along with the
				// indentation that follows it.
				for next := at(src, i+1); next == ' ' || next == '\t'; next = at(src, i+1) {
					i++
				}
			case eof:
				errs = append(errs, NewError(SyntaxError, n, `Invalid escape sequence \`))
				b.WriteByte('\\')
			default:
				errs = append(errs, Errorf(SyntaxError, n, `Invalid escape sequence \%c`, esc))
				b.WriteByte('\\')
				b.WriteByte(byte(esc))
			}
		case ' ', '\t':
			i = trimSpace(&b, src, i)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), errs
}

func (n *Node) writeCharCode(b *strings.Builder, offset, length int, errs []*Error) []*Error {
	src := n.text()
	cc := src[min(offset, len(src)):min(offset+length, len(src))]
	code, err := strconv.ParseUint(cc, 16, 32)
	if len(cc) != length || err != nil || code > utf8.MaxRune {
		seq := src[offset-2 : min(offset+length, len(src))]
		b.WriteString(seq)
		return append(errs, NewError(SyntaxError, n, "Invalid escape sequence "+seq))
	}
	b.WriteRune(rune(code))
	return errs
}
