// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import "strings"

func (n *Node) parseAlias(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	offset := EndOfIdentifier(src, start+1)
	n.ValueRange = Range{start + 1, offset}
	offset = EndOfWhiteSpace(src, offset)
	return n.parseComment(offset)
}

// plainEndOfLine returns the end of the plain scalar text on the line
// starting at start.
func plainEndOfLine(src string, start int, inFlow bool) int {
	offset := start
	ch := at(src, offset)
	for ch != eof && ch != '\n' {
		if inFlow && (ch == '[' || ch == ']' || ch == '{' || ch == '}' || ch == ',') {
			break
		}
		next := at(src, offset+1)
		if ch == ':' && (isBlank(next) || (inFlow && next == ',')) {
			break
		}
		if (ch == ' ' || ch == '\t') && next == '#' {
			break
		}
		offset++
		ch = next
	}
	return offset
}

func (n *Node) parsePlain(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	offset := start
	if ch := at(src, offset); ch != eof && ch != '#' && ch != '\n' {
		offset = plainEndOfLine(src, start, ctx.InFlow)
	}
	n.ValueRange = Range{start, offset}
	offset = EndOfWhiteSpace(src, offset)
	offset = n.parseComment(offset)
	if !n.HasComment() || n.ValueRange.IsEmpty() {
		offset = n.parsePlainContinuation(offset)
	}
	return offset
}

// parsePlainContinuation extends the value over following lines that are
// indented past the enclosing block.
func (n *Node) parsePlainContinuation(start int) int {
	src := n.text()
	indent, inFlow := n.ctx.Indent, n.ctx.InFlow
	offset, valueEnd := start, start
	for at(src, offset) == '\n' {
		if AtDocumentBoundary(src, offset+1, 0) {
			break
		}
		end, ok := EndOfBlockIndent(src, indent, offset+1)
		if !ok || at(src, end) == '#' {
			break
		}
		if at(src, end) == '\n' {
			offset = end
		} else {
			valueEnd = plainEndOfLine(src, end, inFlow)
			offset = valueEnd
		}
	}
	if n.ValueRange.IsEmpty() {
		n.ValueRange.Start = start
	}
	n.ValueRange.End = valueEnd
	return valueEnd
}

func (n *Node) plainValue() (string, []*Error) {
	src := n.text()
	start, end := n.ValueRange.Start, n.ValueRange.End
	for start < end {
		if ch := at(src, end-1); ch != '\n' && ch != '\t' && ch != ' ' {
			break
		}
		end--
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		ch := src[i]
		switch ch {
		case '\n':
			fold, off, _ := FoldNewline(src, i, -1)
			b.WriteString(fold)
			i = off
		case ' ', '\t':
			wsStart := i
			next := at(src, i+1)
			for i < end && (next == ' ' || next == '\t') {
				i++
				next = at(src, i+1)
			}
			if next != '\n' {
				b.WriteString(src[wsStart : i+1])
			}
		default:
			b.WriteByte(ch)
		}
	}
	var errs []*Error
	if start >= end {
		return b.String(), nil
	}
	switch src[start] {
	case '\t':
		errs = append(errs, NewError(SemanticError, n, "Plain value cannot start with a tab character"))
	case '@', '`':
		errs = append(errs, Errorf(SemanticError, n, "Plain value cannot start with reserved character %c", src[start]))
	}
	return b.String(), errs
}
