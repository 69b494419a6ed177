// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import "strings"

// startCommentOrEndBlankLine returns the offset of a comment or line end
// following white space at start, or start itself.
func startCommentOrEndBlankLine(src string, start int) int {
	offset := EndOfWhiteSpace(src, start)
	if ch := at(src, offset); ch == '#' || ch == '\n' {
		return offset
	}
	return start
}

func (d *Node) parseDocument(ctx Context, start int) int {
	d.ctx = ctx
	src := ctx.src.Text
	offset := start
	if strings.HasPrefix(src[min(start, len(src)):], bom) {
		offset += len(bom)
	}
	d.Range.Start = offset
	offset = d.parseDirectives(offset)
	return d.parseContents(offset)
}

func (d *Node) parseDirectives(start int) int {
	src := d.text()
	hasDirectives := false
	offset := start
	for !AtDocumentBoundary(src, offset, '-') {
		offset = startCommentOrEndBlankLine(src, offset)
		switch at(src, offset) {
		case '\n':
			offset++
		case '#':
			c := newNode(CommentNode, nil)
			offset = c.parseCommentNode(Context{src: d.ctx.src}, offset)
			d.Directives = append(d.Directives, c)
		case '%':
			dir := newNode(DirectiveNode, nil)
			offset = dir.parseDirective(Context{Parent: d, src: d.ctx.src}, offset)
			d.Directives = append(d.Directives, dir)
			hasDirectives = true
		default:
			d.endDirectives(hasDirectives)
			return offset
		}
	}
	if at(src, offset) != eof {
		d.DirectivesEnd = offset
		return offset + 3
	}
	d.endDirectives(hasDirectives)
	return offset
}

// endDirectives handles a directives section without a `---` marker: the
// comments read so far belong to the contents.
func (d *Node) endDirectives(hasDirectives bool) {
	if hasDirectives {
		d.Error = NewError(SemanticError, d, "Missing directives-end indicator line")
	} else if len(d.Directives) > 0 {
		d.Contents = d.Directives
		d.Directives = nil
	}
}

func (d *Node) parseContents(start int) int {
	src := d.text()
	lineStart := start
	for at(src, lineStart-1) == '-' {
		lineStart--
	}
	offset := EndOfWhiteSpace(src, start)
	atLineStart := lineStart == start
	d.ValueRange = Range{offset, offset}
	for !AtDocumentBoundary(src, offset, '.') {
		switch at(src, offset) {
		case '\n':
			offset++
			lineStart = offset
			atLineStart = true
		case '#':
			c := newNode(CommentNode, nil)
			offset = c.parseCommentNode(Context{src: d.ctx.src}, offset)
			d.Contents = append(d.Contents, c)
		default:
			iEnd := EndOfIndent(src, offset)
			node := parseNode(Context{
				AtLineStart: atLineStart,
				Indent:      -1,
				LineStart:   lineStart,
				Parent:      d,
				src:         d.ctx.src,
			}, iEnd)
			if node == nil {
				d.ValueRange.End = iEnd
				return iEnd
			}
			d.Contents = append(d.Contents, node)
			offset = node.Range.End
			atLineStart = false
		}
		offset = startCommentOrEndBlankLine(src, offset)
	}
	d.ValueRange.End = offset
	if at(src, offset) == eof {
		return offset
	}
	offset += 3
	if at(src, offset) == eof {
		return offset
	}
	offset = EndOfWhiteSpace(src, offset)
	if at(src, offset) == '#' {
		c := newNode(CommentNode, nil)
		offset = c.parseCommentNode(Context{src: d.ctx.src}, offset)
		d.Contents = append(d.Contents, c)
	}
	switch at(src, offset) {
	case '\n':
		offset++
	case eof:
	default:
		d.Error = NewError(SyntaxError, d, "Document end marker line cannot have a non-comment suffix")
	}
	return offset
}

func (c *Node) parseCommentNode(ctx Context, start int) int {
	c.ctx = ctx
	offset := c.parseComment(start)
	c.Range = Range{start, offset}
	c.ValueRange = Range{start, start}
	return offset
}

func (dir *Node) parseDirective(ctx Context, start int) int {
	dir.ctx = ctx
	src := ctx.src.Text
	offset := start + 1
	for ch := at(src, offset); ch != eof && ch != '\n' && ch != '\t' && ch != ' '; ch = at(src, offset) {
		offset++
	}
	dir.Name = src[start+1 : offset]
	offset = EndOfWhiteSpace(src, offset)
	paramStart := offset
	for ch := at(src, offset); ch != eof && ch != '\n' && ch != '#'; ch = at(src, offset) {
		offset++
	}
	dir.ValueRange = Range{paramStart, offset}
	offset = EndOfWhiteSpace(src, offset)
	offset = dir.parseComment(offset)
	dir.Range = Range{start, offset}
	return offset
}

// Parameters returns the white space separated parameters of a directive.
func (dir *Node) Parameters() []string {
	return strings.Fields(dir.Raw())
}
