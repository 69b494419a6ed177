// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

// newCollection starts a block collection with first as its first entry.
// Properties of the entry that sit on an earlier line belong to the
// collection instead.
func newCollection(first *Node) *Node {
	kind := BlockMapNode
	if first.Kind == SeqItemNode {
		kind = BlockSeqNode
	}
	c := newNode(kind, nil)
	for i := len(first.Props) - 1; i >= 0; i-- {
		if first.Props[i].Start < first.ctx.LineStart {
			c.Props = append(c.Props, first.Props[:i+1]...)
			first.Props = append([]Range(nil), first.Props[i+1:]...)
			itemRange := first.ValueRange
			if len(first.Props) > 0 {
				itemRange = first.Props[0]
			}
			first.Range.Start = itemRange.Start
			break
		}
	}
	c.Items = []*Node{first}
	c.Items = append(c.Items, grabCollectionEndComments(first)...)
	return c
}

// grabCollectionEndComments detaches the comments trailing the innermost
// block collection under node that are less indented than its entries, so
// that they can be added to the enclosing collection.
func grabCollectionEndComments(node *Node) []*Node {
	cnode := node
	for cnode != nil && cnode.Kind.IsCollectionItem() {
		cnode = cnode.Node
	}
	if cnode == nil || (cnode.Kind != BlockMapNode && cnode.Kind != BlockSeqNode) {
		return nil
	}
	ci := -1
	for i := len(cnode.Items) - 1; i >= 0; i-- {
		item := cnode.Items[i]
		if item.Kind != CommentNode {
			break
		}
		if indent := item.ctx.Indent; indent > 0 && item.Range.Start >= item.ctx.LineStart+indent {
			break
		}
		ci = i
	}
	if ci == -1 {
		return nil
	}
	comments := append([]*Node(nil), cnode.Items[ci:]...)
	cnode.Items = cnode.Items[:ci]
	prevEnd := comments[0].Range.Start
	for cnode != nil {
		cnode.Range.End = prevEnd
		if cnode.ValueRange.End > prevEnd {
			cnode.ValueRange.End = prevEnd
		}
		if cnode == node {
			break
		}
		cnode = cnode.ctx.Parent
	}
	return comments
}

// nextContentHasIndent reports whether the first line with content after
// the one at offset is indented by at least indent.
func nextContentHasIndent(src string, offset, indent int) bool {
	for {
		lineStart := EndOfLine(src, offset) + 1
		offset = EndOfIndent(src, lineStart)
		ch := at(src, offset)
		if ch == eof {
			return false
		}
		if offset >= lineStart+indent {
			return true
		}
		if ch != '#' && ch != '\n' {
			return false
		}
	}
}

func (c *Node) parseCollection(ctx Context, start int) int {
	c.ctx = ctx
	src := ctx.src.Text
	lineStart := StartOfLine(src, start)
	first := c.Items[0]
	first.ctx.Parent = c
	c.ValueRange = first.ValueRange
	indent := first.Range.Start - first.ctx.LineStart
	offset := NormalizeOffset(src, start)
	ch := at(src, offset)
	atLineStart := EndOfWhiteSpace(src, lineStart) == offset
	for ch != eof {
		for ch == '\n' || ch == '#' {
			if ch == '#' {
				if offset < lineStart+indent && !nextContentHasIndent(src, offset, indent) {
					return offset
				}
				comment := newNode(CommentNode, nil)
				offset = comment.parseCommentNode(Context{Indent: indent, LineStart: lineStart, src: ctx.src}, offset)
				c.Items = append(c.Items, comment)
				c.ValueRange.End = offset
				if offset >= len(src) {
					ch = eof
					break
				}
			}
			lineStart = offset + 1
			offset = EndOfIndent(src, lineStart)
			if AtBlank(src, offset, false) {
				wsEnd := EndOfWhiteSpace(src, offset)
				if next := at(src, wsEnd); next == eof || next == '\n' || next == '#' {
					offset = wsEnd
				}
			}
			ch = at(src, offset)
			atLineStart = true
		}
		if ch == eof {
			break
		}
		if offset != lineStart+indent && (atLineStart || ch != ':') {
			if offset < lineStart+indent {
				if lineStart > start {
					offset = lineStart
				}
				break
			} else if c.Error == nil {
				c.Error = NewError(SyntaxError, c, "All collection items must start at the same column")
			}
		}
		if first.Kind == SeqItemNode {
			if ch != '-' {
				if lineStart > start {
					offset = lineStart
				}
				break
			}
		} else if ch == '-' && c.Error == nil {
			if isBlank(at(src, offset+1)) {
				c.Error = NewError(SyntaxError, c, "A collection cannot be both a mapping and a sequence")
			}
		}
		node := parseNode(Context{
			AtLineStart:  atLineStart,
			InCollection: true,
			Indent:       indent,
			LineStart:    lineStart,
			Parent:       c,
			InFlow:       ctx.InFlow,
			src:          ctx.src,
		}, offset)
		if node == nil {
			return offset
		}
		c.Items = append(c.Items, node)
		c.ValueRange.End = node.ValueRange.End
		offset = NormalizeOffset(src, node.Range.End)
		ch = at(src, offset)
		atLineStart = false
		if ch != eof {
			ls := offset - 1
			prev := at(src, ls)
			for prev == ' ' || prev == '\t' {
				ls--
				prev = at(src, ls)
			}
			if prev == '\n' {
				lineStart = ls + 1
				atLineStart = true
			}
		}
		c.Items = append(c.Items, grabCollectionEndComments(node)...)
	}
	return offset
}

func (n *Node) parseItem(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	atLineStart, lineStart := ctx.AtLineStart, ctx.LineStart
	if !atLineStart && n.Kind == SeqItemNode {
		n.Error = NewError(SemanticError, n, "Sequence items must not have preceding content on the same line")
	}
	indent := ctx.Indent
	if atLineStart {
		indent = start - lineStart
	}
	offset := EndOfWhiteSpace(src, start+1)
	ch := at(src, offset)
	inlineComment := ch == '#'
	var comments []Range
	for ch == '\n' || ch == '#' {
		if ch == '#' {
			end := EndOfLine(src, offset+1)
			comments = append(comments, Range{offset, end})
			offset = end
		} else {
			atLineStart = true
			lineStart = offset + 1
			offset = EndOfIndent(src, lineStart)
			if wsEnd := EndOfWhiteSpace(src, offset); at(src, wsEnd) == '\n' {
				offset = wsEnd
			}
		}
		ch = at(src, offset)
	}
	if NextNodeIsIndented(ch, offset-(lineStart+indent), n.Kind != SeqItemNode) {
		n.Node = parseNode(Context{
			AtLineStart: atLineStart,
			Indent:      indent,
			LineStart:   lineStart,
			Parent:      n,
			InFlow:      ctx.InFlow,
			src:         ctx.src,
		}, offset)
	}
	switch {
	case n.Node != nil:
		n.Props = append(n.Props, comments...)
		offset = n.Node.Range.End
	case inlineComment:
		n.Props = append(n.Props, comments[0])
		offset = comments[0].End
	default:
		offset = EndOfLine(src, start+1)
	}
	end := offset
	if n.Node != nil {
		end = n.Node.ValueRange.End
	}
	n.ValueRange = Range{start, end}
	return offset
}
