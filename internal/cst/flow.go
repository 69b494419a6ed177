// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

func (n *Node) flowChar(offset int) *Node {
	return &Node{
		Kind:          FlowCharNode,
		Range:         Range{offset, offset + 1},
		ValueRange:    Range{offset, offset + 1},
		DirectivesEnd: -1,
		ctx:           Context{Parent: n, InFlow: true, src: n.ctx.src},
	}
}

// prevNodeIsJSONLike reports whether the entry before Items[idx], skipping
// comments, is a quoted scalar or a flow collection.
func (n *Node) prevNodeIsJSONLike(idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		node := n.Items[i]
		if node.Kind != CommentNode {
			return node.JSONLike()
		}
	}
	return false
}

func (n *Node) parseFlow(ctx Context, start int) int {
	n.ctx = ctx
	src := ctx.src.Text
	indent, lineStart := ctx.Indent, ctx.LineStart
	n.Items = []*Node{n.flowChar(start)}
	offset := EndOfWhiteSpace(src, start+1)
	ch := at(src, offset)
	for ch != eof && ch != ']' && ch != '}' {
		switch ch {
		case '\n':
			lineStart = offset + 1
			offset = EndOfIndent(src, lineStart)
			if offset <= lineStart+indent {
				ch = at(src, offset)
				if offset < lineStart+indent || (ch != ']' && ch != '}') {
					n.Error = NewError(SemanticError, n, "Insufficient indentation in flow collection")
				}
			}
		case ',':
			n.Items = append(n.Items, n.flowChar(offset))
			offset++
		case '#':
			comment := newNode(CommentNode, nil)
			offset = comment.parseCommentNode(Context{src: ctx.src}, offset)
			n.Items = append(n.Items, comment)
		default:
			if ch == '?' || ch == ':' {
				next := at(src, offset+1)
				if next == '\n' || next == '\t' || next == ' ' || next == ',' ||
					(ch == ':' && n.prevNodeIsJSONLike(len(n.Items))) {
					n.Items = append(n.Items, n.flowChar(offset))
					offset++
					break
				}
			}
			node := parseNode(Context{
				InFlow:    true,
				Indent:    -1,
				LineStart: lineStart,
				Parent:    n,
				src:       ctx.src,
			}, offset)
			if node == nil {
				n.ValueRange = Range{start, offset}
				return offset
			}
			n.Items = append(n.Items, node)
			offset = NormalizeOffset(src, node.Range.End)
		}
		offset = EndOfWhiteSpace(src, offset)
		ch = at(src, offset)
	}
	if ch == eof {
		n.ValueRange = Range{start, offset}
		return offset
	}
	n.ValueRange = Range{start, offset + 1}
	n.Items = append(n.Items, n.flowChar(offset))
	offset = EndOfWhiteSpace(src, offset+1)
	return n.parseComment(offset)
}
