// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Recursive descent over the source text.
//
// The parser never fails: diagnostics are recorded on the nodes they concern
// and parsing continues with the next construct. Every parse step consumes at
// least one character, so any input terminates.

package cst

import (
	"regexp"
	"strings"
)

// Stream is the result of parsing a source text: its documents, in order.
type Stream struct {
	Documents []*Node

	src *Source
}

// Parse splits src into documents and parses each of them.
func Parse(src string) *Stream {
	s := &Stream{src: NewSource(src)}
	text := s.src.Text
	offset := 0
	for {
		doc := newNode(DocumentNode, nil)
		end := doc.parseDocument(Context{Indent: -1, src: s.src}, offset)
		if end <= offset && offset < len(text) {
			doc.Error = NewError(SyntaxError, doc, "Document#parse consumed no characters")
			end = offset + 1
		}
		doc.Range.End = end
		s.Documents = append(s.Documents, doc)
		offset = end
		if offset >= len(text) {
			break
		}
	}
	return s
}

// Source returns the parsed text.
func (s *Stream) Source() *Source {
	return s.src
}

// String re-emits the source the stream was parsed from. The documents tile
// the text, so the result is byte for byte the original input.
func (s *Stream) String() string {
	var b strings.Builder
	b.Grow(len(s.src.orig))
	prev := 0
	for _, doc := range s.Documents {
		b.WriteString(s.src.orig[s.src.Orig(prev):s.src.Orig(doc.Range.Start)])
		b.WriteString(doc.String())
		prev = doc.Range.End
	}
	b.WriteString(s.src.orig[s.src.Orig(clamp(prev, len(s.src.Text))):])
	return b.String()
}

// domainTag matches the start of a YAML 1.0 domain tag such as
// `!yaml.org,2002:str`, which contains a comma.
var domainTag = regexp.MustCompile(`^[a-zA-Z0-9-]+\.[a-zA-Z0-9-]+,\d\d\d\d(-\d\d){0,2}/\S`)

// parseProps reads the anchor, tag and comment properties at offset, which
// may span several lines. It updates the line position of ctx and returns
// the kind of the node that follows and where its value starts.
func (ctx *Context) parseProps(offset int) (props []Range, kind Kind, valueStart int) {
	src := ctx.src.Text
	lineHasProps := false
	if ctx.AtLineStart {
		offset = EndOfIndent(src, offset)
	} else {
		offset = EndOfWhiteSpace(src, offset)
	}
	ch := at(src, offset)
	for ch == '&' || ch == '#' || ch == '!' || ch == '\n' {
		switch ch {
		case '\n':
			lineStart := offset + 1
			if AtDocumentBoundary(src, lineStart, 0) {
				return props, parseKind(src, offset, ctx.InFlow), offset
			}
			inEnd := EndOfIndent(src, lineStart)
			indentDiff := inEnd - (lineStart + ctx.Indent)
			noIndicatorAsIndent := ctx.Parent != nil && ctx.Parent.Kind == SeqItemNode && ctx.Parent.ctx.AtLineStart
			if !NextNodeIsIndented(at(src, inEnd), indentDiff, !noIndicatorAsIndent) {
				return props, parseKind(src, offset, ctx.InFlow), offset
			}
			ctx.AtLineStart = true
			ctx.LineStart = lineStart
			lineHasProps = false
			offset = inEnd
		case '#':
			end := EndOfLine(src, offset+1)
			props = append(props, Range{offset, end})
			offset = end
		default:
			end := EndOfIdentifier(src, offset+1)
			if ch == '!' && at(src, end) == ',' && domainTag.MatchString(src[offset+1:min(end+13, len(src))]) {
				end = EndOfIdentifier(src, end+5)
			}
			props = append(props, Range{offset, end})
			lineHasProps = true
			offset = EndOfWhiteSpace(src, end)
		}
		ch = at(src, offset)
	}
	// `- &a : b` is a map with an empty key that has props.
	if lineHasProps && ch == ':' && AtBlank(src, offset+1, true) {
		offset--
	}
	return props, parseKind(src, offset, ctx.InFlow), offset
}

func parseKind(src string, offset int, inFlow bool) Kind {
	switch at(src, offset) {
	case '*':
		return AliasNode
	case '>':
		return BlockFoldedNode
	case '|':
		return BlockLiteralNode
	case '{':
		return FlowMapNode
	case '[':
		return FlowSeqNode
	case '?':
		if !inFlow && AtBlank(src, offset+1, true) {
			return MapKeyNode
		}
	case ':':
		if !inFlow && AtBlank(src, offset+1, true) {
			return MapValueNode
		}
	case '-':
		if !inFlow && AtBlank(src, offset+1, true) {
			return SeqItemNode
		}
	case '"':
		return QuoteDoubleNode
	case '\'':
		return QuoteSingleNode
	}
	return PlainNode
}

// parseNode parses the node at start, including its properties. A node that
// turns out to be the first entry of a block collection is returned wrapped
// in that collection. It returns nil at a document boundary.
func parseNode(ctx Context, start int) *Node {
	src := ctx.src.Text
	if AtDocumentBoundary(src, start, 0) {
		return nil
	}
	props, kind, valueStart := ctx.parseProps(start)
	n := newNode(kind, props)
	offset := n.parse(ctx, valueStart)
	n.Range = Range{start, offset}
	if offset <= start {
		n.Error = NewError(SyntaxError, n, "Node#parse consumed no characters")
		n.Range.End = start + 1
		offset = start + 1
	}
	if ctx.nodeStartsCollection(n) {
		if n.Error == nil && !ctx.AtLineStart && ctx.Parent != nil && ctx.Parent.Kind == DocumentNode {
			n.Error = NewError(SyntaxError, n, "Block collection must not have preceding content here (e.g. directives-end indicator)")
		}
		coll := newCollection(n)
		offset = coll.parseCollection(ctx, offset)
		coll.Range = Range{start, offset}
		return coll
	}
	return n
}

func (ctx Context) nodeStartsCollection(n *Node) bool {
	if ctx.InCollection || ctx.InFlow {
		return false
	}
	if n.Kind.IsCollectionItem() {
		return true
	}
	src := ctx.src.Text
	offset := n.Range.End
	if at(src, offset) == '\n' || at(src, offset-1) == '\n' {
		return false
	}
	offset = EndOfWhiteSpace(src, offset)
	return at(src, offset) == ':'
}
