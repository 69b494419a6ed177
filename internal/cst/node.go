// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a Node.
type Kind uint8

// Node kinds.
const (
	DocumentNode Kind = iota + 1
	DirectiveNode
	CommentNode
	BlockMapNode
	BlockSeqNode
	FlowMapNode
	FlowSeqNode
	PlainNode
	QuoteSingleNode
	QuoteDoubleNode
	BlockLiteralNode
	BlockFoldedNode
	AliasNode
	MapKeyNode
	MapValueNode
	SeqItemNode
	// FlowCharNode is one of the `{ } [ ] , ? :` indicators inside a flow
	// collection.
	FlowCharNode
)

var kindNames = map[Kind]string{
	DocumentNode:     "DOCUMENT",
	DirectiveNode:    "DIRECTIVE",
	CommentNode:      "COMMENT",
	BlockMapNode:     "MAP",
	BlockSeqNode:     "SEQ",
	FlowMapNode:      "FLOW_MAP",
	FlowSeqNode:      "FLOW_SEQ",
	PlainNode:        "PLAIN",
	QuoteSingleNode:  "QUOTE_SINGLE",
	QuoteDoubleNode:  "QUOTE_DOUBLE",
	BlockLiteralNode: "BLOCK_LITERAL",
	BlockFoldedNode:  "BLOCK_FOLDED",
	AliasNode:        "ALIAS",
	MapKeyNode:       "MAP_KEY",
	MapValueNode:     "MAP_VALUE",
	SeqItemNode:      "SEQ_ITEM",
	FlowCharNode:     "FLOW_CHAR",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsCollectionItem reports whether k is a `?`, `:` or `-` entry of a block
// collection.
func (k Kind) IsCollectionItem() bool {
	return k == MapKeyNode || k == MapValueNode || k == SeqItemNode
}

// IsBlockScalar reports whether k is a literal or folded block scalar.
func (k Kind) IsBlockScalar() bool {
	return k == BlockLiteralNode || k == BlockFoldedNode
}

// IsScalar reports whether nodes of kind k have a string value.
func (k Kind) IsScalar() bool {
	switch k {
	case PlainNode, QuoteSingleNode, QuoteDoubleNode, BlockLiteralNode, BlockFoldedNode:
		return true
	}
	return false
}

// Chomping is the trailing line break policy of a block scalar.
type Chomping int8

// Chomping indicators.
const (
	Clip  Chomping = iota // default: keep one final line break
	Strip                 // `-`: drop all final line breaks
	Keep                  // `+`: keep all final line breaks
)

// Context carries the parsing position a node was parsed at. It is passed
// by value: a child context never changes its parent's.
type Context struct {
	// Indent is the indentation of the enclosing block, -1 at top level.
	Indent       int
	InFlow       bool
	InCollection bool
	// AtLineStart is set when only indentation precedes the node on its
	// line.
	AtLineStart bool
	LineStart   int
	Parent      *Node

	src *Source
}

// Source returns the text the context refers to.
func (c Context) Source() *Source {
	return c.src
}

// TagProp is a tag property split into its parts. Exactly one of Verbatim
// or Handle is set.
type TagProp struct {
	Handle   string
	Suffix   string
	Verbatim string
}

// Node is a concrete syntax tree node.
//
// The fields used depend on Kind: collections have Items, documents have
// Directives and Contents, collection items and the values under them have
// Node, block scalars have Header, Chomping and BlockIndent.
type Node struct {
	Kind Kind

	// Range covers the node's source, including its properties and trailing
	// same-line comment.
	Range Range
	// ValueRange covers the value itself.
	ValueRange Range
	// Props hold anchor, tag and comment properties, in source order.
	Props []Range
	// Error is a diagnostic found while parsing this node.
	Error *Error

	Items []*Node
	Node  *Node

	Directives []*Node
	Contents   []*Node
	// DirectivesEnd is the offset of the `---` marker, or -1.
	DirectivesEnd int

	// Name is the name of a directive.
	Name string

	Header      Range
	Chomping    Chomping
	BlockIndent int

	ctx Context
}

func newNode(kind Kind, props []Range) *Node {
	if _, ok := kindNames[kind]; !ok || kind == FlowCharNode {
		panic("internal error: cannot create a node of kind " + kind.String())
	}
	return &Node{Kind: kind, Props: props, DirectivesEnd: -1}
}

// NewEmptyPlain returns an empty plain scalar at offset, parsed as the value
// of parent. It stands in for a missing value that still has to carry the
// parent's properties.
func NewEmptyPlain(parent *Node, offset int) *Node {
	n := newNode(PlainNode, nil)
	n.ctx = Context{Parent: parent, src: parent.ctx.src}
	n.Range = Range{offset, offset}
	n.ValueRange = Range{offset, offset}
	return n
}

func (n *Node) parse(ctx Context, start int) int {
	switch n.Kind {
	case AliasNode:
		return n.parseAlias(ctx, start)
	case BlockFoldedNode, BlockLiteralNode:
		return n.parseBlockScalar(ctx, start)
	case FlowMapNode, FlowSeqNode:
		return n.parseFlow(ctx, start)
	case MapKeyNode, MapValueNode, SeqItemNode:
		return n.parseItem(ctx, start)
	case PlainNode:
		return n.parsePlain(ctx, start)
	case QuoteDoubleNode, QuoteSingleNode:
		return n.parseQuoted(ctx, start)
	}
	panic("internal error: cannot parse a " + n.Kind.String() + " node")
}

// Context returns the context the node was parsed in.
func (n *Node) Context() Context {
	return n.ctx
}

// Source returns the text the node was parsed from.
func (n *Node) Source() *Source {
	return n.ctx.src
}

func (n *Node) text() string {
	if n.ctx.src == nil {
		return ""
	}
	return n.ctx.src.Text
}

// Raw returns the source of the node's value.
func (n *Node) Raw() string {
	if n.ctx.src == nil {
		return ""
	}
	return n.ctx.src.Slice(n.ValueRange)
}

// String returns the original source of the whole node.
func (n *Node) String() string {
	if n.ctx.src == nil {
		return ""
	}
	return n.ctx.src.OrigSlice(n.Range)
}

// Char returns the indicator of a FlowCharNode.
func (n *Node) Char() byte {
	if n.Kind != FlowCharNode || n.Range.IsEmpty() {
		return 0
	}
	return n.text()[n.Range.Start]
}

func (n *Node) propValue(i int, key byte, skipKey bool) (string, bool) {
	if i >= len(n.Props) {
		return "", false
	}
	p := n.Props[i]
	src := n.text()
	if at(src, p.Start) != int(key) {
		return "", false
	}
	if skipKey {
		return src[p.Start+1 : p.End], true
	}
	return src[p.Start:p.End], true
}

// Anchor returns the name of the node's anchor property.
func (n *Node) Anchor() (string, bool) {
	for i := range n.Props {
		if v, ok := n.propValue(i, '&', true); ok {
			return v, true
		}
	}
	return "", false
}

// Tag returns the node's tag property.
func (n *Node) Tag() (TagProp, bool) {
	for i := range n.Props {
		if v, ok := n.propValue(i, '!', false); ok {
			return ParseTagProp(v), true
		}
	}
	return TagProp{}, false
}

// ParseTagProp splits the source of a tag property.
func ParseTagProp(tag string) TagProp {
	if len(tag) > 1 && tag[1] == '<' {
		if len(tag) < 3 {
			return TagProp{}
		}
		return TagProp{Verbatim: tag[2 : len(tag)-1]}
	}
	i := strings.LastIndexByte(tag, '!')
	return TagProp{Handle: tag[:i+1], Suffix: tag[i+1:]}
}

// Comment returns the text of the node's comment properties, one per line.
func (n *Node) Comment() (string, bool) {
	var comments []string
	for i := range n.Props {
		if v, ok := n.propValue(i, '#', true); ok {
			comments = append(comments, v)
		}
	}
	if len(comments) == 0 {
		return "", false
	}
	return strings.Join(comments, "\n"), true
}

// HasComment reports whether any property is a comment.
func (n *Node) HasComment() bool {
	src := n.text()
	for _, p := range n.Props {
		if at(src, p.Start) == '#' {
			return true
		}
	}
	return false
}

// HasProps reports whether any property is an anchor or a tag.
func (n *Node) HasProps() bool {
	src := n.text()
	for _, p := range n.Props {
		if at(src, p.Start) != '#' {
			return true
		}
	}
	return false
}

// JSONLike reports whether the node is a flow collection or a quoted
// scalar, after which `:` needs no following space.
func (n *Node) JSONLike() bool {
	switch n.Kind {
	case FlowMapNode, FlowSeqNode, QuoteDoubleNode, QuoteSingleNode:
		return true
	}
	return false
}

// ValueRangeContainsNewline reports whether the node's value spans lines.
func (n *Node) ValueRangeContainsNewline() bool {
	if n.ValueRange.IsEmpty() || n.ctx.src == nil {
		return false
	}
	return strings.IndexByte(n.ctx.src.Slice(n.ValueRange), '\n') >= 0
}

// CommentHasRequiredWhitespace reports whether a comment starting at start
// is separated from the preceding value by white space.
func (n *Node) CommentHasRequiredWhitespace(start int) bool {
	if n.Kind.IsBlockScalar() && start == n.Header.End {
		return false
	}
	end := n.ValueRange.End
	return start != end || AtBlank(n.text(), end-1, false)
}

// parseComment adds the comment at start, if any, to the node's props.
func (n *Node) parseComment(start int) int {
	src := n.text()
	if at(src, start) != '#' {
		return start
	}
	end := EndOfLine(src, start+1)
	n.Props = append(n.Props, Range{start, end})
	return end
}

// StrValue returns the string value of a scalar node with the diagnostics
// found while computing it. ok is false for non-scalar nodes.
func (n *Node) StrValue() (str string, errs []*Error, ok bool) {
	switch n.Kind {
	case PlainNode:
		str, errs = n.plainValue()
	case QuoteSingleNode:
		str, errs = n.singleQuotedValue()
	case QuoteDoubleNode:
		str, errs = n.doubleQuotedValue()
	case BlockLiteralNode, BlockFoldedNode:
		str = n.blockValue()
	default:
		return "", nil, false
	}
	return str, errs, true
}
