// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.yaml.in/yamldoc/internal/cst"
)

// MergeKey is the key of merge pairs.
const MergeKey = "<<"

// maxImplicitKey is the length limit of an implicit key, in bytes.
const maxImplicitKey = 1024

// commentRef places a standalone comment among the entries of a
// collection: before the entry at index before, or on its value when
// afterKey is set.
type commentRef struct {
	afterKey bool
	before   int
	comment  string
}

func (d *Document) resolveMap(n *cst.Node) (*Node, error) {
	var pairs []Pair
	var comments []commentRef
	switch n.Kind {
	case cst.BlockMapNode:
		pairs, comments = d.resolveBlockMapItems(n)
	case cst.FlowMapNode:
		pairs, comments = d.resolveFlowMapItems(n)
	default:
		return nil, cst.Errorf(SyntaxError, n, "A %s node cannot be resolved as a mapping", n.Kind)
	}
	res := &Node{Kind: MapNode, Target: NoNode, Pairs: pairs}
	d.resolveComments(res, comments)
	for i := range res.Pairs {
		key := res.Pairs[i].Key
		if d.Schema.Merge && d.isMergeKey(key) {
			d.toMergePair(n, &res.Pairs[i])
			continue
		}
		for _, later := range res.Pairs[i+1:] {
			if d.sameKey(key, later.Key) {
				d.semantic(n, fmt.Sprintf("Map keys must be unique; %q is repeated", d.keyString(key)))
				break
			}
		}
	}
	return res, nil
}

func (d *Document) isMergeKey(id NodeID) bool {
	if id == NoNode || d.nodes[id].Kind != ScalarNode {
		return false
	}
	s, ok := d.nodes[id].Value.(string)
	return ok && s == MergeKey
}

// sameKey reports whether two keys are equal: both null, or scalars with
// equal values.
func (d *Document) sameKey(a, b NodeID) bool {
	if a == NoNode || b == NoNode {
		return a == b
	}
	na, nb := &d.nodes[a], &d.nodes[b]
	return na.Kind == ScalarNode && nb.Kind == ScalarNode && reflect.DeepEqual(na.Value, nb.Value)
}

// toMergePair replaces the value of p with a Merge node whose sources are
// the value, or the items of a sequence value.
func (d *Document) toMergePair(n *cst.Node, p *Pair) {
	sources := []NodeID{p.Value}
	if p.Value != NoNode && d.nodes[p.Value].Kind == SeqNode {
		sources = slices.Clone(d.nodes[p.Value].Items)
	}
	for _, src := range sources {
		if src == NoNode || d.nodes[src].Kind != AliasNode {
			d.semantic(n, "Merge nodes can only have Alias nodes as values")
			break
		}
		// The target may still be resolving, so its CST kind is checked.
		if k := d.nodes[d.nodes[src].Target].Type; k != cst.BlockMapNode && k != cst.FlowMapNode {
			d.semantic(n, "Merge nodes aliases can only point to maps")
			break
		}
	}
	merge := Node{Kind: MergeNode, Target: NoNode, Items: sources}
	if p.Value != NoNode {
		merge.Range = d.nodes[p.Value].Range
		merge.Type = d.nodes[p.Value].Type
	}
	p.Value = d.add(merge)
}

func (d *Document) longKeyError(n *cst.Node, key NodeID) *Error {
	k := d.keyString(key)
	if len(k) > 16 {
		k = k[:8] + "..." + k[len(k)-8:]
	}
	return cst.Errorf(SemanticError, n, "The %q key is too long", k)
}

func followedByValue(items []*cst.Node) bool {
	for _, item := range items {
		switch item.Kind {
		case cst.CommentNode:
			continue
		case cst.MapValueNode:
			return true
		}
		return false
	}
	return false
}

func (d *Document) resolveBlockMapItems(n *cst.Node) ([]Pair, []commentRef) {
	var pairs []Pair
	var comments []commentRef
	key, haveKey, keyStart := NoNode, false, -1
	for i, item := range n.Items {
		switch item.Kind {
		case cst.CommentNode:
			c, _ := item.Comment()
			comments = append(comments, commentRef{afterKey: key != NoNode, before: len(pairs), comment: c})
		case cst.MapKeyNode:
			if haveKey {
				pairs = append(pairs, Pair{Key: key, Value: NoNode})
			}
			d.addError(item.Error)
			key, haveKey, keyStart = d.resolveNode(item.Node), true, -1
		case cst.MapValueNode:
			d.addError(item.Error)
			if v := item.Node; !item.Context().AtLineStart && v != nil && v.Kind == cst.BlockMapNode && !v.Context().AtLineStart {
				d.semantic(v, "Nested mappings are not allowed in compact mappings")
			}
			valueNode := item.Node
			if valueNode == nil && item.HasComment() {
				// An empty value still carries its comment.
				valueNode = cst.NewEmptyPlain(item, item.Range.Start+1)
			}
			p := Pair{Key: key, Value: d.resolveNode(valueNode)}
			d.resolvePairComment(item, &p)
			pairs = append(pairs, p)
			if key != NoNode && keyStart >= 0 && item.Range.Start > keyStart+maxImplicitKey {
				d.addError(d.longKeyError(n, key))
			}
			key, haveKey, keyStart = NoNode, false, -1
		default:
			if haveKey {
				pairs = append(pairs, Pair{Key: key, Value: NoNode})
			}
			key, haveKey, keyStart = d.resolveNode(item), true, item.Range.Start
			d.addError(item.Error)
			if !followedByValue(n.Items[i+1:]) {
				d.semantic(item, "Implicit map keys need to be followed by map values")
			}
			if item.ValueRangeContainsNewline() {
				d.semantic(item, "Implicit map keys need to be on a single line")
			}
		}
	}
	if haveKey {
		pairs = append(pairs, Pair{Key: key, Value: NoNode})
	}
	return pairs, comments
}

// resolvePairComment moves a comment on the line of a value indicator from
// the value to the pair.
func (d *Document) resolvePairComment(item *cst.Node, p *Pair) {
	if len(item.Props) == 0 {
		return
	}
	src := item.Source().Text
	start := item.Props[0].Start
	if src[start] != '#' || (item.Node != nil && start > item.Node.ValueRange.Start) {
		return
	}
	if lineStart := item.Context().LineStart; lineStart < start && strings.Contains(src[lineStart:start], "\n") {
		return
	}
	comment := src[start+1 : item.Props[0].End]
	trim := func(s string) string {
		if len(s) <= len(comment)+1 {
			return ""
		}
		return s[len(comment)+1:]
	}
	if p.Value != NoNode {
		v := &d.nodes[p.Value]
		switch {
		case v.CommentBefore != "" && strings.HasPrefix(v.CommentBefore, comment):
			v.CommentBefore = trim(v.CommentBefore)
		case item.Node == nil && v.Comment != "" && strings.HasPrefix(v.Comment, comment):
			v.Comment = trim(v.Comment)
		case item.Node != nil:
			return
		}
	}
	p.Comment = comment
}

func (d *Document) resolveFlowMapItems(n *cst.Node) ([]Pair, []commentRef) {
	var pairs []Pair
	var comments []commentRef
	key, haveKey, explicitKey := NoNode, false, false
	next := byte('{')
	for i, item := range n.Items {
		switch item.Kind {
		case cst.FlowCharNode:
			ch := item.Char()
			if ch == '?' && !haveKey && !explicitKey {
				explicitKey = true
				next = ':'
				continue
			}
			if ch == ':' {
				if !haveKey {
					key, haveKey = NoNode, true
				}
				if next == ':' {
					next = ','
					continue
				}
			} else {
				if explicitKey {
					if !haveKey && ch != ',' {
						key, haveKey = NoNode, true
					}
					explicitKey = false
				}
				if haveKey {
					pairs = append(pairs, Pair{Key: key, Value: NoNode})
					key, haveKey = NoNode, false
					if ch == ',' {
						next = ':'
						continue
					}
				}
			}
			if ch == '}' {
				if i == len(n.Items)-1 {
					continue
				}
			} else if ch == next {
				next = ':'
				continue
			}
			err := cst.Errorf(SyntaxError, n, "Flow mapping contains an unexpected %c", ch)
			err.Offset = item.Range.Start
			d.addError(err)
		case cst.CommentNode:
			d.checkFlowCommentSpace(item)
			c, _ := item.Comment()
			comments = append(comments, commentRef{afterKey: key != NoNode, before: len(pairs), comment: c})
		default:
			if !haveKey {
				if next == ',' {
					d.semantic(item, "Separator , missing in flow map")
				}
				key, haveKey = d.resolveNode(item), true
				continue
			}
			if next != ',' {
				d.semantic(item, "Indicator : missing in flow map entry")
			}
			pairs = append(pairs, Pair{Key: key, Value: d.resolveNode(item)})
			key, haveKey, explicitKey = NoNode, false, false
		}
	}
	d.checkFlowCollectionEnd(n)
	if haveKey {
		pairs = append(pairs, Pair{Key: key, Value: NoNode})
	}
	return pairs, comments
}

func (d *Document) checkFlowCommentSpace(c *cst.Node) {
	src := c.Source().Text
	if start := c.Range.Start; start > 0 {
		if prev := src[start-1]; prev != '\n' && prev != '\t' && prev != ' ' {
			d.semantic(c, "Comments must be separated from other tokens by white space characters")
		}
	}
}

func (d *Document) checkFlowCollectionEnd(n *cst.Node) {
	end, name := byte('}'), "flow map"
	if n.Kind == cst.FlowSeqNode {
		end, name = ']', "flow sequence"
	}
	var last *cst.Node
	for i := len(n.Items) - 1; i >= 0; i-- {
		if n.Items[i].Kind != cst.CommentNode {
			last = n.Items[i]
			break
		}
	}
	if last == nil || last.Char() == end {
		return
	}
	msg := fmt.Sprintf("Expected %s to end with %c", name, end)
	var err *Error
	if last.Kind == cst.FlowCharNode {
		err = cst.NewError(SemanticError, n, msg)
		err.Offset = last.Range.Start + 1
	} else {
		err = cst.NewError(SemanticError, last, msg)
		err.Offset = last.Range.End
	}
	d.addError(err)
}

// resolveComments attaches standalone comments to the entries they precede.
// Comments after the last entry go to the collection.
func (d *Document) resolveComments(res *Node, comments []commentRef) {
	for _, c := range comments {
		switch {
		case res.Kind == MapNode && c.before < len(res.Pairs):
			p := &res.Pairs[c.before]
			if c.afterKey && p.Value != NoNode {
				v := &d.nodes[p.Value]
				v.CommentBefore = joinComments(v.CommentBefore, c.comment)
			} else {
				p.CommentBefore = joinComments(p.CommentBefore, c.comment)
			}
		case res.Kind == SeqNode && c.before < len(res.Items) && res.Items[c.before] != NoNode:
			v := &d.nodes[res.Items[c.before]]
			v.CommentBefore = joinComments(v.CommentBefore, c.comment)
		default:
			res.Comment = joinComments(res.Comment, c.comment)
		}
	}
}
