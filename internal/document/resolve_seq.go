// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"go.yaml.in/yamldoc/internal/cst"
)

func (d *Document) resolveSeq(n *cst.Node) (*Node, error) {
	var items []NodeID
	var comments []commentRef
	switch n.Kind {
	case cst.BlockSeqNode:
		items, comments = d.resolveBlockSeqItems(n)
	case cst.FlowSeqNode:
		items, comments = d.resolveFlowSeqItems(n)
	default:
		return nil, cst.Errorf(SyntaxError, n, "A %s node cannot be resolved as a sequence", n.Kind)
	}
	res := &Node{Kind: SeqNode, Target: NoNode, Items: items}
	d.resolveComments(res, comments)
	return res, nil
}

func (d *Document) resolveBlockSeqItems(n *cst.Node) ([]NodeID, []commentRef) {
	var items []NodeID
	var comments []commentRef
	for _, item := range n.Items {
		switch item.Kind {
		case cst.CommentNode:
			c, _ := item.Comment()
			comments = append(comments, commentRef{before: len(items), comment: c})
		case cst.SeqItemNode:
			d.addError(item.Error)
			items = append(items, d.resolveNode(item.Node))
			if item.HasProps() {
				d.semantic(item, "Sequence items cannot have tags or anchors before the - indicator")
			}
		default:
			d.addError(item.Error)
			d.syntax(item, fmt.Sprintf("Unexpected %s node in sequence", item.Kind))
		}
	}
	return items, comments
}

// seqEntry is an entry of a flow sequence being resolved: a node, or a
// single pair that becomes a one-entry Map.
type seqEntry struct {
	id   NodeID
	pair *Pair
}

func (d *Document) entryNode(e seqEntry) NodeID {
	if e.pair == nil {
		return e.id
	}
	return d.add(Node{Kind: MapNode, Target: NoNode, Pairs: []Pair{*e.pair}})
}

func (d *Document) resolveFlowSeqItems(n *cst.Node) ([]NodeID, []commentRef) {
	var entries []seqEntry
	var comments []commentRef
	pop := func() seqEntry {
		if len(entries) == 0 {
			return seqEntry{id: NoNode}
		}
		e := entries[len(entries)-1]
		entries = entries[:len(entries)-1]
		return e
	}
	src := n.Source().Text
	key, haveKey, explicitKey := NoNode, false, false
	keyStart := -1
	// next is the indicator expected next, or 0 for none.
	next := byte('[')
	var prevItem *cst.Node
	for i, item := range n.Items {
		switch item.Kind {
		case cst.FlowCharNode:
			ch := item.Char()
			if ch != ':' && (explicitKey || haveKey) {
				if explicitKey && !haveKey {
					key = NoNode
					if next != 0 {
						key = d.entryNode(pop())
					}
				}
				entries = append(entries, seqEntry{pair: &Pair{Key: key, Value: NoNode}})
				key, haveKey, explicitKey, keyStart = NoNode, false, false, -1
			}
			switch {
			case ch == next:
				next = 0
			case next == 0 && ch == '?':
				explicitKey = true
			case next != '[' && ch == ':' && !haveKey:
				key = NoNode
				if next == ',' {
					last := pop()
					if last.pair != nil {
						err := cst.NewError(SemanticError, n, "Chaining flow sequence pairs is invalid")
						err.Offset = item.Range.Start
						d.addError(err)
					}
					key = d.entryNode(last)
					if !explicitKey && keyStart >= 0 {
						keyEnd := item.Range.Start
						if keyEnd > keyStart+maxImplicitKey {
							d.addError(d.longKeyError(n, key))
						}
						if prevItem != nil && strings.Contains(src[keyStart:keyEnd], "\n") {
							d.semantic(prevItem, "Implicit keys of flow sequence pairs need to be on a single line")
						}
					}
				}
				haveKey, explicitKey, keyStart = true, false, -1
				next = 0
			case next == '[' || ch != ']' || i < len(n.Items)-1:
				err := cst.Errorf(SyntaxError, n, "Flow sequence contains an unexpected %c", ch)
				err.Offset = item.Range.Start
				d.addError(err)
			}
		case cst.CommentNode:
			d.checkFlowCommentSpace(item)
			c, _ := item.Comment()
			comments = append(comments, commentRef{before: len(entries), comment: c})
		default:
			if next != 0 {
				d.semantic(item, fmt.Sprintf("Expected a %c in flow sequence", next))
			}
			value := d.resolveNode(item)
			if haveKey {
				entries = append(entries, seqEntry{pair: &Pair{Key: key, Value: value}})
				key, haveKey = NoNode, false
			} else {
				entries = append(entries, seqEntry{id: value})
				prevItem = item
			}
			keyStart = item.Range.Start
			next = ','
		}
	}
	d.checkFlowCollectionEnd(n)
	if haveKey {
		entries = append(entries, seqEntry{pair: &Pair{Key: key, Value: NoNode}})
	}
	return lo.Map(entries, func(e seqEntry, _ int) NodeID { return d.entryNode(e) }), comments
}
