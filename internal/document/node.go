// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"

	"go.yaml.in/yamldoc/internal/cst"
)

// NodeID addresses a resolved node in its Document.
type NodeID int32

// NoNode is the null NodeID: an absent key, value or item.
const NoNode NodeID = -1

// Kind is the kind of a resolved node.
type Kind uint8

// Resolved node kinds. The zero Kind marks a node whose resolution failed.
const (
	ScalarNode Kind = iota + 1
	SeqNode
	MapNode
	AliasNode
	MergeNode
)

func (k Kind) String() string {
	switch k {
	case 0:
		return "Unresolved"
	case ScalarNode:
		return "Scalar"
	case SeqNode:
		return "Seq"
	case MapNode:
		return "Map"
	case AliasNode:
		return "Alias"
	case MergeNode:
		return "Merge"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is a resolved node.
type Node struct {
	Kind Kind
	// Tag is the short form of the node's explicit or resolved tag, such
	// as "!!int".
	Tag string
	// Format records how a scalar was written, such as "HEX".
	Format string
	// Value is the value of a Scalar.
	Value any
	// MinFractionDigits is the number of fraction digits a float was
	// written with, when they end in a zero.
	MinFractionDigits int

	// Items holds the entries of a Seq and the sources of a Merge.
	Items []NodeID
	// Pairs holds the entries of a Map, in order.
	Pairs []Pair
	// Target is the node an Alias refers to.
	Target NodeID

	Comment       string
	CommentBefore string

	// Range is the source range of the CST node this node was resolved
	// from, and Type that node's kind. Both are zero for created nodes.
	Range cst.Range
	Type  cst.Kind
}

// Pair is an entry of a Map. A Pair whose Value is a Merge node is a merge
// pseudo-pair.
type Pair struct {
	Key   NodeID
	Value NodeID

	Comment       string
	CommentBefore string
}

func (n *Node) anchorable() bool {
	return n.Kind == ScalarNode || n.Kind == SeqNode || n.Kind == MapNode
}

// Node returns the node with the given id. It panics for ids that are not
// part of d, like slice indexing does.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		panic(fmt.Sprintf("internal error: node %d out of range", id))
	}
	return &d.nodes[id]
}

// Has reports whether id is a node of d.
func (d *Document) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

// Len returns the number of nodes in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) add(n Node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// reserve allocates an unresolved node so that it can be referred to before
// its contents are known.
func (d *Document) reserve() NodeID {
	return d.add(Node{Target: NoNode})
}

// deref follows aliases from id to the node they refer to. It reports false
// for null, unresolved and cyclic references.
func (d *Document) deref(id NodeID) (NodeID, bool) {
	for range d.nodes {
		if !d.Has(id) {
			return NoNode, false
		}
		n := &d.nodes[id]
		if n.Kind != AliasNode {
			return id, n.Kind != 0
		}
		id = n.Target
	}
	return NoNode, false
}

// IsMergePair reports whether p is a merge pseudo-pair.
func (d *Document) IsMergePair(p Pair) bool {
	return d.Has(p.Value) && d.nodes[p.Value].Kind == MergeNode
}
