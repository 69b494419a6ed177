// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// DefaultAnchorPrefix is the prefix of generated anchor names.
const DefaultAnchorPrefix = "a"

var invalidAnchorChars = regexp.MustCompile(`[\x00-\x19\s\p{Zs},\[\]{}]`)

// Anchors maps anchor names to the nodes of one Document, and back. A node
// has at most one name and a name refers to at most one node.
type Anchors struct {
	doc    *Document
	prefix string
	byName map[string]NodeID
	byNode map[NodeID]string
}

func newAnchors(doc *Document, prefix string) *Anchors {
	if prefix == "" {
		prefix = DefaultAnchorPrefix
	}
	return &Anchors{
		doc:    doc,
		prefix: prefix,
		byName: make(map[string]NodeID),
		byNode: make(map[NodeID]string),
	}
}

// Name returns the anchor name of a node.
func (a *Anchors) Name(id NodeID) (string, bool) {
	name, ok := a.byNode[id]
	return name, ok
}

// Node returns the node an anchor name refers to.
func (a *Anchors) Node(name string) (NodeID, bool) {
	id, ok := a.byName[name]
	return id, ok
}

// Names returns all anchor names, sorted.
func (a *Anchors) Names() []string {
	names := lo.Keys(a.byName)
	sort.Strings(names)
	return names
}

// NewName returns the first of prefix1, prefix2, ... that is not in use.
func (a *Anchors) NewName(prefix string) string {
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i)
		if _, ok := a.byName[name]; !ok {
			return name
		}
	}
}

// SetAnchor names a node and returns the name.
//
// With an empty name, a node that already has a name keeps it and any other
// node gets a generated one. A node moving to a new name loses its old one;
// a name taken from another node leaves that node unnamed. Setting a name on
// NoNode releases the name, and with an empty name it does nothing.
func (a *Anchors) SetAnchor(id NodeID, name string) (string, error) {
	if id != NoNode {
		if !a.doc.Has(id) {
			return "", ErrUnknownNode
		}
		if !a.doc.nodes[id].anchorable() {
			return "", errors.Wrapf(ErrNotAnchorable, "cannot anchor a %s node", a.doc.nodes[id].Kind)
		}
	}
	if name != "" && invalidAnchorChars.MatchString(name) {
		return "", errors.Wrapf(ErrInvalidAnchorName, "invalid anchor %q", name)
	}
	if id == NoNode {
		if name != "" {
			a.unbindName(name)
		}
		return name, nil
	}
	if prev, ok := a.byNode[id]; ok {
		if name == "" || name == prev {
			return prev, nil
		}
		delete(a.byName, prev)
		delete(a.byNode, id)
	} else if name == "" {
		name = a.NewName(a.prefix)
	}
	a.bind(name, id)
	return name, nil
}

// bind points name at id without validation. Resolution uses it to bind
// nodes whose contents are not resolved yet.
func (a *Anchors) bind(name string, id NodeID) {
	a.unbindName(name)
	if prev, ok := a.byNode[id]; ok {
		delete(a.byName, prev)
	}
	a.byName[name] = id
	a.byNode[id] = name
}

func (a *Anchors) unbindName(name string) {
	if id, ok := a.byName[name]; ok {
		delete(a.byNode, id)
		delete(a.byName, name)
	}
}
