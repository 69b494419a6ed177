// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

// ListTagNames returns the tags set on the nodes under id, in the order
// they are first found. Aliases are not followed.
func (d *Document) ListTagNames(id NodeID) []string {
	var names []string
	seen := make(map[string]bool)
	var visit func(id NodeID)
	visit = func(id NodeID) {
		if !d.Has(id) {
			return
		}
		n := &d.nodes[id]
		if n.Tag != "" && n.Kind != AliasNode && !seen[n.Tag] {
			seen[n.Tag] = true
			names = append(names, n.Tag)
		}
		switch n.Kind {
		case SeqNode, MergeNode:
			for _, item := range n.Items {
				visit(item)
			}
		case MapNode:
			for _, p := range n.Pairs {
				visit(p.Key)
				visit(p.Value)
			}
		}
	}
	visit(id)
	return names
}
