// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// jsonKeys writes collection keys as JSON text, with map keys sorted.
var jsonKeys = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// Value returns the document contents as plain Go values.
func (d *Document) Value() (any, error) {
	return d.ToValue(d.Contents, false)
}

// ToValue converts a node to plain Go values: a Scalar to its value, a Seq
// to []any and a Map to map[string]any. Non-string map keys are converted
// to strings; collection keys are written as JSON.
//
// Merge pairs insert the entries of their sources that are not yet in the
// map when the merge pair is reached. Sources are folded last to first, so
// earlier sources win over later ones, and the map's own entries win over
// all of them.
//
// With keep set, the entries of the converted collection are returned as
// *Node values instead of being converted themselves.
func (d *Document) ToValue(id NodeID, keep bool) (any, error) {
	return d.toValue(id, keep, make(map[NodeID]bool))
}

func (d *Document) toValue(id NodeID, keep bool, visiting map[NodeID]bool) (any, error) {
	if id == NoNode {
		return nil, nil
	}
	if !d.Has(id) {
		return nil, errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	n := &d.nodes[id]
	switch n.Kind {
	case ScalarNode:
		return n.Value, nil
	case AliasNode:
		target, ok := d.deref(id)
		if !ok {
			if d.Has(target) {
				// unresolved anchored node
				return nil, nil
			}
			return nil, errors.Wrapf(ErrAliasCycle, "alias %d never reaches a node", id)
		}
		return d.toValue(target, keep, visiting)
	case 0:
		return nil, nil
	}
	if visiting[id] {
		return nil, errors.Wrapf(ErrAliasCycle, "node %d contains itself", id)
	}
	visiting[id] = true
	defer delete(visiting, id)
	switch n.Kind {
	case SeqNode, MergeNode:
		out := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			v, err := d.entryValue(item, keep, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case MapNode:
		return d.mapValue(n, keep, visiting)
	}
	return nil, errors.Wrapf(ErrUnknownNode, "node %d has kind %s", id, n.Kind)
}

func (d *Document) entryValue(id NodeID, keep bool, visiting map[NodeID]bool) (any, error) {
	if keep && id != NoNode {
		return d.Node(id), nil
	}
	return d.toValue(id, false, visiting)
}

func (d *Document) mapValue(n *Node, keep bool, visiting map[NodeID]bool) (map[string]any, error) {
	out := make(map[string]any, len(n.Pairs))
	for _, p := range n.Pairs {
		if !d.IsMergePair(p) {
			key, err := d.stringKey(p.Key, visiting)
			if err != nil {
				return nil, err
			}
			v, err := d.entryValue(p.Value, keep, visiting)
			if err != nil {
				return nil, err
			}
			out[key] = v
			continue
		}
		present := lo.Keyify(lo.Keys(out))
		sources := d.nodes[p.Value].Items
		for i := len(sources) - 1; i >= 0; i-- {
			src, ok := d.deref(sources[i])
			if !ok || d.nodes[src].Kind != MapNode {
				return nil, errors.Wrapf(ErrInvalidMergeSource, "merge source %d", i)
			}
			v, err := d.toValue(src, keep, visiting)
			if err != nil {
				return nil, err
			}
			for k, v := range v.(map[string]any) {
				if _, ok := present[k]; !ok {
					out[k] = v
				}
			}
		}
	}
	return out, nil
}

// stringKey converts a map key to the string it is stored under.
func (d *Document) stringKey(id NodeID, visiting map[NodeID]bool) (string, error) {
	v, err := d.toValue(id, false, visiting)
	if err != nil {
		return "", err
	}
	return keyText(v), nil
}

func keyText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case []any, map[string]any:
		b, err := jsonKeys.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	if _, ok := asFloat64(v); ok {
		return formatNumber(v)
	}
	return fmt.Sprint(v)
}

// keyString describes a key in diagnostics.
func (d *Document) keyString(id NodeID) string {
	if id == NoNode {
		return "null"
	}
	s, err := d.stringKey(id, make(map[NodeID]bool))
	if err != nil {
		return fmt.Sprintf("<%s>", d.nodes[id].Kind)
	}
	return s
}
