// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	nodeIDType = reflect.TypeOf(NoNode)
	timeType   = reflect.TypeOf(time.Time{})
	bytesType  = reflect.TypeOf([]byte(nil))
)

// CreateNode adds the nodes representing a Go value to the arena and
// returns the root.
//
// Slices and arrays become Seq nodes. Maps become Map nodes with their keys
// sorted, and structs Map nodes of their exported fields, named by
// their `yaml` tags as go.yaml.in/yaml/v3 does ("-" skips a field,
// omitempty skips zero values). A NodeID value refers to a node already in
// the arena. Everything else becomes a Scalar; signed and small unsigned
// integers are stored as int64 and floats as float64.
func (d *Document) CreateNode(value any) (NodeID, error) {
	if id, ok := value.(NodeID); ok {
		if id != NoNode && !d.Has(id) {
			return NoNode, errors.Wrapf(ErrUnknownNode, "node %d", id)
		}
		return id, nil
	}
	return d.createValue(reflect.ValueOf(value))
}

func (d *Document) scalar(v any) NodeID {
	return d.add(Node{Kind: ScalarNode, Target: NoNode, Value: v})
}

func (d *Document) createValue(v reflect.Value) (NodeID, error) {
	if !v.IsValid() {
		return d.scalar(nil), nil
	}
	if v.Type() == nodeIDType {
		return d.CreateNode(NodeID(v.Int()))
	}
	switch v.Type() {
	case timeType:
		return d.scalar(v.Interface().(time.Time)), nil
	case bytesType:
		return d.scalar(v.Bytes()), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return d.scalar(nil), nil
		}
		return d.createValue(v.Elem())
	case reflect.Bool:
		return d.scalar(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.scalar(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := v.Uint(); u > 1<<63-1 {
			return d.scalar(u), nil
		}
		return d.scalar(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return d.scalar(v.Float()), nil
	case reflect.String:
		return d.scalar(v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return d.scalar(nil), nil
		}
		items := make([]NodeID, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			id, err := d.createValue(v.Index(i))
			if err != nil {
				return NoNode, err
			}
			items = append(items, id)
		}
		return d.add(Node{Kind: SeqNode, Target: NoNode, Items: items}), nil
	case reflect.Map:
		if v.IsNil() {
			return d.scalar(nil), nil
		}
		return d.createMap(v)
	case reflect.Struct:
		return d.createStruct(v)
	}
	return NoNode, errors.Wrapf(ErrUnrepresentable, "%s value", v.Type())
}

func (d *Document) createMap(v reflect.Value) (NodeID, error) {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return mapKeyText(keys[i]) < mapKeyText(keys[j]) })
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		key, err := d.createValue(k)
		if err != nil {
			return NoNode, err
		}
		value, err := d.createValue(v.MapIndex(k))
		if err != nil {
			return NoNode, err
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return d.add(Node{Kind: MapNode, Target: NoNode, Pairs: pairs}), nil
}

func mapKeyText(k reflect.Value) string {
	if m, ok := k.Interface().(encoding.TextMarshaler); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	for k.Kind() == reflect.Interface || k.Kind() == reflect.Pointer {
		if k.IsNil() {
			return ""
		}
		k = k.Elem()
	}
	return keyText(k.Interface())
}

func (d *Document) createStruct(v reflect.Value) (NodeID, error) {
	t := v.Type()
	var pairs []Pair
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if lo.Contains(strings.Split(opts, ","), "omitempty") && fv.IsZero() {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		value, err := d.createValue(fv)
		if err != nil {
			return NoNode, errors.Wrapf(err, "field %s", f.Name)
		}
		pairs = append(pairs, Pair{Key: d.scalar(name), Value: value})
	}
	return d.add(Node{Kind: MapNode, Target: NoNode, Pairs: pairs}), nil
}

// CreateAlias adds an Alias of id. The target gets the anchor name, or a
// generated one when name is empty and it has none.
func (d *Document) CreateAlias(id NodeID, name string) (NodeID, error) {
	if _, err := d.Anchors.SetAnchor(id, name); err != nil {
		return NoNode, err
	}
	return d.add(Node{Kind: AliasNode, Target: id}), nil
}

// CreateMergePair returns a merge pseudo-pair with the given sources. Each
// source must be a Map or an Alias of one. Maps that are not aliased yet are
// given an anchor and replaced by an alias.
func (d *Document) CreateMergePair(sources ...NodeID) (Pair, error) {
	items := make([]NodeID, 0, len(sources))
	for _, src := range sources {
		target, ok := d.deref(src)
		if !ok || d.nodes[target].Kind != MapNode {
			return Pair{}, errors.Wrapf(ErrInvalidMergeSource, "node %d", src)
		}
		if d.nodes[src].Kind != AliasNode {
			alias, err := d.CreateAlias(src, "")
			if err != nil {
				return Pair{}, err
			}
			src = alias
		}
		items = append(items, src)
	}
	return Pair{
		Key:   d.scalar(MergeKey),
		Value: d.add(Node{Kind: MergeNode, Target: NoNode, Items: items}),
	}, nil
}

// AppendPair adds a pair to the end of a Map.
func (d *Document) AppendPair(m NodeID, p Pair) error {
	if !d.Has(m) || d.nodes[m].Kind != MapNode {
		return errors.Wrapf(ErrUnknownNode, "map %d", m)
	}
	for _, id := range []NodeID{p.Key, p.Value} {
		if id != NoNode && !d.Has(id) {
			return errors.Wrapf(ErrUnknownNode, "node %d", id)
		}
	}
	d.nodes[m].Pairs = append(d.nodes[m].Pairs, p)
	return nil
}

// AppendItem adds an item to the end of a Seq.
func (d *Document) AppendItem(s, item NodeID) error {
	if !d.Has(s) || d.nodes[s].Kind != SeqNode {
		return errors.Wrapf(ErrUnknownNode, "sequence %d", s)
	}
	if item != NoNode && !d.Has(item) {
		return errors.Wrapf(ErrUnknownNode, "node %d", item)
	}
	d.nodes[s].Items = append(d.nodes[s].Items, item)
	return nil
}

// SetContents replaces the document contents with the nodes created for
// value.
func (d *Document) SetContents(value any) error {
	id, err := d.CreateNode(value)
	if err != nil {
		return err
	}
	d.Contents = id
	return nil
}

// SetTag sets the tag of a node; an empty tag clears it.
func (d *Document) SetTag(id NodeID, tag string) error {
	if !d.Has(id) {
		return errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	if d.nodes[id].Kind == AliasNode && tag != "" {
		return ErrAliasTag
	}
	d.nodes[id].Tag = ShortTag(LongTag(tag))
	return nil
}

// Stringify writes a Scalar or an Alias as YAML text, with its anchor and
// non-default tag.
func (d *Document) Stringify(id NodeID) (string, error) {
	if id == NoNode {
		return "", nil
	}
	if !d.Has(id) {
		return "", errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	n := &d.nodes[id]
	if n.Kind == AliasNode {
		name, ok := d.Anchors.Name(n.Target)
		if !ok {
			return "", errors.Wrapf(ErrUnknownNode, "alias %d has no anchored target", id)
		}
		return "*" + name, nil
	}
	t, err := d.Schema.TagObject(n)
	if err != nil {
		return "", err
	}
	str, err := d.Schema.Stringify(n)
	if err != nil {
		return "", err
	}
	var props []string
	if name, ok := d.Anchors.Name(id); ok {
		props = append(props, "&"+name)
	}
	if n.Tag != "" && !(t.Default && LongTag(n.Tag) == t.Tag) {
		props = append(props, d.StringifyTag(n.Tag))
	}
	return strings.Join(append(props, str), " "), nil
}
