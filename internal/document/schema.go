// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/base64"
	"fmt"
	"slices"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.yaml.in/yamldoc/internal/cst"
)

// baseSchema is a named list of tags that a Schema is built from.
type baseSchema struct {
	tags []*Tag
	// fallback resolves a plain scalar no tag matched. nil keeps it a
	// string.
	fallback func(str string) (any, error)
}

var availableSchemas = map[string]baseSchema{
	"core":     {tags: coreTags},
	"failsafe": {tags: failsafeTags},
	"json":     {tags: jsonTags, fallback: jsonFallback},
	"yaml-1.1": {tags: yaml11Tags},
}

// SchemaNames returns the names NewSchema accepts, sorted.
func SchemaNames() []string {
	names := lo.Keys(availableSchemas)
	sort.Strings(names)
	return names
}

// SchemaOptions configures NewSchema.
type SchemaOptions struct {
	// Name selects the base tag list: "core", "failsafe", "json" or
	// "yaml-1.1".
	Name string
	// Merge enables `<<` merge keys.
	Merge bool
	// Tags are appended to the base tags.
	Tags []*Tag
	// TagsFunc, if set, replaces the tag list with its result.
	TagsFunc func(tags []*Tag) []*Tag
	// Binary encodes !!binary values. It defaults to standard base64.
	Binary BinaryCodec
}

// Schema resolves tags to values. It is immutable and safe to share
// between documents.
type Schema struct {
	Name  string
	Merge bool

	tags     []*Tag
	fallback func(str string) (any, error)
	binary   BinaryCodec
}

// NewSchema returns the schema configured by opts.
func NewSchema(opts SchemaOptions) (*Schema, error) {
	base, ok := availableSchemas[opts.Name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownSchema, "schema %q", opts.Name)
	}
	tags := slices.Clone(base.tags)
	tags = append(tags, opts.Tags...)
	if opts.TagsFunc != nil {
		tags = opts.TagsFunc(tags)
	}
	binary := opts.Binary
	if binary == nil {
		binary = base64.StdEncoding
	}
	return &Schema{
		Name:     opts.Name,
		Merge:    opts.Merge,
		tags:     tags,
		fallback: base.fallback,
		binary:   binary,
	}, nil
}

// Tags returns the schema's tags in resolution order.
func (s *Schema) Tags() []*Tag {
	return slices.Clone(s.tags)
}

// scalarOf wraps a resolved value in a Scalar, unless it is a node already.
func scalarOf(v any) *Node {
	switch v := v.(type) {
	case *Node:
		return v
	case Node:
		return &v
	}
	return &Node{Kind: ScalarNode, Value: v}
}

// ResolveScalar resolves a plain scalar against tags, or against all the
// schema's tags when tags is nil. The first tag whose Test matches wins.
// Without a match the schema's fallback applies, which by default keeps the
// string.
func (s *Schema) ResolveScalar(str string, tags []*Tag) (*Node, error) {
	if tags == nil {
		tags = s.tags
	}
	for _, t := range tags {
		if t.Test == nil {
			continue
		}
		match := t.Test.FindStringSubmatch(str)
		if match == nil {
			continue
		}
		v, err := t.Resolve(match)
		if err != nil {
			return nil, err
		}
		res := scalarOf(v)
		if t.Format != "" {
			res.Format = t.Format
		}
		return res, nil
	}
	if s.fallback != nil {
		v, err := s.fallback(str)
		if err != nil {
			return nil, err
		}
		return scalarOf(v), nil
	}
	return &Node{Kind: ScalarNode, Value: str}, nil
}

// ResolveNode resolves n with the schema's tags named tagName. It reports
// false when no tag has that name; otherwise the result is nil if
// resolution failed, with the failure recorded on doc.
func (s *Schema) ResolveNode(doc *Document, n *cst.Node, tagName string) (*Node, bool) {
	tags := lo.Filter(s.tags, func(t *Tag, _ int) bool { return t.Tag == tagName })
	doc.addError(n.Error)
	var res *Node
	if generic, ok := lo.Find(tags, func(t *Tag) bool { return t.Test == nil }); ok {
		if generic.ResolveNode == nil {
			res = &Node{Kind: ScalarNode, Value: doc.resolveString(n)}
		} else {
			v, err := generic.ResolveNode(doc, n)
			if err != nil {
				doc.addError(annotate(err, n))
				return nil, true
			}
			res = scalarOf(v)
		}
	} else {
		if len(tags) == 0 {
			return nil, false
		}
		var err error
		res, err = s.ResolveScalar(doc.resolveString(n), tags)
		if err != nil {
			doc.addError(annotate(err, n))
			return nil, true
		}
	}
	if tagName != "" {
		res.Tag = ShortTag(tagName)
	}
	return res, true
}

// ResolveNodeWithFallback is ResolveNode, except that a tag the schema does
// not know falls back to the default tag for n's shape. The fallback is
// reported as a warning and the node keeps tagName.
func (s *Schema) ResolveNodeWithFallback(doc *Document, n *cst.Node, tagName string) *Node {
	if res, ok := s.ResolveNode(doc, n, tagName); ok {
		return res
	}
	fallback := StrTag
	switch n.Kind {
	case cst.BlockMapNode, cst.FlowMapNode:
		fallback = MapTag
	case cst.BlockSeqNode, cst.FlowSeqNode:
		fallback = SeqTag
	}
	res, ok := s.ResolveNode(doc, n, fallback)
	if !ok {
		doc.addError(cst.Errorf(ReferenceError, n, "The tag %s is unavailable", tagName))
		return nil
	}
	doc.addError(cst.Errorf(Warning, n, "The tag %s is unavailable, falling back to %s", tagName, fallback))
	if res != nil {
		res.Tag = ShortTag(tagName)
	}
	return res
}

// AliasTag describes alias nodes.
var AliasTag = &Tag{Default: true}

// TagObject returns the tag describing n: the tag matching n's tag and
// format, else the one matching its tag, else the first one for its value
// class and format, else the first one for its class.
func (s *Schema) TagObject(n *Node) (*Tag, error) {
	switch n.Kind {
	case AliasNode:
		return AliasTag, nil
	case MergeNode, 0:
		return nil, errors.Wrapf(ErrUnrepresentable, "%s node", n.Kind)
	}
	if n.Tag != "" {
		tag := LongTag(n.Tag)
		if t, ok := lo.Find(s.tags, func(t *Tag) bool { return t.Tag == tag && t.Format == n.Format }); ok {
			return t, nil
		}
		if t, ok := lo.Find(s.tags, func(t *Tag) bool { return t.Tag == tag }); ok {
			return t, nil
		}
	}
	class := classOf(n)
	if class == ClassNone {
		return nil, errors.Wrapf(ErrUnrepresentable, "%T value", n.Value)
	}
	if t, ok := lo.Find(s.tags, func(t *Tag) bool { return t.Class == class && t.Format == n.Format }); ok {
		return t, nil
	}
	if t, ok := lo.Find(s.tags, func(t *Tag) bool { return t.Class == class && t.Format == "" }); ok {
		return t, nil
	}
	return nil, errors.Wrapf(ErrUnrepresentable, "%s value", class)
}

// Stringify returns the text of a scalar node under the tag describing it.
func (s *Schema) Stringify(n *Node) (string, error) {
	t, err := s.TagObject(n)
	if err != nil {
		return "", err
	}
	if t.Stringify != nil {
		return t.Stringify(s, n)
	}
	if n.Kind != ScalarNode {
		return "", errors.Wrapf(ErrUnrepresentable, "cannot write a %s node as a scalar", n.Kind)
	}
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(n.Value)
	if err != nil {
		return "", errors.Wrap(err, "yaml: cannot write scalar")
	}
	return string(b), nil
}

func (s *Schema) String() string {
	return fmt.Sprintf("Schema(%s, merge=%t, %d tags)", s.Name, s.Merge, len(s.tags))
}
