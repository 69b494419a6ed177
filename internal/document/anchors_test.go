// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"testing"

	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func newDocument(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d, err := New(opts...)
	assert.NoError(t, err)
	return d
}

func TestSetAnchor(t *testing.T) {
	d := newDocument(t)
	seq, err := d.CreateNode([]any{1, "x"})
	assert.NoError(t, err)
	first := d.Node(seq).Items[0]

	name, err := d.Anchors.SetAnchor(seq, "")
	assert.NoError(t, err)
	assert.Equal(t, "a1", name)

	name, err = d.Anchors.SetAnchor(seq, "")
	assert.NoError(t, err)
	assert.Equal(t, "a1", name)

	name, err = d.Anchors.SetAnchor(first, "")
	assert.NoError(t, err)
	assert.Equal(t, "a2", name)

	// Taking a name from another node leaves it unnamed.
	name, err = d.Anchors.SetAnchor(first, "a1")
	assert.NoError(t, err)
	assert.Equal(t, "a1", name)
	_, ok := d.Anchors.Name(seq)
	assert.False(t, ok)
	assert.DeepEqual(t, []string{"a1"}, d.Anchors.Names())
	id, ok := d.Anchors.Node("a1")
	assert.True(t, ok)
	assert.Equal(t, first, id)

	name, err = d.Anchors.SetAnchor(NoNode, "a1")
	assert.NoError(t, err)
	assert.Equal(t, "a1", name)
	assert.Equal(t, 0, len(d.Anchors.Names()))

	name, err = d.Anchors.SetAnchor(NoNode, "")
	assert.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestSetAnchorErrors(t *testing.T) {
	d := newDocument(t)
	id, err := d.CreateNode("x")
	assert.NoError(t, err)

	for _, name := range []string{"a b", "a,b", "x[0]", "{}", "tab\t", "nul\x00"} {
		_, err := d.Anchors.SetAnchor(id, name)
		assert.ErrorIs(t, err, ErrInvalidAnchorName)
	}
	_, err = d.Anchors.SetAnchor(99, "")
	assert.ErrorIs(t, err, ErrUnknownNode)

	alias, err := d.CreateAlias(id, "x")
	assert.NoError(t, err)
	_, err = d.Anchors.SetAnchor(alias, "y")
	assert.ErrorIs(t, err, ErrNotAnchorable)
	assert.ErrorMatches(t, `^cannot anchor a Alias node: `, err)
}

func TestNewName(t *testing.T) {
	d := newDocument(t)
	for i := 0; i < 3; i++ {
		id, err := d.CreateNode(i)
		assert.NoError(t, err)
		_, err = d.Anchors.SetAnchor(id, "")
		assert.NoError(t, err)
	}
	assert.DeepEqual(t, []string{"a1", "a2", "a3"}, d.Anchors.Names())
	assert.Equal(t, "a4", d.Anchors.NewName("a"))
	assert.Equal(t, "b1", d.Anchors.NewName("b"))

	_, err := d.Anchors.SetAnchor(NoNode, "a2")
	assert.NoError(t, err)
	assert.Equal(t, "a2", d.Anchors.NewName("a"))
}

func TestAnchorPrefix(t *testing.T) {
	d := newDocument(t, WithAnchorPrefix("ref"))
	id, err := d.CreateNode(map[string]int{"k": 1})
	assert.NoError(t, err)
	alias, err := d.CreateAlias(id, "")
	assert.NoError(t, err)
	got, err := d.Stringify(alias)
	assert.NoError(t, err)
	assert.Equal(t, "*ref1", got)
}

func TestParsedAnchors(t *testing.T) {
	d := parseDocument(t, "a: &x 1\nb: &x 2\nc: &y [*x]\n")
	assert.DeepEqual(t, []string{"x", "x1", "y"}, d.Anchors.Names())
	id, _ := d.Anchors.Node("x1")
	assert.Equal(t, int64(1), d.Node(id).Value)
	id, _ = d.Anchors.Node("x")
	assert.Equal(t, int64(2), d.Node(id).Value)

	seq, _ := d.Anchors.Node("y")
	alias := d.Node(seq).Items[0]
	assert.Equal(t, AliasNode, d.Node(alias).Kind)
	assert.Equal(t, id, d.Node(alias).Target)
}

func TestAliasProperties(t *testing.T) {
	d := parseDocument(t, "a: &x 1\nb: &y *x\n")
	assert.DeepEqual(t, []string{"An alias node must not specify any properties"}, messages(d.Errors))
}
