// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamldoc_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"go.yaml.in/yamldoc"
	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func TestParseCSTRoundTrip(t *testing.T) {
	for _, src := range []string{
		"",
		"a: 1\n",
		"a: 1\r\nb:\r\n  - x # c\r\n",
		"%YAML 1.2\n--- !!map\n? [a, {b: c}]\n: |-\n  text\n...\n# end\n",
		"- 'q' \n-   \"d\"\n\n\n",
	} {
		s := yamldoc.ParseCST(src)
		assert.Equalf(t, src, s.String(), "ParseCST(%q)", src)
	}
}

func TestParse(t *testing.T) {
	v, err := yamldoc.Parse("a: 1\nb: [x, true]\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": int64(1), "b": []any{"x", true}}, v)

	v, err = yamldoc.Parse("a: on\n", yamldoc.WithVersion("1.1"))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": true}, v)

	v, err = yamldoc.Parse("")
	assert.NoError(t, err)
	assert.IsNil(t, v)
}

func TestParseErrors(t *testing.T) {
	_, err := yamldoc.Parse("a: 1\na: 2\n")
	assert.ErrorMatches(t, `^yaml: line 1: Map keys must be unique; "a" is repeated$`, err)
	var e *yamldoc.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, yamldoc.SemanticError, e.Kind)

	_, err = yamldoc.Parse("a\n---\nb\n")
	assert.ErrorMatches(t, `^yaml: line 2: Source contains multiple documents; please use ParseAllDocuments\(\)$`, err)

	_, err = yamldoc.Parse("a", yamldoc.WithSchema("nope"))
	assert.ErrorIs(t, err, yamldoc.ErrUnknownSchema)
	assert.ErrorMatches(t, `^yamldoc: invalid options: schema "nope": `, err)

	_, err = yamldoc.Parse("&a [*a]")
	assert.ErrorIs(t, err, yamldoc.ErrAliasCycle)
}

func TestParseLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowWarn())
	v, err := yamldoc.Parse("a: !thing x\n", yamldoc.WithLogger(logger))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": "x"}, v)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasPrefix(out, `level=warn msg="The tag !thing is unavailable, falling back to tag:yaml.org,2002:str" line=1 column=`))

	buf.Reset()
	logger = level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowError())
	_, err = yamldoc.Parse("a: !thing x\n", yamldoc.WithLogger(logger))
	assert.NoError(t, err)
	assert.Equal(t, "", buf.String())
}

func TestParseDocument(t *testing.T) {
	doc, err := yamldoc.ParseDocument("a\n---\nb\n")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Errors))
	assert.Equal(t, "Source contains multiple documents; please use ParseAllDocuments()", doc.Errors[0].Message)
	v, err := doc.Value()
	assert.NoError(t, err)
	assert.Equal(t, "a", v)

	doc, err = yamldoc.ParseDocument("x: 1\nx: 2\n---\ny\n")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(doc.Errors))
	assert.Equal(t, "Source contains multiple documents; please use ParseAllDocuments()", doc.Errors[0].Message)
	assert.Equal(t, `Map keys must be unique; "x" is repeated`, doc.Errors[1].Message)

	_, err = yamldoc.ParseDocument("a", yamldoc.WithVersion("0.9"))
	assert.ErrorIs(t, err, yamldoc.ErrUnsupportedVersion)
}

func TestParseAllDocuments(t *testing.T) {
	docs, err := yamldoc.ParseAllDocuments("a\n---\n- b\n...\n--- {c: d}\n")
	assert.NoError(t, err)
	var values []any
	for _, doc := range docs {
		assert.Equal(t, 0, len(doc.Errors))
		v, err := doc.Value()
		assert.NoError(t, err)
		values = append(values, v)
	}
	assert.DeepEqual(t, []any{"a", []any{"b"}, map[string]any{"c": "d"}}, values)

	// An unterminated quote stops at the next document.
	docs, err = yamldoc.ParseAllDocuments("'unterminated\n---\nb: 2\n")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "Missing closing 'quote", docs[0].Errors[0].Message)
	assert.Equal(t, 0, len(docs[1].Errors))
	v, err := docs[1].Value()
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"b": int64(2)}, v)

	_, err = yamldoc.ParseAllDocuments("a", yamldoc.WithAnchorPrefix("a b"))
	assert.ErrorIs(t, err, yamldoc.ErrInvalidAnchorName)
}

func TestNewDocument(t *testing.T) {
	doc, err := yamldoc.NewDocument(yamldoc.WithAnchorPrefix("ref"))
	assert.NoError(t, err)
	assert.Equal(t, yamldoc.NoNode, doc.Contents)

	assert.NoError(t, doc.SetContents(map[string]any{"list": []int{1, 2}}))
	v, err := doc.Value()
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"list": []any{int64(1), int64(2)}}, v)

	m := doc.Node(doc.Contents)
	assert.Equal(t, yamldoc.MapNode, m.Kind)
	alias, err := doc.CreateAlias(m.Pairs[0].Value, "")
	assert.NoError(t, err)
	s, err := doc.Stringify(alias)
	assert.NoError(t, err)
	assert.Equal(t, "*ref1", s)

	_, err = yamldoc.NewDocument(yamldoc.WithBinaryCodec(nil))
	assert.NotNil(t, err)
}

func TestOptionsCombine(t *testing.T) {
	src := "a: &a {x: 1}\nb: {<<: *a}\n"
	v, err := yamldoc.Parse(src, yamldoc.Options(yamldoc.WithVersion("1.1"), yamldoc.WithMerge(false)))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{
		"a": map[string]any{"x": int64(1)},
		"b": map[string]any{"<<": map[string]any{"x": int64(1)}},
	}, v)

	v, err = yamldoc.Parse(src, yamldoc.Options(yamldoc.WithMerge(false), yamldoc.WithMerge(true)))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{
		"a": map[string]any{"x": int64(1)},
		"b": map[string]any{"x": int64(1)},
	}, v)
}
