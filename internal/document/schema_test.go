// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/base64"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"

	"go.yaml.in/yamldoc/internal/cst"
	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func value(t *testing.T, src string, opts ...Option) any {
	t.Helper()
	d := parseDocument(t, src, opts...)
	assert.Equalf(t, 0, len(d.Errors), "errors for %q: %v", src, messages(d.Errors))
	v, err := d.Value()
	assert.NoError(t, err)
	return v
}

func TestSpecialFloats(t *testing.T) {
	v := value(t, "[.nan, -.inf, .Inf, +.INF]").([]any)
	assert.True(t, math.IsNaN(v[0].(float64)))
	assert.True(t, math.IsInf(v[1].(float64), -1))
	assert.True(t, math.IsInf(v[2].(float64), 1))
	assert.True(t, math.IsInf(v[3].(float64), 1))
}

func TestLargeIntegers(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), value(t, "9223372036854775807"))
	assert.Equal(t, int64(math.MinInt64), value(t, "-9223372036854775808"))
	assert.Equal(t, float64(1<<63), value(t, "9223372036854775808"))
	assert.Equal(t, 1e30, value(t, "1000000000000000000000000000000"))
}

func TestTimestamps(t *testing.T) {
	tests := []struct {
		src  string
		want time.Time
	}{
		{"2001-12-14", time.Date(2001, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"2001-12-14t21:59:43.10-05:00", time.Date(2001, 12, 15, 2, 59, 43, 100*int(time.Millisecond), time.UTC)},
		{"2001-12-14 21:59:43.10 -5", time.Date(2001, 12, 15, 2, 59, 43, 100*int(time.Millisecond), time.UTC)},
		{"2001-12-15T02:59:43.1Z", time.Date(2001, 12, 15, 2, 59, 43, 100*int(time.Millisecond), time.UTC)},
		{"2001-12-14 21:59:43.123456", time.Date(2001, 12, 14, 21, 59, 43, 123*int(time.Millisecond), time.UTC)},
	}
	for _, tt := range tests {
		got, ok := value(t, tt.src, WithVersion("1.1")).(time.Time)
		assert.Truef(t, ok, "%q is not a timestamp", tt.src)
		assert.Truef(t, tt.want.Equal(got), "%q: got %v, want %v", tt.src, got, tt.want)
	}

	// The core schema has no timestamps.
	assert.Equal(t, "2001-12-14", value(t, "2001-12-14"))
}

func TestInvalidBinary(t *testing.T) {
	d := parseDocument(t, "!!binary '!!'", WithVersion("1.1"))
	assert.Equal(t, 1, len(d.Errors))
	assert.True(t, strings.HasPrefix(d.Errors[0].Message, "Invalid base64 in !!binary value"))
}

func TestBinaryCodec(t *testing.T) {
	v := value(t, "!!binary aGVsbG8", WithVersion("1.1"), WithBinaryCodec(base64.RawStdEncoding))
	assert.DeepEqual(t, []byte("hello"), v)

	v = value(t, "!!binary |\n  aGVs\n  bG8=\n", WithVersion("1.1"))
	assert.DeepEqual(t, []byte("hello"), v)
}

func TestStringifyScalars(t *testing.T) {
	tests := []struct {
		src     string
		version string
		want    string
	}{
		{"42", "1.2", "42"},
		{"0x1F", "1.2", "0x1f"},
		{"0o14", "1.2", "0o14"},
		{"-0x1F", "1.1", "-0x1f"},
		{"1.50", "1.2", "1.50"},
		{"1.5", "1.2", "1.5"},
		{"1e3", "1.2", "1e+3"},
		{"~", "1.2", "null"},
		{"TRUE", "1.2", "true"},
		{".nan", "1.2", ".nan"},
		{"-.inf", "1.2", "-.inf"},
		{"plain text", "1.2", "plain text"},
		{"'42'", "1.2", `"42"`},
		{"'a: b'", "1.2", `"a: b"`},
		{"' x'", "1.2", `" x"`},
		{"'---'", "1.2", `"---"`},
		{"'yes'", "1.1", `"yes"`},
		{"'yes'", "1.2", "yes"},
		{"190:20:30", "1.1", "190:20:30"},
		{"014", "1.1", "014"},
		{"0b101", "1.1", "0b101"},
		{"2001-12-14", "1.1", "2001-12-14"},
		{"2001-12-14 21:59:43.10 -5", "1.1", "2001-12-15T02:59:43.100Z"},
		{"!!binary aGVsbG8=", "1.1", "!!binary aGVsbG8="},
		{"&x a", "1.2", "&x a"},
		{"!foo bar", "1.2", "!foo bar"},
		{"!!str 4", "1.2", `"4"`},
	}
	for _, tt := range tests {
		d := parseDocument(t, tt.src, WithVersion(tt.version))
		got, err := d.Stringify(d.Contents)
		assert.NoErrorf(t, err, "Stringify(%q)", tt.src)
		assert.Equalf(t, tt.want, got, "Stringify(%q) in YAML %s", tt.src, tt.version)
	}
}

func TestStringifyErrors(t *testing.T) {
	d := parseDocument(t, "a: 1")
	_, err := d.Stringify(d.Contents)
	assert.ErrorIs(t, err, ErrUnrepresentable)

	_, err = d.Stringify(42)
	assert.ErrorIs(t, err, ErrUnknownNode)

	got, err := d.Stringify(NoNode)
	assert.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestTagObject(t *testing.T) {
	s, err := NewSchema(SchemaOptions{Name: "core"})
	assert.NoError(t, err)
	tests := []struct {
		node *Node
		want *Tag
	}{
		{&Node{Kind: ScalarNode, Value: int64(1)}, coreIntTag},
		{&Node{Kind: ScalarNode, Value: int64(1), Format: "HEX"}, coreHexTag},
		{&Node{Kind: ScalarNode, Value: "x", Tag: "!!str"}, strTag},
		{&Node{Kind: ScalarNode, Value: nil}, coreNullTag},
		{&Node{Kind: MapNode}, mapTag},
		{&Node{Kind: SeqNode}, seqTag},
		{&Node{Kind: AliasNode}, AliasTag},
	}
	for _, tt := range tests {
		got, err := s.TagObject(tt.node)
		assert.NoError(t, err)
		assert.Truef(t, tt.want == got, "TagObject(%+v) = %v", tt.node, got.Tag)
	}

	_, err = s.TagObject(&Node{Kind: ScalarNode, Value: []byte("x")})
	assert.ErrorIs(t, err, ErrUnrepresentable)
	_, err = s.TagObject(&Node{Kind: MergeNode})
	assert.ErrorIs(t, err, ErrUnrepresentable)
	_, err = s.TagObject(&Node{Kind: ScalarNode, Value: struct{}{}})
	assert.ErrorIs(t, err, ErrUnrepresentable)
}

func TestNewSchema(t *testing.T) {
	assert.DeepEqual(t, []string{"core", "failsafe", "json", "yaml-1.1"}, SchemaNames())

	_, err := NewSchema(SchemaOptions{Name: "nope"})
	assert.ErrorIs(t, err, ErrUnknownSchema)

	s, err := NewSchema(SchemaOptions{Name: "failsafe", Merge: true})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(s.Tags()))
	assert.Equal(t, "Schema(failsafe, merge=true, 3 tags)", s.String())
}

func TestResolveScalar(t *testing.T) {
	s, err := NewSchema(SchemaOptions{Name: "core"})
	assert.NoError(t, err)
	n, err := s.ResolveScalar("0x10", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(16), n.Value)
	assert.Equal(t, "HEX", n.Format)

	n, err = s.ResolveScalar("1.250", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1.25, n.Value)
	assert.Equal(t, 3, n.MinFractionDigits)

	n, err = s.ResolveScalar("10", []*Tag{coreHexTag})
	assert.NoError(t, err)
	assert.Equal(t, "10", n.Value)

	s, err = NewSchema(SchemaOptions{Name: "json"})
	assert.NoError(t, err)
	_, err = s.ResolveScalar("True", nil)
	assert.ErrorMatches(t, `Unresolved plain scalar "True"`, err)
}

var colorTag = &Tag{
	Tag:     "tag:example.com,2000:color",
	Class:   ClassNone,
	Test:    regexp.MustCompile(`^rgb\((\d+),(\d+),(\d+)\)$`),
	Resolve: func(m []string) (any, error) { return strings.Join(m[1:], "/"), nil },
}

var upperTag = &Tag{
	Tag: "!upper",
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		str, _, _ := n.StrValue()
		return strings.ToUpper(str), nil
	},
}

func TestCustomTags(t *testing.T) {
	assert.Equal(t, "1/2/3", value(t, "rgb(1,2,3)", WithTags(colorTag)))
	assert.Equal(t, "rgb(1,2,3)", value(t, "rgb(1,2,3)"))

	d := parseDocument(t, "!upper abc", WithTags(upperTag))
	assert.Equal(t, 0, len(d.Warnings))
	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, "ABC", v)
	assert.Equal(t, "!upper", d.Node(d.Contents).Tag)

	noBools := WithTagsFunc(func(tags []*Tag) []*Tag {
		return lo.Reject(tags, func(tag *Tag, _ int) bool { return tag.Tag == BoolTag })
	})
	assert.Equal(t, "true", value(t, "true", noBools))
}

func TestOptions(t *testing.T) {
	o, err := ApplyOptions()
	assert.NoError(t, err)
	assert.Equal(t, DefaultVersion, o.Version)
	assert.Equal(t, DefaultAnchorPrefix, o.AnchorPrefix)
	assert.NotNil(t, o.Logger)
	assert.IsNil(t, o.Merge)

	o, err = ApplyOptions(CombineOptions(WithVersion("1.1"), nil, WithMerge(false)), WithSchema("json"))
	assert.NoError(t, err)
	assert.Equal(t, "1.1", o.Version)
	assert.Equal(t, "json", o.Schema)
	assert.False(t, *o.Merge)

	tests := []struct {
		opt  Option
		want error
	}{
		{WithVersion("2.0"), ErrUnsupportedVersion},
		{WithSchema("nope"), ErrUnknownSchema},
		{WithAnchorPrefix("a b"), ErrInvalidAnchorName},
		{WithAnchorPrefix(""), ErrInvalidAnchorName},
	}
	for _, tt := range tests {
		_, err := ApplyOptions(tt.opt)
		assert.ErrorIs(t, err, tt.want)
	}
	_, err = ApplyOptions(WithTags(&Tag{}))
	assert.ErrorMatches(t, `custom tags need a tag name`, err)
	_, err = ApplyOptions(WithTags(&Tag{Tag: "!x", Test: regexp.MustCompile(`x`)}))
	assert.ErrorMatches(t, `tag !x has a test but no resolver`, err)
	_, err = ApplyOptions(WithBinaryCodec(nil))
	assert.ErrorMatches(t, `nil binary codec`, err)

	o, err = ApplyOptions(WithLogger(nil))
	assert.NoError(t, err)
	assert.NotNil(t, o.Logger)
}

func TestVersionDefaults(t *testing.T) {
	d, err := New()
	assert.NoError(t, err)
	assert.Equal(t, "core", d.Schema.Name)
	assert.False(t, d.Schema.Merge)

	d, err = New(WithVersion("1.1"))
	assert.NoError(t, err)
	assert.Equal(t, "yaml-1.1", d.Schema.Name)
	assert.True(t, d.Schema.Merge)

	d, err = New(WithVersion("1.1"), WithSchema("core"), WithMerge(false))
	assert.NoError(t, err)
	assert.Equal(t, "core", d.Schema.Name)
	assert.False(t, d.Schema.Merge)
	assert.Equal(t, "1.1", d.Options().Version)
}
