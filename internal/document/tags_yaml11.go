// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.yaml.in/yamldoc/internal/cst"
)

var yaml11TrueTag = &Tag{
	Tag:       BoolTag,
	Class:     ClassBool,
	Default:   true,
	Test:      regexp.MustCompile(`^(?:y|Y|yes|Yes|YES|true|True|TRUE|on|On|ON)$`),
	Resolve:   func([]string) (any, error) { return true, nil },
	Stringify: stringifyBool,
}

var yaml11FalseTag = &Tag{
	Tag:       BoolTag,
	Class:     ClassBool,
	Default:   true,
	Test:      regexp.MustCompile(`^(?:n|N|no|No|NO|false|False|FALSE|off|Off|OFF)$`),
	Resolve:   func([]string) (any, error) { return false, nil },
	Stringify: stringifyBool,
}

func yaml11Int(format, pattern string, base int, stringify func(*Schema, *Node) (string, error)) *Tag {
	return &Tag{
		Tag:     IntTag,
		Class:   ClassInt,
		Default: true,
		Format:  format,
		Test:    regexp.MustCompile(pattern),
		Resolve: func(m []string) (any, error) {
			return parseInt(m[1], m[2], base), nil
		},
		Stringify: stringify,
	}
}

var yaml11ExpTag = &Tag{
	Tag:     FloatTag,
	Class:   ClassFloat,
	Default: true,
	Format:  "EXP",
	Test:    regexp.MustCompile(`^[-+]?([0-9][0-9_]*)?(\.[0-9_]*)?[eE][-+]?[0-9]+$`),
	Resolve: func(m []string) (any, error) {
		return parseFloat(m[0]), nil
	},
	Stringify: stringifyExp,
}

var yaml11FloatTag = &Tag{
	Tag:       FloatTag,
	Class:     ClassFloat,
	Default:   true,
	Test:      regexp.MustCompile(`^[-+]?(?:[0-9][0-9_]*)?\.([0-9_]*)$`),
	Resolve:   resolveFixed,
	Stringify: stringifyNumber,
}

var yaml11IntTimeTag = &Tag{
	Tag:     IntTag,
	Class:   ClassInt,
	Default: true,
	Format:  "TIME",
	Test:    regexp.MustCompile(`^([-+]?)([0-9][0-9_]*(?::[0-5]?[0-9])+)$`),
	Resolve: func(m []string) (any, error) {
		f := parseSexagesimal(m[1], m[2])
		if f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f), nil
		}
		return f, nil
	},
	Stringify: stringifySexagesimal,
}

var yaml11FloatTimeTag = &Tag{
	Tag:     FloatTag,
	Class:   ClassFloat,
	Default: true,
	Format:  "TIME",
	Test:    regexp.MustCompile(`^([-+]?)([0-9][0-9_]*(?::[0-5]?[0-9])+\.[0-9_]*)$`),
	Resolve: func(m []string) (any, error) {
		return parseSexagesimal(m[1], m[2]), nil
	},
	Stringify: stringifySexagesimal,
}

var yaml11TimestampTag = &Tag{
	Tag:     TimestampTag,
	Class:   ClassTime,
	Default: true,
	Test: regexp.MustCompile(`^(?:([0-9]{4})-([0-9]{1,2})-([0-9]{1,2})` +
		`(?:(?:t|T|[ \t]+)([0-9]{1,2}):([0-9]{1,2}):([0-9]{1,2}(\.[0-9]+)?)` +
		`(?:[ \t]*(Z|[-+][012]?[0-9](?::[0-9]{2})?))?)?)$`),
	Resolve:   resolveTimestamp,
	Stringify: stringifyTimestamp,
}

var yaml11BinaryTag = &Tag{
	Tag:         BinaryTag,
	Class:       ClassBytes,
	ResolveNode: resolveBinary,
	Stringify: func(s *Schema, n *Node) (string, error) {
		b, ok := n.Value.([]byte)
		if !ok {
			return "", fmt.Errorf("yaml: cannot write %T as binary", n.Value)
		}
		return s.binary.EncodeToString(b), nil
	},
}

var yaml11OmapTag = &Tag{
	Tag:   OmapTag,
	Class: ClassMap,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveOmap(n)
	},
}

var yaml11PairsTag = &Tag{
	Tag:   PairsTag,
	Class: ClassSeq,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolvePairs(n)
	},
}

var yaml11SetTag = &Tag{
	Tag:   SetTag,
	Class: ClassMap,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveSet(n)
	},
}

var yaml11Tags = []*Tag{
	mapTag, seqTag, strTag,
	coreNullTag, yaml11TrueTag, yaml11FalseTag,
	yaml11Int("BIN", `^([-+]?)0b([0-1_]+)$`, 2, intStringifier(2, "0b")),
	yaml11Int("OCT", `^([-+]?)0([0-7_]+)$`, 8, intStringifier(8, "0")),
	yaml11Int("", `^([-+]?)([0-9][0-9_]*)$`, 10, stringifyNumber),
	yaml11Int("HEX", `^([-+]?)0x([0-9a-fA-F_]+)$`, 16, intStringifier(16, "0x")),
	coreNaNTag, yaml11ExpTag, yaml11FloatTag,
	yaml11BinaryTag, yaml11OmapTag, yaml11PairsTag, yaml11SetTag,
	yaml11IntTimeTag, yaml11FloatTimeTag, yaml11TimestampTag,
}

// parseSexagesimal evaluates base 60 digits separated by `:`.
func parseSexagesimal(sign, parts string) float64 {
	var n float64
	for _, p := range strings.Split(strings.ReplaceAll(parts, "_", ""), ":") {
		f, _ := strconv.ParseFloat(p, 64)
		n = n*60 + f
	}
	if sign == "-" {
		return -n
	}
	return n
}

var sexagesimalNoise = regexp.MustCompile(`000000\d*$`)

func stringifySexagesimal(s *Schema, n *Node) (string, error) {
	f, ok := asFloat64(n.Value)
	if !ok {
		return "", fmt.Errorf("yaml: cannot write %T as a number", n.Value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return stringifyNumber(s, n)
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	parts := []float64{math.Mod(f, 60)}
	if f < 60 {
		parts = append([]float64{0}, parts...)
	} else {
		f = math.Round((f - parts[0]) / 60)
		parts = append([]float64{math.Mod(f, 60)}, parts...)
		if f >= 60 {
			f = math.Round((f - parts[0]) / 60)
			parts = append([]float64{f}, parts...)
		}
	}
	strs := lo.Map(parts, func(p float64, _ int) string {
		if p < 10 {
			return "0" + formatNumber(p)
		}
		return formatNumber(p)
	})
	// Mod may leave float noise in the seconds.
	return sexagesimalNoise.ReplaceAllString(sign+strings.Join(strs, ":"), ""), nil
}

func resolveTimestamp(m []string) (any, error) {
	num := func(s string) int {
		i, _ := strconv.Atoi(s)
		return i
	}
	sec, _, _ := strings.Cut(m[6], ".")
	nsec := 0
	if m[7] != "" {
		nsec = num((m[7] + "00")[1:4]) * int(time.Millisecond)
	}
	t := time.Date(num(m[1]), time.Month(num(m[2])), num(m[3]), num(m[4]), num(m[5]), num(sec), nsec, time.UTC)
	if tz := m[8]; tz != "" && tz != "Z" {
		d := parseSexagesimal(tz[:1], tz[1:])
		if math.Abs(d) < 30 {
			d *= 60
		}
		t = t.Add(-time.Duration(d) * time.Minute)
	}
	return t, nil
}

var timestampZero = regexp.MustCompile(`(?:(?:T00:00)?:00)?\.000Z$`)

func stringifyTimestamp(_ *Schema, n *Node) (string, error) {
	t, ok := n.Value.(time.Time)
	if !ok {
		return "", fmt.Errorf("yaml: cannot write %T as a timestamp", n.Value)
	}
	return timestampZero.ReplaceAllString(t.UTC().Format("2006-01-02T15:04:05.000Z"), ""), nil
}

var base64Space = regexp.MustCompile(`[\n\r\t ]`)

func resolveBinary(doc *Document, n *cst.Node) (any, error) {
	str := base64Space.ReplaceAllString(doc.resolveString(n), "")
	b, err := doc.Schema.binary.DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid base64 in !!binary value")
	}
	return b, nil
}

func (d *Document) resolvePairs(n *cst.Node) (*Node, error) {
	seq, err := d.resolveSeq(n)
	if err != nil {
		return nil, err
	}
	for i, id := range seq.Items {
		if id != NoNode && d.nodes[id].Kind == MapNode {
			item := &d.nodes[id]
			switch len(item.Pairs) {
			case 0:
				item.Pairs = []Pair{{Key: NoNode, Value: NoNode}}
			case 1:
			default:
				return nil, cst.NewError(SemanticError, n, "Each pair must have its own sequence indicator")
			}
			continue
		}
		seq.Items[i] = d.add(Node{Kind: MapNode, Target: NoNode, Pairs: []Pair{{Key: id, Value: NoNode}}})
	}
	return seq, nil
}

func (d *Document) resolveOmap(n *cst.Node) (*Node, error) {
	pairs, err := d.resolvePairs(n)
	if err != nil {
		return nil, err
	}
	res := &Node{Kind: MapNode, Target: NoNode, Comment: pairs.Comment, CommentBefore: pairs.CommentBefore}
	var seen []any
	for _, id := range pairs.Items {
		p := d.nodes[id].Pairs[0]
		if p.Key != NoNode && d.nodes[p.Key].Kind == ScalarNode {
			key := d.nodes[p.Key].Value
			if lo.ContainsBy(seen, func(v any) bool { return reflect.DeepEqual(v, key) }) {
				return nil, cst.NewError(SemanticError, n, "Ordered maps must not include duplicate keys")
			}
			seen = append(seen, key)
		}
		res.Pairs = append(res.Pairs, p)
	}
	return res, nil
}

func (d *Document) resolveSet(n *cst.Node) (*Node, error) {
	m, err := d.resolveMap(n)
	if err != nil {
		return nil, err
	}
	for _, p := range m.Pairs {
		if p.Value == NoNode {
			continue
		}
		v := &d.nodes[p.Value]
		if v.Kind != ScalarNode || v.Value != nil || v.Tag != "" || v.Comment != "" || v.CommentBefore != "" {
			return nil, cst.NewError(SemanticError, n, "Set items must all have null values")
		}
	}
	return m, nil
}
