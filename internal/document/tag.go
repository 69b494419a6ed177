// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yamldoc/internal/cst"
)

// Well-known tags, in long form.
const (
	DefaultTagPrefix = "tag:yaml.org,2002:"

	MapTag       = DefaultTagPrefix + "map"
	SeqTag       = DefaultTagPrefix + "seq"
	StrTag       = DefaultTagPrefix + "str"
	NullTag      = DefaultTagPrefix + "null"
	BoolTag      = DefaultTagPrefix + "bool"
	IntTag       = DefaultTagPrefix + "int"
	FloatTag     = DefaultTagPrefix + "float"
	TimestampTag = DefaultTagPrefix + "timestamp"
	BinaryTag    = DefaultTagPrefix + "binary"
	OmapTag      = DefaultTagPrefix + "omap"
	PairsTag     = DefaultTagPrefix + "pairs"
	SetTag       = DefaultTagPrefix + "set"
)

// ShortTag abbreviates tags under the default prefix to their `!!` form.
func ShortTag(tag string) string {
	if strings.HasPrefix(tag, DefaultTagPrefix) {
		return "!!" + tag[len(DefaultTagPrefix):]
	}
	return tag
}

// LongTag expands a `!!` tag to its full form.
func LongTag(tag string) string {
	if strings.HasPrefix(tag, "!!") {
		return DefaultTagPrefix + tag[2:]
	}
	return tag
}

// ValueClass is the kind of value a tag represents.
type ValueClass uint8

// Value classes. A Tag with ClassNone is never chosen for a value by its
// class alone.
const (
	ClassNone ValueClass = iota
	ClassNull
	ClassBool
	ClassInt
	ClassFloat
	ClassString
	ClassBytes
	ClassTime
	ClassMap
	ClassSeq
)

func (c ValueClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassNull:
		return "null"
	case ClassBool:
		return "bool"
	case ClassInt:
		return "int"
	case ClassFloat:
		return "float"
	case ClassString:
		return "string"
	case ClassBytes:
		return "bytes"
	case ClassTime:
		return "time"
	case ClassMap:
		return "map"
	case ClassSeq:
		return "seq"
	}
	return fmt.Sprintf("ValueClass(%d)", uint8(c))
}

// classOf returns the class of a scalar value or node kind.
func classOf(n *Node) ValueClass {
	switch n.Kind {
	case MapNode:
		return ClassMap
	case SeqNode:
		return ClassSeq
	}
	switch n.Value.(type) {
	case nil:
		return ClassNull
	case bool:
		return ClassBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ClassInt
	case float32, float64:
		return ClassFloat
	case string:
		return ClassString
	case []byte:
		return ClassBytes
	case time.Time:
		return ClassTime
	}
	return ClassNone
}

// Tag describes how one tag is resolved and stringified.
//
// A Tag with a Test is a scalar tag: a plain scalar matching Test resolves
// to the value Resolve returns for the match. A Tag without a Test is
// generic: ResolveNode is given the CST node, whatever its shape.
type Tag struct {
	// Tag is the full tag name.
	Tag    string
	Class  ValueClass
	Format string
	// Default is set for tags that need not be written out explicitly.
	Default bool

	Test    *regexp.Regexp
	Resolve func(match []string) (any, error)

	ResolveNode func(doc *Document, n *cst.Node) (any, error)

	// Stringify writes a scalar value; nil means JSON text.
	Stringify func(s *Schema, n *Node) (string, error)
}

// BinaryCodec converts between bytes and base64 text.
// encoding/base64.StdEncoding implements it.
type BinaryCodec interface {
	EncodeToString(src []byte) string
	DecodeString(s string) ([]byte, error)
}
