// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"regexp"

	"go.yaml.in/yamldoc/internal/cst"
)

// stringifyJSON writes a scalar as JSON text.
func stringifyJSON(_ *Schema, n *Node) (string, error) {
	b, err := quoteJSON.Marshal(n.Value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var jsonStrTag = &Tag{
	Tag:     StrTag,
	Class:   ClassString,
	Default: true,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveString(n), nil
	},
	Stringify: stringifyJSON,
}

var jsonTags = []*Tag{
	mapTag, seqTag, jsonStrTag,
	{
		Tag:       NullTag,
		Class:     ClassNull,
		Test:      regexp.MustCompile(`^null$`),
		Resolve:   func([]string) (any, error) { return nil, nil },
		Stringify: stringifyJSON,
	},
	{
		Tag:   BoolTag,
		Class: ClassBool,
		Test:  regexp.MustCompile(`^(?:true|false)$`),
		Resolve: func(m []string) (any, error) {
			return m[0] == "true", nil
		},
		Stringify: stringifyJSON,
	},
	{
		Tag:   IntTag,
		Class: ClassInt,
		Test:  regexp.MustCompile(`^(-?)((?:0|[1-9][0-9]*))$`),
		Resolve: func(m []string) (any, error) {
			return parseInt(m[1], m[2], 10), nil
		},
		Stringify: stringifyNumber,
	},
	{
		Tag:   FloatTag,
		Class: ClassFloat,
		Test:  regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?$`),
		Resolve: func(m []string) (any, error) {
			return parseFloat(m[0]), nil
		},
		Stringify: stringifyNumber,
	},
}

// jsonFallback rejects plain scalars that are not JSON values.
func jsonFallback(str string) (any, error) {
	b, _ := quoteJSON.Marshal(str)
	return nil, cst.Errorf(SyntaxError, nil, "Unresolved plain scalar %s", b)
}
