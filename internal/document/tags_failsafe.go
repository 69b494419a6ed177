// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import "go.yaml.in/yamldoc/internal/cst"

var mapTag = &Tag{
	Tag:     MapTag,
	Class:   ClassMap,
	Default: true,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveMap(n)
	},
}

var seqTag = &Tag{
	Tag:     SeqTag,
	Class:   ClassSeq,
	Default: true,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveSeq(n)
	},
}

var strTag = &Tag{
	Tag:     StrTag,
	Class:   ClassString,
	Default: true,
	ResolveNode: func(doc *Document, n *cst.Node) (any, error) {
		return doc.resolveString(n), nil
	},
	Stringify: stringifyString,
}

var failsafeTags = []*Tag{mapTag, seqTag, strTag}
