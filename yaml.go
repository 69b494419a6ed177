// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yamldoc parses YAML text into concrete syntax trees, resolved
// documents and plain Go values.
//
// A source text is first parsed into a CST that keeps every byte of the
// input, so that it re-emits the source exactly. Each CST document is then
// resolved against a schema into a Document: a graph of Scalar, Seq, Map
// and Alias nodes with their tags, anchors and comments. A Document finally
// converts to plain Go values.
//
// This file contains:
// - Type and constant re-exports from internal/document
// - Parse API (ParseCST, ParseDocument, ParseAllDocuments, Parse)

package yamldoc

import (
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"go.yaml.in/yamldoc/internal/cst"
	"go.yaml.in/yamldoc/internal/document"
)

//-----------------------------------------------------------------------------
// Type and constant re-exports
//-----------------------------------------------------------------------------

// Document model types
type (
	// Document is a resolved YAML document.
	Document = document.Document

	// Node is a node of a Document, addressed by its NodeID.
	Node = document.Node

	// NodeID addresses a Node inside its Document.
	NodeID = document.NodeID

	// Pair is a key and value entry of a Map node.
	Pair = document.Pair

	// Kind identifies the shape of a Node.
	Kind = document.Kind

	// Anchors is the registry of anchor names of a Document.
	Anchors = document.Anchors

	// TagPrefix is a %TAG handle and the prefix it expands to.
	TagPrefix = document.TagPrefix
)

// NoNode is the NodeID of a missing node.
const NoNode = document.NoNode

// Node kinds
const (
	ScalarNode = document.ScalarNode
	SeqNode    = document.SeqNode
	MapNode    = document.MapNode
	AliasNode  = document.AliasNode
	MergeNode  = document.MergeNode
)

// CST types
type (
	// Stream is a parsed source text and its CST documents.
	Stream = cst.Stream

	// CSTNode is a concrete syntax tree node.
	CSTNode = cst.Node
)

// Schema and tag types
type (
	// Schema is an ordered list of tags used to resolve nodes.
	Schema = document.Schema

	// Tag describes how the nodes of one tag are resolved and written.
	Tag = document.Tag

	// ValueClass is the kind of Go value a tag resolves to.
	ValueClass = document.ValueClass

	// BinaryCodec encodes and decodes !!binary values.
	BinaryCodec = document.BinaryCodec
)

// Error types
type (
	// Error is a diagnostic recorded while parsing or resolving a document.
	//
	// Its Error method reports the position of the diagnostic as
	// "yaml: line L, column C: message".
	Error = document.Error

	// ErrorKind classifies an Error.
	ErrorKind = document.ErrorKind
)

// Diagnostic kinds
const (
	SyntaxError    = document.SyntaxError
	SemanticError  = document.SemanticError
	ReferenceError = document.ReferenceError
	Warning        = document.Warning
)

// Construction errors, checked with errors.Is.
var (
	ErrInvalidAnchorName  = document.ErrInvalidAnchorName
	ErrNotAnchorable      = document.ErrNotAnchorable
	ErrInvalidMergeSource = document.ErrInvalidMergeSource
	ErrAliasTag           = document.ErrAliasTag
	ErrAliasCycle         = document.ErrAliasCycle
	ErrUnknownSchema      = document.ErrUnknownSchema
	ErrUnknownNode        = document.ErrUnknownNode
	ErrUnrepresentable    = document.ErrUnrepresentable
	ErrUnsupportedVersion = document.ErrUnsupportedVersion
)

// MergeKey is the key of merge pairs.
const MergeKey = document.MergeKey

//-----------------------------------------------------------------------------
// Parse API
//-----------------------------------------------------------------------------

// ParseCST parses src into its concrete syntax tree. It never fails:
// syntax errors are recorded on the nodes they concern.
//
// The stream's String method returns src byte for byte.
func ParseCST(src string) *Stream {
	return cst.Parse(src)
}

// ParseDocument resolves the first document of src.
//
// When src holds more than one document, an error saying so is recorded
// first among the document's Errors. The returned error is only for invalid
// options: problems with the source are recorded on the document.
func ParseDocument(src string, opts ...Option) (*Document, error) {
	s := cst.Parse(src)
	doc, err := document.Parse(s.Documents[0], opts...)
	if err != nil {
		return nil, errors.Wrap(err, "yamldoc: invalid options")
	}
	if len(s.Documents) > 1 {
		next := s.Documents[1]
		multi := cst.NewError(SemanticError, next, "Source contains multiple documents; please use ParseAllDocuments()")
		doc.Errors = append([]*Error{multi}, doc.Errors...)
	}
	return doc, nil
}

// ParseAllDocuments resolves every document of src, in order.
func ParseAllDocuments(src string, opts ...Option) ([]*Document, error) {
	docs, err := document.ParseAll(cst.Parse(src), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "yamldoc: invalid options")
	}
	return docs, nil
}

// NewDocument returns an empty document, to be filled with
// Document.SetContents or Document.CreateNode.
func NewDocument(opts ...Option) (*Document, error) {
	doc, err := document.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "yamldoc: invalid options")
	}
	return doc, nil
}

// Parse converts the single document of src to plain Go values.
//
// Warnings are logged at warn level to the logger set with WithLogger. The
// first error recorded on the document is returned, as an *Error.
func Parse(src string, opts ...Option) (any, error) {
	doc, err := ParseDocument(src, opts...)
	if err != nil {
		return nil, err
	}
	logger := doc.Options().Logger
	for _, w := range doc.Warnings {
		m := w.Mark()
		level.Warn(logger).Log("msg", w.Message, "line", m.Line, "column", m.Column+1)
	}
	if len(doc.Errors) > 0 {
		return nil, doc.Errors[0]
	}
	return doc.Value()
}
