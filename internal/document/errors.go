// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"

	"go.uber.org/multierr"

	"go.yaml.in/yamldoc/internal/cst"
)

// Error is a diagnostic recorded on a Document.
type Error = cst.Error

// ErrorKind classifies a diagnostic.
type ErrorKind = cst.ErrorKind

// Diagnostic kinds.
const (
	SyntaxError    = cst.SyntaxError
	SemanticError  = cst.SemanticError
	ReferenceError = cst.ReferenceError
	Warning        = cst.Warning
)

// Construction errors. They are returned by the API that builds or edits a
// document and are never recorded among its diagnostics.
var (
	ErrInvalidAnchorName  = errors.New("yaml: anchor names must not contain whitespace or control characters")
	ErrNotAnchorable      = errors.New("yaml: anchors may only be set for Scalar, Seq and Map nodes")
	ErrInvalidMergeSource = errors.New("yaml: merge sources must be Map nodes or their Aliases")
	ErrAliasTag           = errors.New("yaml: alias nodes cannot have tags")
	ErrAliasCycle         = errors.New("yaml: alias cycle")
	ErrUnknownSchema      = errors.New(`yaml: unknown schema; use "core", "failsafe", "json", "yaml-1.1", or a tag list`)
	ErrUnknownNode        = errors.New("yaml: unknown node")
	ErrUnrepresentable    = errors.New("yaml: value has no matching tag")
)

// addError records a diagnostic once.
func (d *Document) addError(err *Error) {
	if err == nil || d.recorded[err] {
		return
	}
	if d.recorded == nil {
		d.recorded = make(map[*Error]bool)
	}
	d.recorded[err] = true
	if err.Kind == Warning {
		d.Warnings = append(d.Warnings, err)
	} else {
		d.Errors = append(d.Errors, err)
	}
}

func (d *Document) semantic(n *cst.Node, msg string) {
	d.addError(cst.NewError(SemanticError, n, msg))
}

func (d *Document) syntax(n *cst.Node, msg string) {
	d.addError(cst.NewError(SyntaxError, n, msg))
}

// annotate turns an error returned by a tag resolver into a diagnostic
// reported on n.
func annotate(err error, n *cst.Node) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Source == nil {
			e.Source = n
		}
		return e
	}
	return &Error{Kind: SemanticError, Message: err.Error(), Source: n, Offset: -1, Err: err}
}

// Err returns the errors recorded on the document combined into one, or nil.
func (d *Document) Err() error {
	var err error
	for _, e := range d.Errors {
		err = multierr.Append(err, e)
	}
	return err
}
