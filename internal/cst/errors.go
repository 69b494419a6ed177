// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package cst

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a diagnostic.
type ErrorKind int8

// Diagnostic kinds.
const (
	// SyntaxError reports text that cannot be structured.
	SyntaxError ErrorKind = iota + 1
	// SemanticError reports valid structure with invalid meaning.
	SemanticError
	// ReferenceError reports an unknown anchor or tag.
	ReferenceError
	// Warning reports a recoverable condition, such as a tag fallback.
	Warning
)

func (k ErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case ReferenceError:
		return "reference error"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("ErrorKind(%d)", int8(k))
}

// Error is a diagnostic attached to a node.
//
// Parsing never stops on an Error: it is recorded on the node, or on the
// document being resolved, and the next construct is parsed.
type Error struct {
	Kind    ErrorKind
	Message string
	// Source is the node the diagnostic is reported on, if any.
	Source *Node
	// Offset is the position inside the source text the diagnostic points
	// at, or -1 for the start of Source.
	Offset int
	// Err is the error this diagnostic wraps, if any.
	Err error
}

// NewError returns a diagnostic reported on node.
func NewError(kind ErrorKind, node *Node, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Source: node, Offset: -1}
}

// Errorf is NewError with a formatted message.
func Errorf(kind ErrorKind, node *Node, format string, args ...any) *Error {
	return NewError(kind, node, fmt.Sprintf(format, args...))
}

// Mark returns the position of the diagnostic. It is the zero Mark when the
// diagnostic has no source node.
func (e *Error) Mark() Mark {
	if e.Source == nil || e.Source.Source() == nil {
		return Mark{}
	}
	offset := e.Source.Range.Start
	if e.Offset >= 0 {
		offset = e.Offset
	}
	return e.Source.Source().Mark(offset)
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if m := e.Mark(); m.Line != 0 {
		fmt.Fprintf(&builder, "%s: ", m)
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	builder.WriteString(msg)
	return builder.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
