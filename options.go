// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import (
	"sort"

	"github.com/pkg/errors"

	"go.yaml.in/yamldoc/internal/document"
)

//-----------------------------------------------------------------------------
// Options
//-----------------------------------------------------------------------------

// Option configures how documents are parsed and created.
type Option = document.Option

// Option configuration functions
var (
	// WithVersion sets the YAML version assumed for documents without a
	// %YAML directive: "1.0", "1.1" or "1.2" (the default).
	//
	// The version selects the default schema and merge key setting: YAML
	// 1.2 uses the core schema without merge keys, YAML 1.0 and 1.1 use
	// the yaml-1.1 schema with merge keys.
	WithVersion = document.WithVersion

	// WithSchema selects the base schema: "core", "failsafe", "json" or
	// "yaml-1.1".
	WithSchema = document.WithSchema

	// WithMerge enables or disables `<<` merge keys.
	WithMerge = document.WithMerge

	// WithTags adds custom tags after the schema's own.
	WithTags = document.WithTags

	// WithTagsFunc sets a function that receives the schema's tag list and
	// returns the one to use.
	WithTagsFunc = document.WithTagsFunc

	// WithAnchorPrefix sets the prefix of generated anchor names. The
	// default prefix "a" generates a1, a2 and so on.
	WithAnchorPrefix = document.WithAnchorPrefix

	// WithBinaryCodec sets the codec for !!binary values. The default is
	// padded standard base64.
	WithBinaryCodec = document.WithBinaryCodec

	// WithLogger sets the go-kit logger that Parse logs warnings to.
	WithLogger = document.WithLogger
)

// Options combines multiple options into a single Option. Options are
// applied in order, so later options override earlier ones.
//
// Example:
//
//	opts := yamldoc.Options(yamldoc.WithVersion("1.1"), yamldoc.WithMerge(false))
//	v, err := yamldoc.Parse(src, opts)
func Options(opts ...Option) Option {
	return document.CombineOptions(opts...)
}

// optionSetters maps the fields accepted by OptsYAML to their options.
var optionSetters = map[string]func(value string) (Option, error){
	"version":       func(v string) (Option, error) { return WithVersion(v), nil },
	"schema":        func(v string) (Option, error) { return WithSchema(v), nil },
	"anchor-prefix": func(v string) (Option, error) { return WithAnchorPrefix(v), nil },
	"merge": func(v string) (Option, error) {
		switch v {
		case "true":
			return WithMerge(true), nil
		case "false":
			return WithMerge(false), nil
		}
		return nil, errors.Errorf("yamldoc: merge must be true or false, not %q", v)
	},
}

// OptsYAML parses a YAML mapping of option settings and returns an Option
// that can be combined with other options using Options(). The text is
// read with this package, using the failsafe schema.
//
// The YAML string can specify any of these fields:
// - version (string: 1.0, 1.1, 1.2)
// - schema (string: core, failsafe, json, yaml-1.1)
// - merge (bool)
// - anchor-prefix (string)
//
// Only fields specified in the YAML will override other options when
// combined. Unknown fields are an error.
//
// Example:
//
//	opts, err := yamldoc.OptsYAML(`
//	  version: 1.1
//	  merge: false
//	`)
//	v, err := yamldoc.Parse(src, opts)
func OptsYAML(yamlStr string) (Option, error) {
	doc, err := ParseDocument(yamlStr, WithSchema("failsafe"))
	if err != nil {
		return nil, err
	}
	if err := doc.Err(); err != nil {
		return nil, errors.Wrap(err, "yamldoc: cannot read options")
	}
	v, err := doc.Value()
	if err != nil {
		return nil, errors.Wrap(err, "yamldoc: cannot read options")
	}
	if v == nil {
		return Options(), nil
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("yamldoc: options must be a mapping")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	// Build options only for fields that were set
	var optList []Option
	for _, name := range names {
		set, ok := optionSetters[name]
		if !ok {
			return nil, errors.Errorf("yamldoc: option %s not found", name)
		}
		value, ok := fields[name].(string)
		if !ok {
			return nil, errors.Errorf("yamldoc: option %s must be a scalar", name)
		}
		opt, err := set(value)
		if err != nil {
			return nil, err
		}
		optList = append(optList, opt)
	}
	opt := Options(optList...)
	if _, err := document.ApplyOptions(opt); err != nil {
		return nil, errors.Wrap(err, "yamldoc: invalid options")
	}
	return opt, nil
}
