// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"go.yaml.in/yamldoc"
)

// optionSpec defines metadata for an option
type optionSpec struct {
	typ     string // "bool", "string", "preset"
	handler func(value string) ([]yamldoc.Option, error)
}

func versionPreset(v string) optionSpec {
	return optionSpec{typ: "preset", handler: func(string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithVersion(v)}, nil
	}}
}

// optionRegistry maps option names (including short aliases) to their specs
var optionRegistry = map[string]optionSpec{
	// Version presets
	"v1.0": versionPreset("1.0"),
	"v1.1": versionPreset("1.1"),
	"v1.2": versionPreset("1.2"),

	"version": {typ: "string", handler: func(value string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithVersion(value)}, nil
	}},
	"schema": {typ: "string", handler: func(value string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithSchema(value)}, nil
	}},
	"merge": {typ: "bool", handler: func(value string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithMerge(value == "true")}, nil
	}},
	"anchor-prefix": {typ: "string", handler: func(value string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithAnchorPrefix(value)}, nil
	}},
	"prefix": {typ: "string", handler: func(value string) ([]yamldoc.Option, error) {
		return []yamldoc.Option{yamldoc.WithAnchorPrefix(value)}, nil
	}},
}

const availableOptions = `Available options for -o/--option:

Version presets:
  v1.0, v1.1, v1.2      Assume this YAML version [default: v1.2]

Resolution options:
  version=VER           YAML version: 1.0, 1.1 or 1.2
  schema=NAME           Schema: core, failsafe, json or yaml-1.1
  merge                 Enable << merge keys
  anchor-prefix=NAME    Prefix of generated anchor names (short: prefix)

Boolean options: use 'name' for true, 'no-name' for false
Multiple options: comma-separated or repeat -o flag

Examples:
  yamldoc parse -o v1.1,no-merge
  yamldoc check -o schema=json
`

// errHelp is returned for `-o help`; its message lists the options.
var errHelp = errors.New(availableOptions)

// parseOneOption parses a single option (name=value, name, no-name, or a
// version preset)
func parseOneOption(s string) ([]yamldoc.Option, error) {
	// Special case: help
	if s == "help" || s == "?" {
		return nil, errHelp
	}

	// Check for "no-" prefix for boolean false
	if name, found := strings.CutPrefix(s, "no-"); found && name != "" {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, unknownOption(name)
		}
		if spec.typ != "bool" {
			return nil, errors.Errorf("option %s is not boolean, cannot use no- prefix", name)
		}
		return spec.handler("false")
	}

	// Check for "name=value" format
	if name, value, found := strings.Cut(s, "="); found {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, unknownOption(name)
		}
		if spec.typ == "preset" {
			return nil, errors.Errorf("option %s does not take a value", name)
		}
		if spec.typ == "bool" && value != "true" && value != "false" {
			return nil, errors.Errorf("option %s requires true or false value", name)
		}
		return spec.handler(value)
	}

	// Must be "name" alone (boolean true)
	spec, ok := optionRegistry[s]
	if !ok {
		return nil, unknownOption(s)
	}
	if spec.typ == "string" {
		return nil, errors.Errorf("option %s requires a value (use %s=value)", s, s)
	}
	return spec.handler("true")
}

// parseOptionFlags parses comma-separated options string into individual options
func parseOptionFlags(s string) ([]yamldoc.Option, error) {
	var opts []yamldoc.Option
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		opt, err := parseOneOption(trimmed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt...)
	}
	return opts, nil
}

func unknownOption(name string) error {
	names := make([]string, 0, len(optionRegistry))
	for name := range optionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return errors.Errorf("unknown option: %s (use one of %s)", name, strings.Join(names, ", "))
}

// buildOptions creates the yamldoc.Option slice based on config file and -o
// flags. The combined options are checked once so that invalid values fail
// before any input is read.
func buildOptions(configFile string, optionFlags []string) ([]yamldoc.Option, error) {
	var opts []yamldoc.Option

	// Load config file if specified
	if configFile != "" {
		configData, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		configOpts, err := yamldoc.OptsYAML(string(configData))
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
		opts = append(opts, configOpts)
	}

	// Process -o flags (can override config)
	for _, optStr := range optionFlags {
		parsedOpts, err := parseOptionFlags(optStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parsedOpts...)
	}

	if _, err := yamldoc.NewDocument(opts...); err != nil {
		return nil, err
	}
	return opts, nil
}
