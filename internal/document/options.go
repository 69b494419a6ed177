// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// DefaultVersion is the YAML version documents are parsed as when neither
// the options nor a %YAML directive set one.
const DefaultVersion = "1.2"

// versionDefault holds the settings a YAML version implies.
type versionDefault struct {
	schema   string
	merge    bool
	prefixes []TagPrefix
}

var versionDefaults = map[string]versionDefault{
	"1.0": {
		schema: "yaml-1.1",
		merge:  true,
		prefixes: []TagPrefix{
			{Handle: "!", Prefix: DefaultTagPrefix},
			{Handle: "!!", Prefix: "tag:private.yaml.org,2002:"},
		},
	},
	"1.1": {
		schema: "yaml-1.1",
		merge:  true,
		prefixes: []TagPrefix{
			{Handle: "!", Prefix: "!"},
			{Handle: "!!", Prefix: DefaultTagPrefix},
		},
	},
	"1.2": {
		schema: "core",
		prefixes: []TagPrefix{
			{Handle: "!", Prefix: "!"},
			{Handle: "!!", Prefix: DefaultTagPrefix},
		},
	},
}

// ErrUnsupportedVersion is returned for a YAML version other than 1.0, 1.1
// or 1.2.
var ErrUnsupportedVersion = errors.New("yaml: unsupported YAML version")

// Options holds the configuration of a Document.
type Options struct {
	// Version is the YAML version assumed without a %YAML directive.
	Version string
	// Schema names the base schema. Empty selects the version's default.
	Schema string
	// Merge enables merge keys. nil selects the version's default.
	Merge    *bool
	Tags     []*Tag
	TagsFunc func(tags []*Tag) []*Tag
	// AnchorPrefix is the prefix of generated anchor names.
	AnchorPrefix string
	Binary       BinaryCodec
	// Logger receives the warnings of documents parsed by the root
	// package's Parse.
	Logger log.Logger
}

// Option configures Options. It fails for invalid settings.
type Option func(*Options) error

// WithVersion sets the YAML version: "1.0", "1.1" or "1.2".
func WithVersion(version string) Option {
	return func(o *Options) error {
		if _, ok := versionDefaults[version]; !ok {
			return errors.Wrapf(ErrUnsupportedVersion, "version %q", version)
		}
		o.Version = version
		return nil
	}
}

// WithSchema selects the base schema by name.
func WithSchema(name string) Option {
	return func(o *Options) error {
		if _, ok := availableSchemas[name]; !ok {
			return errors.Wrapf(ErrUnknownSchema, "schema %q", name)
		}
		o.Schema = name
		return nil
	}
}

// WithMerge enables or disables `<<` merge keys.
func WithMerge(enable bool) Option {
	return func(o *Options) error {
		o.Merge = &enable
		return nil
	}
}

// WithTags adds tags to the schema, after its own.
func WithTags(tags ...*Tag) Option {
	return func(o *Options) error {
		for _, t := range tags {
			if t == nil || t.Tag == "" {
				return errors.New("yaml: custom tags need a tag name")
			}
			if t.Test != nil && t.Resolve == nil {
				return errors.Errorf("yaml: tag %s has a test but no resolver", t.Tag)
			}
		}
		o.Tags = append(o.Tags, tags...)
		return nil
	}
}

// WithTagsFunc sets a function that edits the schema's tag list.
func WithTagsFunc(f func(tags []*Tag) []*Tag) Option {
	return func(o *Options) error {
		o.TagsFunc = f
		return nil
	}
}

// WithAnchorPrefix sets the prefix of generated anchor names.
func WithAnchorPrefix(prefix string) Option {
	return func(o *Options) error {
		if prefix == "" || invalidAnchorChars.MatchString(prefix) {
			return errors.Wrapf(ErrInvalidAnchorName, "anchor prefix %q", prefix)
		}
		o.AnchorPrefix = prefix
		return nil
	}
}

// WithBinaryCodec sets the codec used for !!binary values.
func WithBinaryCodec(codec BinaryCodec) Option {
	return func(o *Options) error {
		if codec == nil {
			return errors.New("yaml: nil binary codec")
		}
		o.Binary = codec
		return nil
	}
}

// WithLogger sets the logger that receives document warnings.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		o.Logger = logger
		return nil
	}
}

// CombineOptions returns an Option applying opts in order.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// ApplyOptions returns the default Options with opts applied.
func ApplyOptions(opts ...Option) (*Options, error) {
	o := &Options{
		Version:      DefaultVersion,
		AnchorPrefix: DefaultAnchorPrefix,
		Logger:       log.NewNopLogger(),
	}
	if err := CombineOptions(opts...)(o); err != nil {
		return nil, err
	}
	return o, nil
}
