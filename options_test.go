// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yamldoc_test

import (
	"strings"
	"testing"

	"go.yaml.in/yamldoc"
	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func TestOptsYAML(t *testing.T) {
	tests := []struct {
		name      string
		yamlStr   string
		expectErr bool
		errMatch  string
	}{
		{
			name:      "valid options",
			yamlStr:   "version: 1.1\nmerge: false",
			expectErr: false,
		},
		{
			name:      "empty",
			yamlStr:   "",
			expectErr: false,
		},
		{
			name:      "typo in field name",
			yamlStr:   "vresion: 1.1",
			expectErr: true,
			errMatch:  "option vresion not found",
		},
		{
			name:      "multiple options with one typo",
			yamlStr:   "schema: core\nmrege: true",
			expectErr: true,
			errMatch:  "option mrege not found",
		},
		{
			name:      "invalid bool",
			yamlStr:   "merge: maybe",
			expectErr: true,
			errMatch:  `merge must be true or false, not "maybe"`,
		},
		{
			name:      "unsupported version",
			yamlStr:   "version: 2.0",
			expectErr: true,
			errMatch:  "unsupported YAML version",
		},
		{
			name:      "unknown schema",
			yamlStr:   "schema: yaml-1.3",
			expectErr: true,
			errMatch:  "unknown schema",
		},
		{
			name:      "not a mapping",
			yamlStr:   "[version]",
			expectErr: true,
			errMatch:  "options must be a mapping",
		},
		{
			name:      "not a scalar",
			yamlStr:   "schema: [core]",
			expectErr: true,
			errMatch:  "option schema must be a scalar",
		},
		{
			name:      "invalid yaml",
			yamlStr:   "version: 1.1\nversion: 1.2",
			expectErr: true,
			errMatch:  "cannot read options",
		},
		{
			name: "all valid options",
			yamlStr: `
version: "1.1"
schema: yaml-1.1
merge: true
anchor-prefix: ref
`,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := yamldoc.OptsYAML(tt.yamlStr)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errMatch != "" && !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("expected error to contain %q, got: %v", tt.errMatch, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if opt == nil {
					t.Fatal("expected non-nil option")
				}
			}
		})
	}
}

func TestOptsYAMLApplies(t *testing.T) {
	opt, err := yamldoc.OptsYAML("version: 1.1\nmerge: false\n")
	assert.NoError(t, err)

	doc, err := yamldoc.ParseDocument("a: yes\nb: {<<: {x: 1}}\n", opt)
	assert.NoError(t, err)
	assert.Equal(t, "yaml-1.1", doc.Schema.Name)
	assert.False(t, doc.Schema.Merge)
	v, err := doc.Value()
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{
		"a": true,
		"b": map[string]any{"<<": map[string]any{"x": int64(1)}},
	}, v)

	// Later options override the ones read from YAML.
	doc, err = yamldoc.ParseDocument("a", yamldoc.Options(opt, yamldoc.WithMerge(true)))
	assert.NoError(t, err)
	assert.True(t, doc.Schema.Merge)

	opt, err = yamldoc.OptsYAML("anchor-prefix: ref")
	assert.NoError(t, err)
	doc, err = yamldoc.NewDocument(opt)
	assert.NoError(t, err)
	id, err := doc.CreateNode("x")
	assert.NoError(t, err)
	name, err := doc.Anchors.SetAnchor(id, "")
	assert.NoError(t, err)
	assert.Equal(t, "ref1", name)
}
