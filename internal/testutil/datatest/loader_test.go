// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package datatest

import (
	"testing"

	"go.yaml.in/yamldoc/internal/testutil/assert"
)

func TestNormalizeTypeAsKey(t *testing.T) {
	got := NormalizeTypeAsKey(map[string]any{
		"resolve": map[string]any{"name": "x", "yaml": "1"},
	})
	assert.DeepEqual(t, map[string]any{"type": "resolve", "name": "x", "yaml": "1"}, got)

	plain := map[string]any{"type": "resolve", "name": "y"}
	assert.DeepEqual(t, plain, NormalizeTypeAsKey(plain))

	notType := map[string]any{"has space": map[string]any{}}
	assert.DeepEqual(t, notType, NormalizeTypeAsKey(notType))
}

func TestIsTypeConstant(t *testing.T) {
	assert.True(t, IsTypeConstant("resolve-error"))
	assert.True(t, IsTypeConstant("SCALAR_TOKEN"))
	assert.False(t, IsTypeConstant(""))
	assert.False(t, IsTypeConstant("a b"))
}

func TestUnmarshalStruct(t *testing.T) {
	type sample struct {
		Name   string      `yaml:"name"`
		Count  int         `yaml:"count"`
		Merge  *bool       `yaml:"merge"`
		Errors StringSlice `yaml:"errors"`
		Want   any         `yaml:"want"`
		Tags   []string    `yaml:"tags"`
	}
	var s sample
	err := UnmarshalStruct(&s, map[string]any{
		"name":   "case",
		"count":  3,
		"merge":  true,
		"errors": "boom",
		"want":   map[string]any{"a": 1},
		"tags":   []any{"!!int", "!!str"},
		"other":  "ignored",
	})
	assert.NoError(t, err)
	assert.Equal(t, "case", s.Name)
	assert.Equal(t, 3, s.Count)
	assert.NotNil(t, s.Merge)
	assert.True(t, *s.Merge)
	assert.DeepEqual(t, StringSlice{"boom"}, s.Errors)
	assert.DeepEqual(t, map[string]any{"a": 1}, s.Want)
	assert.DeepEqual(t, []string{"!!int", "!!str"}, s.Tags)

	err = UnmarshalStruct(&s, map[string]any{"count": "three"})
	assert.ErrorMatches(t, `^field count: cannot set int from string$`, err)

	assert.ErrorMatches(t, `pointer to a struct`, UnmarshalStruct(s, nil))
}
