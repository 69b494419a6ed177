// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.yaml.in/yamldoc"
)

func TestInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: [1, 2]\n"), 0o644))

	stdout, _, err := run(t, "ignored", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"k\":[1,2]}\n", stdout)

	stdout, _, err = run(t, "a: b\n", "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":\"b\"}\n", stdout)

	_, _, err = run(t, "", "parse", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")

	_, _, err = run(t, "", "parse", path, path)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("version: 1.1\nmerge: false\n"), 0o644))

	src := "a: on\nb: &b {x: 1}\nc: {<<: *b}\n"
	stdout, _, err := run(t, src, "parse", "--config", config)
	require.NoError(t, err)
	assert.Equal(t, `{"a":true,"b":{"x":1},"c":{"<<":{"x":1}}}`+"\n", stdout)

	// -o flags override the config file.
	stdout, _, err = run(t, src, "parse", "-C", config, "-o", "merge")
	require.NoError(t, err)
	assert.Equal(t, `{"a":true,"b":{"x":1},"c":{"x":1}}`+"\n", stdout)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("indent: 2\n"), 0o644))
	_, _, err = run(t, src, "parse", "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
	assert.Contains(t, err.Error(), "option indent not found")

	_, _, err = run(t, src, "parse", "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestParseOneOption(t *testing.T) {
	tests := []struct {
		option  string
		count   int
		wantErr string
	}{
		{option: "v1.1", count: 1},
		{option: "merge", count: 1},
		{option: "no-merge", count: 1},
		{option: "merge=false", count: 1},
		{option: "schema=json", count: 1},
		{option: "prefix=ref", count: 1},
		{option: "merge=maybe", wantErr: "option merge requires true or false value"},
		{option: "no-schema", wantErr: "option schema is not boolean, cannot use no- prefix"},
		{option: "v1.1=yes", wantErr: "option v1.1 does not take a value"},
		{option: "no-bogus", wantErr: "unknown option: bogus"},
		{option: "?", wantErr: "Available options"},
	}
	for _, tt := range tests {
		t.Run(tt.option, func(t *testing.T) {
			opts, err := parseOneOption(tt.option)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, tt.count)
		})
	}
}

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions("", []string{"v1.1, schema=failsafe", "prefix=ref"})
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	doc, err := yamldoc.NewDocument(opts...)
	require.NoError(t, err)
	assert.Equal(t, "failsafe", doc.Schema.Name)
	assert.True(t, doc.Schema.Merge)

	_, err = buildOptions("", []string{"schema=yaml-9"})
	require.ErrorIs(t, err, yamldoc.ErrUnknownSchema)
}

func TestFormatCST(t *testing.T) {
	out := FormatCST(yamldoc.ParseCST("%YAML 1.2\n---\n- a\n- 'b'\n"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "STREAM", lines[0])
	assert.Contains(t, out, "DIRECTIVE %YAML")
	assert.Contains(t, out, "SEQ")
	assert.Contains(t, out, "SEQ_ITEM")
	assert.Contains(t, out, `PLAIN "a"`)
	assert.Contains(t, out, `QUOTE_SINGLE "'b'"`)

	out = FormatCST(yamldoc.ParseCST("'open"))
	assert.Contains(t, out, `error="Missing closing 'quote"`)
}

func TestRoundTripDiff(t *testing.T) {
	diff := roundTripDiff("a: 1\n", "a: 2\n")
	assert.Contains(t, diff, "a: ")
	assert.Contains(t, diff, "1")
	assert.Contains(t, diff, "2")
	assert.Equal(t, "same", roundTripDiff("same", "same"))
}

func TestWriteJSON(t *testing.T) {
	v := map[string]any{"b": map[string]any{"<<": []any{int64(1), "<x>"}}, "a": nil}

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, v, false))
	assert.Equal(t, `{"a":null,"b":{"<<":[1,"<x>"]}}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, writeJSON(&buf, v, true))
	assert.Equal(t, `{
  "a": null,
  "b": {
    "<<": [
      1,
      "<x>"
    ]
  }
}
`, buf.String())
}

func TestNewLogger(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error", "none"} {
		logger, err := newLogger(os.Stderr, name)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
	_, err := newLogger(os.Stderr, "verbose")
	require.Error(t, err)
}
