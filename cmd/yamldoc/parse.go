// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// JSON output for the yamldoc tool.

package main

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"io"

	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.yaml.in/yamldoc"
)

// Keys such as << are written as they are.
var json = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

func newParseCmd(c *cli) *cobra.Command {
	var (
		all    bool
		pretty bool
		schema string
		merge  bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Resolve the input and print it as JSON",
		Long: `Resolve the input and print its value as JSON.

Only the first document is read unless --all is given; each document is then
printed on its own line. The command fails with the first error recorded on a
document. Warnings are logged to stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts := c.opts
			if cmd.Flags().Changed("schema") {
				opts = append(opts, yamldoc.WithSchema(schema))
			}
			if cmd.Flags().Changed("merge") {
				opts = append(opts, yamldoc.WithMerge(merge))
			}

			if !all {
				v, err := yamldoc.Parse(src, opts...)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), v, pretty)
			}

			docs, err := yamldoc.ParseAllDocuments(src, opts...)
			if err != nil {
				return err
			}
			level.Debug(c.logger).Log("msg", "parsed stream", "documents", len(docs))
			for i, doc := range docs {
				logWarnings(c.logger, doc)
				if len(doc.Errors) > 0 {
					return errors.Wrapf(doc.Errors[0], "document %d", i+1)
				}
				v, err := doc.Value()
				if err != nil {
					return errors.Wrapf(err, "document %d", i+1)
				}
				if err := writeJSON(cmd.OutOrStdout(), v, pretty); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Read every document of the input")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the JSON output")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema: core, failsafe, json or yaml-1.1")
	cmd.Flags().BoolVar(&merge, "merge", false, "Enable << merge keys")
	return cmd
}

// writeJSON writes v as one JSON value followed by a newline.
func writeJSON(w io.Writer, v any, pretty bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	if pretty {
		var buf bytes.Buffer
		if err := stdjson.Indent(&buf, data, "", "  "); err != nil {
			return errors.Wrap(err, "failed to indent JSON")
		}
		data = buf.Bytes()
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
