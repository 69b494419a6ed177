// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.yaml.in/yamldoc"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "List the errors and warnings of every document",
		Long: `List the errors and warnings recorded while resolving every document of
the input, errors first. The command fails when any error is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			docs, err := yamldoc.ParseAllDocuments(src, c.opts...)
			if err != nil {
				return err
			}
			errs, warnings := writeDiagnostics(cmd.OutOrStdout(), docs)
			if errs > 0 {
				return errors.Errorf("found %d error(s) and %d warning(s)", errs, warnings)
			}
			if warnings == 0 {
				okColor.Fprintf(cmd.OutOrStdout(), "ok: %d document(s)\n", len(docs))
			}
			return nil
		},
	}
}

// writeDiagnostics writes one line per diagnostic and returns their counts.
func writeDiagnostics(w io.Writer, docs []*yamldoc.Document) (errs, warnings int) {
	for i, doc := range docs {
		for _, e := range doc.Errors {
			fmt.Fprintf(w, "%s document %d: %s\n", errorColor.Sprint(e.Kind), i+1, e)
			errs++
		}
		for _, e := range doc.Warnings {
			fmt.Fprintf(w, "%s document %d: %s\n", warningColor.Sprint(e.Kind), i+1, e)
			warnings++
		}
	}
	return errs, warnings
}
