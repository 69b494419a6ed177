// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"go.yaml.in/yamldoc"
)

func newRoundTripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Check that the CST re-emits the input byte for byte",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			s := yamldoc.ParseCST(src)
			if out := s.String(); out != src {
				fmt.Fprintln(cmd.OutOrStdout(), roundTripDiff(src, out))
				return errors.New("re-emitted source differs from the input")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bytes, %d document(s)\n", len(src), len(s.Documents))
			return nil
		},
	}
}

// roundTripDiff shows where the re-emitted text strays from the input.
func roundTripDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
