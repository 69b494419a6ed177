// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"go.yaml.in/yamldoc"
)

func newTagsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tags [file]",
		Short: "List the tags of the resolved nodes",
		Long: `List the tags set on the resolved nodes of every document, once each, in
the order they are first found. Untagged plain scalars have no tag.`,
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
			var names []string
			for _, doc := range docs {
				logWarnings(c.logger, doc)
				names = append(names, doc.ListTagNames(doc.Contents)...)
			}
			for _, name := range lo.Uniq(names) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
