// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// CST tree output for the yamldoc tool.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"go.yaml.in/yamldoc"
	"go.yaml.in/yamldoc/internal/cst"
)

func newCSTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cst [file]",
		Short: "Print the concrete syntax tree",
		Long: `Print the concrete syntax tree of the input.

Each node is shown with its kind, its value or indicator, its properties, and
the [start,end) byte range it covers. Syntax errors found while parsing are
shown on the node they concern.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), FormatCST(yamldoc.ParseCST(src)))
			return nil
		},
	}
}

// FormatCST renders a stream as a tree, one line per node.
func FormatCST(s *yamldoc.Stream) string {
	tree := treeprint.NewWithRoot("STREAM")
	for _, doc := range s.Documents {
		addCSTNode(tree, doc)
	}
	return tree.String()
}

func addCSTNode(tree treeprint.Tree, n *cst.Node) {
	var children []*cst.Node
	children = append(children, n.Directives...)
	children = append(children, n.Contents...)
	children = append(children, n.Items...)
	if n.Node != nil {
		children = append(children, n.Node)
	}
	if len(children) == 0 {
		tree.AddNode(cstLabel(n))
		return
	}
	branch := tree.AddBranch(cstLabel(n))
	for _, child := range children {
		addCSTNode(branch, child)
	}
}

// cstLabel describes a single node, without its children.
func cstLabel(n *cst.Node) string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	switch {
	case n.Kind.IsScalar(), n.Kind == cst.AliasNode:
		fmt.Fprintf(&b, " %q", n.Raw())
	case n.Kind == cst.FlowCharNode:
		fmt.Fprintf(&b, " %q", string(n.Char()))
	case n.Kind == cst.DirectiveNode:
		fmt.Fprintf(&b, " %%%s", n.Name)
	case n.Kind == cst.CommentNode:
		if comment, ok := n.Comment(); ok {
			fmt.Fprintf(&b, " %q", comment)
		}
	}
	if anchor, ok := n.Anchor(); ok {
		fmt.Fprintf(&b, " &%s", anchor)
	}
	if tag, ok := n.Tag(); ok {
		if tag.Verbatim != "" {
			fmt.Fprintf(&b, " !<%s>", tag.Verbatim)
		} else {
			fmt.Fprintf(&b, " %s%s", tag.Handle, tag.Suffix)
		}
	}
	if n.Kind != cst.CommentNode {
		if comment, ok := n.Comment(); ok {
			fmt.Fprintf(&b, " comment=%q", comment)
		}
	}
	fmt.Fprintf(&b, " [%d,%d)", n.Range.Start, n.Range.End)
	if n.Error != nil {
		fmt.Fprintf(&b, " error=%q", n.Error.Message)
	}
	return b.String()
}
