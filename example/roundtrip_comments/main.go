// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"go.yaml.in/yamldoc"
)

func main() {
	fmt.Println("Example 8: Round-trip with Comments (CST + Document)")

	yamlWithComments := `# This is the app configuration
name: myapp  # Application name
version: 1.0.0

# List of tags
tags:
  - web
  - api
`

	// The CST keeps every byte of the source
	stream := yamldoc.ParseCST(yamlWithComments)
	fmt.Printf("Re-emitted source is identical: %t\n\n", stream.String() == yamlWithComments)

	// The document keeps comments next to the nodes they belong to
	doc, err := yamldoc.ParseDocument(yamlWithComments)
	if err != nil {
		panic(err)
	}
	if err := doc.Err(); err != nil {
		panic(err)
	}

	root := doc.Node(doc.Contents)
	for _, p := range root.Pairs {
		key, _ := doc.Stringify(p.Key)
		if p.CommentBefore != "" {
			fmt.Printf("before %s: %q\n", key, p.CommentBefore)
		}
		if p.Value != yamldoc.NoNode {
			if c := doc.Node(p.Value).Comment; c != "" {
				fmt.Printf("after %s: %q\n", key, c)
			}
		}
	}
}
