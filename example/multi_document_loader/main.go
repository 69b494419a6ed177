// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Multi-Document Loader demonstrates resolving every document of a
// stream.

package main

import (
	"fmt"

	"go.yaml.in/yamldoc"
)

func main() {
	fmt.Println("Example 2: Multi-Document Loader")

	multiDoc := `---
name: app1
version: 1.0.0
---
name: app2
version: 2.0.0
tags:
  - experimental
---
name: app3
version: 3.0.0
`

	docs, err := yamldoc.ParseAllDocuments(multiDoc)
	if err != nil {
		panic(err)
	}

	for i, doc := range docs {
		if err := doc.Err(); err != nil {
			panic(err)
		}
		v, err := doc.Value()
		if err != nil {
			panic(err)
		}
		fmt.Printf("Document %d: %v\n", i+1, v)
	}

	// ParseDocument reads only the first document and says so.
	doc, err := yamldoc.ParseDocument(multiDoc)
	if err != nil {
		panic(err)
	}
	fmt.Printf("ParseDocument: %v\n", doc.Err())
}
