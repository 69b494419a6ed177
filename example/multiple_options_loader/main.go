// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"go.yaml.in/yamldoc"
)

func main() {
	fmt.Println("Example 9: Parsing with Multiple Options")
	fmt.Println("(OptsYAML + WithMerge)")

	// First test: unknown option should fail
	_, err := yamldoc.OptsYAML("verison: 1.1\n")
	if err != nil {
		fmt.Printf("✓ Got expected error (unknown option): %v\n\n", err)
	} else {
		fmt.Printf("Unexpected: no error for unknown option\n\n")
	}

	// Second test: options read from YAML, then overridden
	opts, err := yamldoc.OptsYAML(`
version: 1.1
merge: false
`)
	if err != nil {
		panic(err)
	}

	src := `base: &base {tier: web, port: 80}
site:
  <<: *base
  port: 8080
enabled: yes
`
	v, err := yamldoc.Parse(src, opts)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Without merge keys: %v\n", v)

	v, err = yamldoc.Parse(src, yamldoc.Options(opts, yamldoc.WithMerge(true)))
	if err != nil {
		panic(err)
	}
	fmt.Printf("With merge keys:    %v\n", v)
}
