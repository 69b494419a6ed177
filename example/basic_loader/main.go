// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Basic Loader demonstrates parsing YAML into plain Go values.

package main

import (
	"fmt"

	"go.yaml.in/yamldoc"
)

func main() {
	fmt.Println("Example 1: Basic Loader - Single Document")

	yamlData := `name: myapp
version: 1.0.0
replicas: 3
tags:
  - web
  - api
`

	v, err := yamldoc.Parse(yamlData)
	if err != nil {
		panic(err)
	}

	cfg := v.(map[string]any)
	fmt.Printf("Loaded: %v\n", cfg)
	fmt.Printf("replicas is a %T\n", cfg["replicas"])
}
