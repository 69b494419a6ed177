// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"

	"go.yaml.in/yamldoc"
)

func main() {
	fmt.Println("=== Building Document Nodes Programmatically ===")

	doc, err := yamldoc.NewDocument(yamldoc.WithMerge(true), yamldoc.WithAnchorPrefix("env"))
	if err != nil {
		log.Fatal(err)
	}

	// Build the shared defaults and one environment per map
	defaults, err := doc.CreateNode(map[string]any{
		"database": "dev.db",
		"debug":    true,
	})
	if err != nil {
		log.Fatal(err)
	}
	production, err := doc.CreateNode(map[string]any{
		"database": "prod.db",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Production merges the defaults and overrides the database
	merge, err := doc.CreateMergePair(defaults)
	if err != nil {
		log.Fatal(err)
	}
	if err := doc.AppendPair(production, merge); err != nil {
		log.Fatal(err)
	}

	root, err := doc.CreateNode(map[string]any{
		"development": defaults,
		"production":  production,
	})
	if err != nil {
		log.Fatal(err)
	}
	doc.Contents = root

	for _, p := range doc.Node(production).Pairs {
		key, _ := doc.Stringify(p.Key)
		value, _ := doc.Stringify(p.Value)
		fmt.Printf("production pair %s: %s\n", key, value)
	}

	// We can also convert it to plain values
	result, err := doc.Value()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Converted: %+v\n", result)
}
