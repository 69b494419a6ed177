// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"go.yaml.in/yamldoc"
)

func main() {
	src := `switch: on
mode: 0644
when: 2001-12-14
size: 1_000
`

	fmt.Println("Example: Comparing YAML 1.1 and 1.2 schemas")

	for _, opts := range []struct {
		name string
		opt  yamldoc.Option
	}{
		{"yamldoc.WithVersion(\"1.2\") - core schema", yamldoc.WithVersion("1.2")},
		{"yamldoc.WithVersion(\"1.1\") - yaml-1.1 schema", yamldoc.WithVersion("1.1")},
		{"yamldoc.WithSchema(\"failsafe\") - strings only", yamldoc.WithSchema("failsafe")},
	} {
		fmt.Printf("=== %s ===\n", opts.name)
		v, err := yamldoc.Parse(src, opts.opt)
		if err != nil {
			panic(err)
		}
		for _, key := range []string{"switch", "mode", "when", "size"} {
			value := v.(map[string]any)[key]
			fmt.Printf("%-6s %T %v\n", key+":", value, value)
		}
	}

	fmt.Println("\nNotice how:")
	fmt.Println("- YAML 1.1 reads on as a bool and 0644 as an octal int")
	fmt.Println("- YAML 1.2 reads 0644 as decimal and keeps the other 1.1 forms as strings")
	fmt.Println("- A %YAML directive in the source overrides WithVersion")
}
