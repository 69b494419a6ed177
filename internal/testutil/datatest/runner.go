// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package datatest

import "testing"

// TestHandler runs one test case.
type TestHandler func(t *testing.T, tc map[string]any)

// RunTestCases loads the cases with loadFunc and runs each one as a
// subtest, with the handler registered for its type.
func RunTestCases(t *testing.T, loadFunc func() ([]map[string]any, error), handlers map[string]TestHandler) {
	t.Helper()
	cases, err := loadFunc()
	if err != nil {
		t.Fatalf("Failed to load test cases: %v", err)
	}
	for _, tc := range cases {
		name, _ := GetString(tc, "name")
		if name == "" {
			name = "unnamed"
		}
		testType, _ := GetString(tc, "type")
		handler, ok := handlers[testType]
		t.Run(name, func(t *testing.T) {
			if !ok {
				t.Fatalf("Unknown test type %q", testType)
			}
			handler(t, tc)
		})
	}
}

// GetString returns a string entry of a test case.
func GetString(tc map[string]any, key string) (string, bool) {
	s, ok := tc[key].(string)
	return s, ok
}
