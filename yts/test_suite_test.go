// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yts runs the YAML test suite against the parser and resolver.
package yts

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"

	"go.yaml.in/yamldoc"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var knownFailingTests = loadKnownFailingTests()

func loadKnownFailingTests() map[string]bool {
	fileContent, err := os.ReadFile("known-failing-tests")
	if err != nil {
		return make(map[string]bool)
	}

	lines := strings.Split(string(fileContent), "\n")
	knownTests := make(map[string]bool)
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine != "" {
			knownTests[trimmedLine] = true
		}
	}
	return knownTests
}

func shouldSkipTest(t *testing.T) {
	if os.Getenv("RUNALL") == "1" {
		return
	}
	name := t.Name()
	runFailing := os.Getenv("RUNFAILING") == "1"
	isKnownFailing := knownFailingTests[name]

	switch {
	case runFailing && !isKnownFailing:
		t.Skipf("Skipping non-failing test: %s", name)
	case !runFailing && isKnownFailing:
		t.Skipf("Skipping known failing test: %s", name)
	}
}

func TestYAMLSuite(t *testing.T) {
	testDir := "./testdata/data-2022-01-17"
	if _, err := os.Stat(testDir + "/229Q"); os.IsNotExist(err) {
		t.Skipf(`YTS tests require data files to be present at '%s'.
Check out the data branch of github.com/yaml/yaml-test-suite there to run them.`, testDir)
	}
	runTestsInDir(t, testDir)
}

func runTestsInDir(t *testing.T, dirPath string) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dirPath, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dirPath, entry.Name())
		if entry.IsDir() {
			// Check if it's a test case directory (contains in.yaml)
			if _, err := os.Stat(filepath.Join(entryPath, "in.yaml")); err == nil {
				t.Run(entry.Name(), func(t *testing.T) {
					runTest(t, entryPath)
				})
			} else {
				// Otherwise, recurse into the subdirectory
				runTestsInDir(t, entryPath)
			}
		}
	}
}

func mustRead(t *testing.T, path, name string) []byte {
	data, err := os.ReadFile(filepath.Join(path, name))
	if err != nil {
		t.Fatalf("Failed to read %s (%s): %v", name, path, err)
	}
	return data
}

func fileExists(path, name string) bool {
	_, err := os.Stat(filepath.Join(path, name))
	return err == nil
}

// decodeJSONStream reads the concatenated JSON values of an in.json file.
func decodeJSONStream(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var values []any
	for {
		var v any
		err := dec.Decode(&v)
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// normalize converts v to the values it reads back as from JSON.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(b, &out)
	return out, err
}

func runTest(t *testing.T, testPath string) {
	t.Helper()

	// Read test description
	testDescription := mustRead(t, testPath, "===")

	t.Logf("Running test: %s\nDescription: %s", testPath, testDescription)

	inYAML := string(mustRead(t, testPath, "in.yaml"))
	expectError := fileExists(testPath, "error")

	t.Run("RoundTripTest", func(t *testing.T) {
		shouldSkipTest(t)
		if got := yamldoc.ParseCST(inYAML).String(); got != inYAML {
			t.Errorf(
				"Test: %s\nDescription: %s\nError: CST does not re-emit its source\nExpected:\n%q\nGot:\n%q",
				testPath, testDescription, inYAML, got)
		}
	})

	docs, err := yamldoc.ParseAllDocuments(inYAML)
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", testPath, err)
	}

	t.Run("ErrorTest", func(t *testing.T) {
		shouldSkipTest(t)
		var errs []*yamldoc.Error
		for _, doc := range docs {
			errs = append(errs, doc.Errors...)
		}

		if expectError {
			if len(errs) == 0 {
				t.Errorf(
					"Test: %s\nDescription: %s\nError: Expected a document error but got none",
					testPath, testDescription)
			}
			return
		}
		if len(errs) > 0 {
			t.Errorf(
				"Test: %s\nDescription: %s\nError: Unexpected document error: %v",
				testPath, testDescription, errs[0])
		}
	})

	t.Run("JSONComparisonTest", func(t *testing.T) {
		shouldSkipTest(t)

		// Nothing to test if parsing is expected to error
		if expectError || !fileExists(testPath, "in.json") {
			return
		}
		want, err := decodeJSONStream(mustRead(t, testPath, "in.json"))
		if err != nil {
			t.Fatalf(
				"Test: %s\nDescription: %s\nError: Failed to decode in.json: %v",
				testPath, testDescription, err)
		}

		var values []any
		for _, doc := range docs {
			if doc.Contents == yamldoc.NoNode && len(docs) > len(want) {
				continue
			}
			v, err := doc.Value()
			if err != nil {
				t.Fatalf("Test: %s\nDescription: %s\nError: Failed to convert document: %v",
					testPath, testDescription, err)
			}
			values = append(values, v)
		}
		got, err := normalize(values)
		if err != nil {
			t.Fatalf("Test: %s\nDescription: %s\nError: %v", testPath, testDescription, err)
		}
		wantNormal, _ := normalize(want)
		if diff := cmp.Diff(wantNormal, got); diff != "" {
			t.Errorf(
				"Test: %s\nDescription: %s\nError: Document values differ from in.json (-want +got):\n%s",
				testPath, testDescription, diff)
		}
	})
}
