// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package datatest runs data-driven tests described in YAML files.
//
// A test file is a sequence of cases. A case is either a map with a "type"
// field, or a map with a single key naming its type:
//
//	[{resolve: {name: plain int, yaml: "42", want: 42}}]
package datatest

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// LoadYAMLFunc parses YAML test data into plain values. It is supplied by
// the package under test, which may not want to load its test data with
// itself.
type LoadYAMLFunc func([]byte) (any, error)

// LoadTestCasesFromFile reads the cases of a test file.
func LoadTestCasesFromFile(filename string, loadYAML LoadYAMLFunc) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	raw, err := loadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a sequence of test cases, got %T", filename, raw)
	}
	cases := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: test case %d is a %T", filename, i, item)
		}
		cases = append(cases, NormalizeTypeAsKey(m))
	}
	return cases, nil
}

// NormalizeTypeAsKey turns {"some-type": {...}} into {"type": "some-type", ...}.
// Other maps are returned as they are.
func NormalizeTypeAsKey(m map[string]any) map[string]any {
	if len(m) != 1 {
		return m
	}
	for key, value := range m {
		sub, ok := value.(map[string]any)
		if !ok || key == "type" || !IsTypeConstant(key) {
			return m
		}
		out := make(map[string]any, len(sub)+1)
		for k, v := range sub {
			out[k] = v
		}
		out["type"] = key
		return out
	}
	return m
}

// IsTypeConstant reports whether s looks like a test type:
// lower-case-with-hyphens or UPPER_WITH_UNDERSCORES.
func IsTypeConstant(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	}) < 0
}

// UnmarshalStruct fills the fields of the struct target points to from the
// entries of data, matching field `yaml` tags. Unknown entries are ignored.
func UnmarshalStruct(target any, data map[string]any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to a struct, got %T", target)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := data[name]
		if !ok {
			continue
		}
		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	if field.CanAddr() {
		if c, ok := field.Addr().Interface().(interface{ FromValue(any) error }); ok {
			return c.FromValue(value)
		}
	}
	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(field.Type()):
		field.Set(rv)
		return nil
	case field.Kind() == reflect.Slice:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected a sequence, got %T", value)
		}
		s := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := setField(s.Index(i), item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		field.Set(s)
		return nil
	case field.Kind() == reflect.Pointer:
		p := reflect.New(field.Type().Elem())
		if err := setField(p.Elem(), value); err != nil {
			return err
		}
		field.Set(p)
		return nil
	case field.Kind() == reflect.Struct:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("expected a mapping, got %T", value)
		}
		return UnmarshalStruct(field.Addr().Interface(), m)
	case rv.CanConvert(field.Type()) && rv.Kind() != reflect.String && field.Kind() != reflect.String:
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot set %v from %T", field.Type(), value)
}

// StringSlice accepts a single string or a sequence of strings.
type StringSlice []string

// FromValue implements the converter used by UnmarshalStruct.
func (s *StringSlice) FromValue(v any) error {
	switch v := v.(type) {
	case string:
		*s = StringSlice{v}
	case []any:
		out := make(StringSlice, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("item %d: expected a string, got %T", i, item)
			}
			out = append(out, str)
		}
		*s = out
	default:
		return fmt.Errorf("expected a string or a sequence, got %T", v)
	}
	return nil
}
