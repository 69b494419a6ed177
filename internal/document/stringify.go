// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"go.yaml.in/yamldoc/internal/cst"
)

// quoteJSON writes strings as double quoted scalars. JSON string syntax is a
// subset of YAML's double quoted style.
var quoteJSON = jsoniter.Config{EscapeHTML: false}.Froze()

func stringifyNull(*Schema, *Node) (string, error) {
	return "null", nil
}

func stringifyBool(_ *Schema, n *Node) (string, error) {
	b, ok := n.Value.(bool)
	if !ok {
		return "", fmt.Errorf("yaml: cannot write %T as a bool", n.Value)
	}
	return strconv.FormatBool(b), nil
}

// asInt64 returns the value of an integer scalar.
func asInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	}
	return 0, false
}

// asFloat64 returns the value of any numeric scalar.
func asFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// formatNumber writes a number the shortest way that reads back as the same
// value, switching to exponent notation outside [1e-6, 1e21).
func formatNumber(v any) string {
	switch v := v.(type) {
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	f, _ := asFloat64(v)
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
}

// trimExponent drops leading zeros from the exponent of s: 1e+06 is 1e+6.
func trimExponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || exp == "" {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}

func stringifyNumber(_ *Schema, n *Node) (string, error) {
	if _, ok := asFloat64(n.Value); !ok {
		return "", fmt.Errorf("yaml: cannot write %T as a number", n.Value)
	}
	str := formatNumber(n.Value)
	if n.Format == "" && n.MinFractionDigits > 0 && (n.Tag == "" || LongTag(n.Tag) == FloatTag) &&
		str[0] >= '0' && str[0] <= '9' {
		i := strings.IndexByte(str, '.')
		if i < 0 {
			i = len(str)
			str += "."
		}
		if d := n.MinFractionDigits - (len(str) - i - 1); d > 0 {
			str += strings.Repeat("0", d)
		}
	}
	return str, nil
}

// intStringifier writes integers in radix, after prefix.
func intStringifier(radix int, prefix string) func(*Schema, *Node) (string, error) {
	return func(s *Schema, n *Node) (string, error) {
		i, ok := asInt64(n.Value)
		if !ok {
			return stringifyNumber(s, n)
		}
		if i < 0 {
			u := uint64(-(i + 1)) + 1
			return "-" + prefix + strconv.FormatUint(u, radix), nil
		}
		return prefix + strconv.FormatInt(i, radix), nil
	}
}

func stringifyExp(s *Schema, n *Node) (string, error) {
	f, ok := asFloat64(n.Value)
	if !ok {
		return "", fmt.Errorf("yaml: cannot write %T as a number", n.Value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return stringifyNumber(s, n)
	}
	return trimExponent(strconv.FormatFloat(f, 'e', -1, 64)), nil
}

var (
	plainUnsafeStart = regexp.MustCompile("^(?:[-?:](?:[ \t]|$)|[,\\[\\]{}#&*!|>'\"%@`])")
	plainUnsafe      = regexp.MustCompile(`[\x00-\x1f\x7f]|: |:$| #|^[ \t]|[ \t]$`)
)

// stringifyString writes a string plain if it reads back as the same string,
// and double quoted otherwise.
func stringifyString(s *Schema, n *Node) (string, error) {
	str, ok := n.Value.(string)
	if !ok {
		str = fmt.Sprint(n.Value)
	}
	if plainSafe(s, str) {
		return str, nil
	}
	b, err := quoteJSON.Marshal(str)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func plainSafe(s *Schema, str string) bool {
	if str == "" || plainUnsafeStart.MatchString(str) || plainUnsafe.MatchString(str) {
		return false
	}
	if cst.AtDocumentBoundary(str, 0, 0) {
		return false
	}
	res, err := s.ResolveScalar(str, nil)
	if err != nil {
		return false
	}
	v, ok := res.Value.(string)
	return ok && v == str
}
