// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var coreNullTag = &Tag{
	Tag:       NullTag,
	Class:     ClassNull,
	Default:   true,
	Test:      regexp.MustCompile(`^(?:~|[Nn]ull|NULL)?$`),
	Resolve:   func([]string) (any, error) { return nil, nil },
	Stringify: stringifyNull,
}

var coreBoolTag = &Tag{
	Tag:     BoolTag,
	Class:   ClassBool,
	Default: true,
	Test:    regexp.MustCompile(`^(?:[Tt]rue|TRUE|[Ff]alse|FALSE)$`),
	Resolve: func(m []string) (any, error) {
		return m[0][0] == 't' || m[0][0] == 'T', nil
	},
	Stringify: stringifyBool,
}

var coreOctTag = &Tag{
	Tag:     IntTag,
	Class:   ClassInt,
	Default: true,
	Format:  "OCT",
	Test:    regexp.MustCompile(`^0o([0-7]+)$`),
	Resolve: func(m []string) (any, error) {
		return parseInt("", m[1], 8), nil
	},
	Stringify: intStringifier(8, "0o"),
}

var coreIntTag = &Tag{
	Tag:     IntTag,
	Class:   ClassInt,
	Default: true,
	Test:    regexp.MustCompile(`^([-+]?)([0-9]+)$`),
	Resolve: func(m []string) (any, error) {
		return parseInt(m[1], m[2], 10), nil
	},
	Stringify: stringifyNumber,
}

var coreHexTag = &Tag{
	Tag:     IntTag,
	Class:   ClassInt,
	Default: true,
	Format:  "HEX",
	Test:    regexp.MustCompile(`^0x([0-9a-fA-F]+)$`),
	Resolve: func(m []string) (any, error) {
		return parseInt("", m[1], 16), nil
	},
	Stringify: intStringifier(16, "0x"),
}

var coreNaNTag = &Tag{
	Tag:       FloatTag,
	Class:     ClassFloat,
	Default:   true,
	Test:      regexp.MustCompile(`(?i)^(?:[-+]?\.inf|(\.nan))$`),
	Resolve:   resolveNaN,
	Stringify: stringifyNumber,
}

var coreExpTag = &Tag{
	Tag:     FloatTag,
	Class:   ClassFloat,
	Default: true,
	Format:  "EXP",
	Test:    regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)(\.[0-9]*)?[eE][-+]?[0-9]+$`),
	Resolve: func(m []string) (any, error) {
		return parseFloat(m[0]), nil
	},
	Stringify: stringifyExp,
}

var coreFloatTag = &Tag{
	Tag:       FloatTag,
	Class:     ClassFloat,
	Default:   true,
	Test:      regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)\.([0-9]*)$`),
	Resolve:   resolveFixed,
	Stringify: stringifyNumber,
}

var coreTags = []*Tag{
	mapTag, seqTag, strTag,
	coreNullTag, coreBoolTag,
	coreOctTag, coreIntTag, coreHexTag,
	coreNaNTag, coreExpTag, coreFloatTag,
}

func resolveNaN(m []string) (any, error) {
	switch {
	case len(m) > 1 && m[1] != "":
		return math.NaN(), nil
	case m[0][0] == '-':
		return math.Inf(-1), nil
	}
	return math.Inf(1), nil
}

// resolveFixed resolves a fixed point float. A fraction written with
// trailing zeros is kept as the number of digits to write it back with.
func resolveFixed(m []string) (any, error) {
	res := &Node{Kind: ScalarNode, Value: parseFloat(m[0])}
	frac := strings.ReplaceAll(m[1], "_", "")
	if frac != "" && frac[len(frac)-1] == '0' {
		res.MinFractionDigits = len(frac)
	}
	return res, nil
}

// parseInt parses digits in base, ignoring `_` separators. Values beyond
// the int64 range resolve to the nearest float64.
func parseInt(sign, digits string, base int) any {
	digits = strings.ReplaceAll(digits, "_", "")
	neg := sign == "-"
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		switch {
		case !neg && u <= math.MaxInt64:
			return int64(u)
		case neg && u <= math.MaxInt64:
			return -int64(u)
		case neg && u == 1<<63:
			return int64(math.MinInt64)
		}
	}
	b, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return int64(0)
	}
	f, _ := new(big.Float).SetInt(b).Float64()
	if neg {
		f = -f
	}
	return f
}

func parseFloat(str string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(str, "_", ""), 64)
	if err != nil {
		// Out of range values come back as ±Inf along with the error.
		return f
	}
	return f
}
