// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ParamType is the JSON type of a tool argument.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeBoolean ParamType = "boolean"
	TypeInteger ParamType = "integer"
	TypeArray   ParamType = "array"
)

// ParamSpec describes one tool argument. Arrays hold strings.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
}

// Args are bound tool arguments: every declared argument is present, with
// its default when the caller left it out, and has its declared Go type
// (string, bool, int64 or []string).
type Args map[string]any

// String returns a string argument.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns a boolean argument.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Int returns an integer argument.
func (a Args) Int(name string) int64 {
	n, _ := a[name].(int64)
	return n
}

// Strings returns an array argument.
func (a Args) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// bind checks raw against specs and returns typed arguments.
func bind(specs []ParamSpec, raw map[string]any) (Args, error) {
	known := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		known[s.Name] = struct{}{}
	}
	var unknown []string
	for name := range raw {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown argument(s): %s", strings.Join(unknown, ", "))
	}

	args := make(Args, len(specs))
	for _, s := range specs {
		v, present := raw[s.Name]
		if !present || v == nil {
			if s.Required {
				return nil, fmt.Errorf("missing required argument %q", s.Name)
			}
			args[s.Name] = zeroOrDefault(s)
			continue
		}
		coerced, err := coerce(s.Type, v)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s.Name, err)
		}
		args[s.Name] = coerced
	}
	return args, nil
}

func zeroOrDefault(s ParamSpec) any {
	if s.Default != nil {
		if v, err := coerce(s.Type, s.Default); err == nil {
			return v
		}
	}
	switch s.Type {
	case TypeBoolean:
		return false
	case TypeInteger:
		return int64(0)
	case TypeArray:
		return []string(nil)
	default:
		return ""
	}
}

func coerce(t ParamType, v any) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != math.Trunc(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("expected an integer, got %v", n)
			}
			if n < math.MinInt64 || n >= math.MaxInt64 {
				return nil, fmt.Errorf("integer %v out of range", n)
			}
			return int64(n), nil
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
			return nil, fmt.Errorf("expected an integer, got %s", n)
		}
	case TypeArray:
		switch items := v.(type) {
		case []string:
			return items, nil
		case []any:
			out := make([]string, 0, len(items))
			for i, item := range items {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("element %d: expected string, got %T", i, item)
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			// A bare string is a one-element list.
			return []string{items}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported argument type %q", t)
	}
	return nil, fmt.Errorf("expected %s, got %T", t, v)
}
