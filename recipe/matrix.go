// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"maps"
	"slices"
	"strings"
)

// Matrix is a settings × options combination space.
type Matrix struct {
	Require map[string][]string
	Options map[string][]string
}

// MatrixOf returns the single-point matrix of s and v.
func MatrixOf(s Settings, v Values) Matrix {
	m := Matrix{Require: map[string][]string{}, Options: map[string][]string{}}
	for _, pair := range s.Pairs() {
		k, val, _ := strings.Cut(pair, "=")
		m.Require[k] = []string{val}
	}
	for _, name := range v.Names() {
		m.Options[name] = []string{v.m[name]}
	}
	return m
}

// cartesian expands kvs layer by layer over alphabetically sorted keys.
func cartesian(kvs map[string][]string) []map[string]string {
	if len(kvs) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(kvs))
	result := []map[string]string{{}}
	for _, k := range keys {
		next := make([]map[string]string, 0, len(result)*len(kvs[k]))
		for _, prev := range result {
			for _, v := range kvs[k] {
				combo := maps.Clone(prev)
				combo[k] = v
				next = append(next, combo)
			}
		}
		result = next
	}
	return result
}

func joinCombo(combo map[string]string) string {
	keys := slices.Sorted(maps.Keys(combo))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = combo[k]
	}
	return strings.Join(parts, "-")
}

// Combinations returns every combination as a string. Values of one part
// are joined with "-" in key order; require and options parts are joined
// with "|".
func (m *Matrix) Combinations() []string {
	requires := cartesian(m.Require)
	options := cartesian(m.Options)

	if len(requires) == 0 {
		return joinAll(options)
	}
	if len(options) == 0 {
		return joinAll(requires)
	}
	result := make([]string, 0, len(requires)*len(options))
	for _, req := range requires {
		for _, opt := range options {
			result = append(result, joinCombo(req)+"|"+joinCombo(opt))
		}
	}
	return result
}

// OptionCombinations returns every combination of the options part.
func (m *Matrix) OptionCombinations() []map[string]string {
	return cartesian(m.Options)
}

// CombinationCount returns the number of combinations.
func (m *Matrix) CombinationCount() int {
	count := func(kvs map[string][]string) int {
		if len(kvs) == 0 {
			return 0
		}
		n := 1
		for _, v := range kvs {
			n *= len(v)
		}
		return n
	}
	requires, options := count(m.Require), count(m.Options)
	switch {
	case requires == 0:
		return options
	case options == 0:
		return requires
	}
	return requires * options
}

// String returns the first combination, used as a stable key for
// single-point matrices.
func (m *Matrix) String() string {
	if combos := m.Combinations(); len(combos) > 0 {
		return combos[0]
	}
	return ""
}

func joinAll(combos []map[string]string) []string {
	if len(combos) == 0 {
		return nil
	}
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = joinCombo(c)
	}
	return out
}
