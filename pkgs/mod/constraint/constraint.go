// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint parses and evaluates version constraints of
// requirement references: exact versions ("2.2.2") and bracketed ranges
// ("[>=3.22 <4]", "[~3.3]", "[^1.2]").
package constraint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goplus/recipes/pkgs/gnu"
	"golang.org/x/mod/semver"
)

type op int

const (
	opEQ op = iota
	opGT
	opGE
	opLT
	opLE
)

type clause struct {
	op  op
	ver string
}

// Constraint is a parsed version constraint.
type Constraint struct {
	raw     string
	clauses []clause
}

// Parse parses s. A string not enclosed in brackets is an exact version.
func Parse(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Constraint{}, fmt.Errorf("empty version constraint")
	}
	if !strings.HasPrefix(s, "[") {
		if strings.ContainsAny(s, "[]<>~^ ") {
			return Constraint{}, fmt.Errorf("invalid version %q", s)
		}
		return Constraint{raw: s, clauses: []clause{{op: opEQ, ver: s}}}, nil
	}
	if !strings.HasSuffix(s, "]") {
		return Constraint{}, fmt.Errorf("invalid version range %q: missing ']'", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	fields := strings.FieldsFunc(body, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return Constraint{}, fmt.Errorf("invalid version range %q: empty", s)
	}
	c := Constraint{raw: s}
	for _, f := range fields {
		cl, err := parseClause(f)
		if err != nil {
			return Constraint{}, fmt.Errorf("invalid version range %q: %w", s, err)
		}
		c.clauses = append(c.clauses, cl...)
	}
	return c, nil
}

func parseClause(f string) ([]clause, error) {
	switch {
	case strings.HasPrefix(f, ">="):
		return one(opGE, f[2:])
	case strings.HasPrefix(f, "<="):
		return one(opLE, f[2:])
	case strings.HasPrefix(f, ">"):
		return one(opGT, f[1:])
	case strings.HasPrefix(f, "<"):
		return one(opLT, f[1:])
	case strings.HasPrefix(f, "="):
		return one(opEQ, f[1:])
	case strings.HasPrefix(f, "~"):
		return bounded(f[1:], tildeUpper)
	case strings.HasPrefix(f, "^"):
		return bounded(f[1:], caretUpper)
	}
	return one(opEQ, f)
}

func one(o op, ver string) ([]clause, error) {
	if ver == "" {
		return nil, fmt.Errorf("missing version after operator")
	}
	return []clause{{op: o, ver: ver}}, nil
}

func bounded(ver string, upper func([]int) []int) ([]clause, error) {
	nums, err := numbers(ver)
	if err != nil {
		return nil, err
	}
	return []clause{{op: opGE, ver: ver}, {op: opLT, ver: joinNumbers(upper(nums))}}, nil
}

// tildeUpper bumps the second-to-last component: ~3.3 allows <3.4, ~3 <4.
func tildeUpper(nums []int) []int {
	n := min(len(nums)-1, 1)
	out := append([]int(nil), nums[:n+1]...)
	out[n]++
	return out
}

// caretUpper bumps the first non-zero component.
func caretUpper(nums []int) []int {
	for i, v := range nums {
		if v != 0 || i == len(nums)-1 {
			out := append([]int(nil), nums[:i+1]...)
			out[i]++
			return out
		}
	}
	return nums
}

func numbers(ver string) ([]int, error) {
	parts := strings.Split(ver, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("version %q is not numeric", ver)
		}
		nums[i] = n
	}
	return nums, nil
}

func joinNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// IsRange reports whether the constraint is a bracketed range.
func (c Constraint) IsRange() bool {
	return strings.HasPrefix(c.raw, "[")
}

// String returns the constraint as written.
func (c Constraint) String() string { return c.raw }

// Allows reports whether version satisfies every clause.
func (c Constraint) Allows(version string) bool {
	if len(c.clauses) == 0 {
		return false
	}
	for _, cl := range c.clauses {
		d := Compare(version, cl.ver)
		var ok bool
		switch cl.op {
		case opEQ:
			ok = d == 0
		case opGT:
			ok = d > 0
		case opGE:
			ok = d >= 0
		case opLT:
			ok = d < 0
		case opLE:
			ok = d <= 0
		}
		if !ok {
			return false
		}
	}
	return true
}

// Compare compares two versions. Versions that are valid semantic versions
// once prefixed with "v" use semver ordering, others GNU version ordering.
func Compare(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	switch d := gnu.Compare(a, b); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
