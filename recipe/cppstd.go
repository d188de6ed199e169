// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"fmt"
	"strings"

	"github.com/goplus/recipes/pkgs/gnu"
)

// stdYear maps a C++ standard level ("14", "gnu17", "98") to a comparable
// year. It returns 0 for unknown levels.
func stdYear(std string) int {
	switch strings.TrimPrefix(std, "gnu") {
	case "98":
		return 1998
	case "11":
		return 2011
	case "14":
		return 2014
	case "17":
		return 2017
	case "20":
		return 2020
	case "23":
		return 2023
	case "26":
		return 2026
	}
	return 0
}

// DefaultCppStd returns the C++ standard a compiler uses when none is
// requested. It returns "" when the compiler or version is unknown.
func DefaultCppStd(s Settings) string {
	if s.CompilerVersion == "" {
		return ""
	}
	ver := s.CompilerVersion
	switch s.Compiler {
	case "gcc":
		switch {
		case gnu.Compare(ver, "6") < 0:
			return "gnu98"
		case gnu.Compare(ver, "11") < 0:
			return "gnu14"
		}
		return "gnu17"
	case "clang":
		switch {
		case gnu.Compare(ver, "6") < 0:
			return "gnu98"
		case gnu.Compare(ver, "16") < 0:
			return "gnu14"
		}
		return "gnu17"
	case "apple-clang":
		return "gnu98"
	case "msvc":
		if gnu.Compare(ver, "190") < 0 {
			return ""
		}
		return "14"
	}
	return ""
}

// EffectiveCppStd returns the explicit compiler.cppstd setting, or the
// compiler's default.
func EffectiveCppStd(s Settings) string {
	if s.CppStd != "" {
		return s.CppStd
	}
	return DefaultCppStd(s)
}

// CheckMinCppStd fails with ErrUnsupportedStandard when the toolchain's C++
// standard is below min. An undeterminable standard passes.
func CheckMinCppStd(s Settings, min string) error {
	want := stdYear(min)
	if want == 0 {
		panic(fmt.Sprintf("recipe: unknown C++ standard %q", min))
	}
	have := EffectiveCppStd(s)
	if have == "" {
		return nil
	}
	if stdYear(have) < want {
		return &StandardError{Have: have, Want: min}
	}
	return nil
}
