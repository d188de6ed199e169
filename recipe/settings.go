// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"fmt"
	"runtime"
	"slices"
	"strings"
)

// Settings is the immutable snapshot of the invoking environment.
type Settings struct {
	OS              string `json:"os"`
	Arch            string `json:"arch"`
	Compiler        string `json:"compiler,omitempty"`
	CompilerVersion string `json:"compiler.version,omitempty"`
	CppStd          string `json:"compiler.cppstd,omitempty"`
	LibCxx          string `json:"compiler.libcxx,omitempty"`
	BuildType       string `json:"build_type,omitempty"`

	// BuildOS and BuildArch describe the machine running the build.
	// Empty means the same as OS and Arch.
	BuildOS   string `json:"os_build,omitempty"`
	BuildArch string `json:"arch_build,omitempty"`
}

var goosNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Macos",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"android": "Android",
	"ios":     "iOS",
	"js":      "Emscripten",
}

var goarchNames = map[string]string{
	"amd64":   "x86_64",
	"386":     "x86",
	"arm64":   "armv8",
	"arm":     "armv7",
	"wasm":    "wasm",
	"ppc64le": "ppc64le",
	"riscv64": "riscv64",
}

// DefaultSettings returns the settings of the running host.
func DefaultSettings() Settings {
	s := Settings{
		OS:        goosNames[runtime.GOOS],
		Arch:      goarchNames[runtime.GOARCH],
		BuildType: "Release",
	}
	if s.OS == "" {
		s.OS = runtime.GOOS
	}
	if s.Arch == "" {
		s.Arch = runtime.GOARCH
	}
	switch s.OS {
	case "Windows":
		s.Compiler = "msvc"
	case "Macos", "iOS":
		s.Compiler = "apple-clang"
	default:
		s.Compiler = "gcc"
	}
	return s
}

// ParseSettings applies "key=value" pairs on top of base.
func ParseSettings(base Settings, pairs []string) (Settings, error) {
	s := base
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return Settings{}, fmt.Errorf("invalid setting %q: expected key=value", pair)
		}
		switch strings.TrimSpace(k) {
		case "os":
			s.OS = v
		case "arch":
			s.Arch = v
		case "compiler":
			s.Compiler = v
		case "compiler.version":
			s.CompilerVersion = v
		case "compiler.cppstd":
			s.CppStd = v
		case "compiler.libcxx":
			s.LibCxx = v
		case "build_type":
			s.BuildType = v
		case "os_build", "os.build":
			s.BuildOS = v
		case "arch_build", "arch.build":
			s.BuildArch = v
		default:
			return Settings{}, fmt.Errorf("unknown setting %q", k)
		}
	}
	return s, nil
}

// IsOS reports whether the target os is one of names.
func (s Settings) IsOS(names ...string) bool {
	return slices.Contains(names, s.OS)
}

// IsArch reports whether the target arch is one of names.
func (s Settings) IsArch(names ...string) bool {
	return slices.Contains(names, s.Arch)
}

// IsMSVC reports whether the compiler is Microsoft's.
func (s Settings) IsMSVC() bool {
	return s.Compiler == "msvc" || s.Compiler == "Visual Studio"
}

// CrossBuilding reports whether the build machine differs from the target.
func (s Settings) CrossBuilding() bool {
	if s.BuildOS != "" && s.BuildOS != s.OS {
		return true
	}
	return s.BuildArch != "" && s.BuildArch != s.Arch
}

// StdCppLibrary returns the C++ standard library a static consumer must
// link explicitly, or "" when the compiler driver adds it.
func (s Settings) StdCppLibrary() string {
	switch s.LibCxx {
	case "libstdc++", "libstdc++11":
		return "stdc++"
	case "libc++":
		return "c++"
	case "c++_shared":
		return "c++_shared"
	case "c++_static":
		return "c++_static"
	}
	return ""
}

// Pairs returns the settings as sorted "key=value" pairs, skipping empty
// values.
func (s Settings) Pairs() []string {
	kvs := map[string]string{
		"os":               s.OS,
		"arch":             s.Arch,
		"compiler":         s.Compiler,
		"compiler.version": s.CompilerVersion,
		"compiler.cppstd":  s.CppStd,
		"compiler.libcxx":  s.LibCxx,
		"build_type":       s.BuildType,
		"os_build":         s.BuildOS,
		"arch_build":       s.BuildArch,
	}
	out := make([]string, 0, len(kvs))
	for k, v := range kvs {
		if v != "" {
			out = append(out, k+"="+v)
		}
	}
	slices.Sort(out)
	return out
}
