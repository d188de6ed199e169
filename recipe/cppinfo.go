// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"maps"
	"slices"
	"strings"
)

// Well-known consumer property names.
const (
	PropCMakeFileName   = "cmake_file_name"
	PropCMakeTargetName = "cmake_target_name"
	PropPkgConfigName   = "pkg_config_name"
)

// CppInfo is the consumer-facing metadata of a package.
type CppInfo struct {
	Libs       []string          `json:"libs,omitempty"`
	SystemLibs []string          `json:"system_libs,omitempty"`
	Defines    []string          `json:"defines,omitempty"`
	Requires   []string          `json:"requires,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// SetProperty sets a consumer property such as PropPkgConfigName.
func (c *CppInfo) SetProperty(key, value string) {
	if c.Properties == nil {
		c.Properties = make(map[string]string)
	}
	c.Properties[key] = value
}

// Property returns the consumer property key.
func (c *CppInfo) Property(key string) string {
	return c.Properties[key]
}

// AddLibs appends library names.
func (c *CppInfo) AddLibs(libs ...string) { c.Libs = append(c.Libs, libs...) }

// AddSystemLibs appends system library names.
func (c *CppInfo) AddSystemLibs(libs ...string) { c.SystemLibs = append(c.SystemLibs, libs...) }

// AddDefines appends preprocessor definitions in NAME or NAME=VALUE form.
func (c *CppInfo) AddDefines(defs ...string) { c.Defines = append(c.Defines, defs...) }

// AddRequires appends component requirements in "pkg::component" form.
func (c *CppInfo) AddRequires(reqs ...string) { c.Requires = append(c.Requires, reqs...) }

// HasSystemLib reports whether lib is a required system library.
func (c *CppInfo) HasSystemLib(lib string) bool { return slices.Contains(c.SystemLibs, lib) }

// HasDefine reports whether def is one of the definitions.
func (c *CppInfo) HasDefine(def string) bool { return slices.Contains(c.Defines, def) }

// Clone returns a deep copy.
func (c *CppInfo) Clone() CppInfo {
	return CppInfo{
		Libs:       slices.Clone(c.Libs),
		SystemLibs: slices.Clone(c.SystemLibs),
		Defines:    slices.Clone(c.Defines),
		Requires:   slices.Clone(c.Requires),
		Properties: maps.Clone(c.Properties),
	}
}

// Flags returns the compiler and linker flags a consumer needs for a
// package installed at prefix.
func (c *CppInfo) Flags(prefix string) string {
	var b strings.Builder
	b.WriteString("-I" + prefix + "/include")
	for _, d := range c.Defines {
		b.WriteString(" -D" + d)
	}
	b.WriteString(" -L" + prefix + "/lib")
	for _, l := range c.Libs {
		b.WriteString(" -l" + l)
	}
	for _, l := range c.SystemLibs {
		b.WriteString(" -l" + l)
	}
	return b.String()
}

// PkgConfig renders a pkg-config file for the package installed at prefix.
func (c *CppInfo) PkgConfig(prefix, name, version, description string) string {
	var b strings.Builder
	b.WriteString("prefix=" + prefix + "\n")
	b.WriteString("libdir=${prefix}/lib\n")
	b.WriteString("includedir=${prefix}/include\n\n")
	if n := c.Property(PropPkgConfigName); n != "" {
		name = n
	}
	b.WriteString("Name: " + name + "\n")
	b.WriteString("Description: " + description + "\n")
	b.WriteString("Version: " + version + "\n")

	libs := []string{"-L${libdir}"}
	for _, l := range c.Libs {
		libs = append(libs, "-l"+l)
	}
	b.WriteString("Libs: " + strings.Join(libs, " ") + "\n")
	if len(c.SystemLibs) > 0 {
		private := make([]string, len(c.SystemLibs))
		for i, l := range c.SystemLibs {
			private[i] = "-l" + l
		}
		b.WriteString("Libs.private: " + strings.Join(private, " ") + "\n")
	}
	cflags := []string{"-I${includedir}"}
	for _, d := range c.Defines {
		cflags = append(cflags, "-D"+d)
	}
	b.WriteString("Cflags: " + strings.Join(cflags, " ") + "\n")
	return b.String()
}
