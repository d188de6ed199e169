// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import "github.com/goplus/recipes/pkgs/mod/constraint"

// VersionAtLeast reports whether the package version is v or newer.
func (f Facts) VersionAtLeast(v string) bool {
	return constraint.Compare(f.Version, v) >= 0
}

// VersionBelow reports whether the package version is older than v.
func (f Facts) VersionBelow(v string) bool {
	return constraint.Compare(f.Version, v) < 0
}

// Context is what hooks see after options are resolved. It is created once
// per invocation and never changed.
type Context struct {
	Facts
	Options Values
}

// NewContext returns the hook context for f and v.
func NewContext(f Facts, v Values) *Context {
	return &Context{Facts: f, Options: v}
}

// Debug reports whether the build type is Debug.
func (c *Context) Debug() bool {
	return c.Settings.BuildType == "Debug"
}

// Shared reports whether the shared option is set. Recipes without the
// option build static libraries.
func (c *Context) Shared() bool {
	return c.Options.BoolSafe("shared")
}
