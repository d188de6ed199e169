// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recipe describes how a third-party native library is configured,
// built and packaged: its identity, an option schema with per-platform
// applicability, and the hooks a build host invokes in order.
package recipe

import "slices"

// Info is the immutable identity of a recipe.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	License     []string `json:"license,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	URL         string   `json:"url,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	PackageType string   `json:"package_type,omitempty"`
}

// Recipe is the build and packaging description of one library.
type Recipe struct {
	Info
	System BuildSystem

	schema  Schema
	ignored []string

	fOnConfigure   func(ctx *Context) Values
	fOnRequire     func(ctx *Context, reqs *Requirements)
	fOnValidate    func(ctx *Context) error
	fOnGenerate    func(ctx *Context, tc *Toolchain)
	fOnSource      func(ctx *Context, src *Layout)
	fOnPackage     func(ctx *Context, pkg *Layout)
	fOnPackageInfo func(ctx *Context, info *CppInfo)
}

// New returns a recipe built with system.
func New(info Info, system BuildSystem) *Recipe {
	if info.PackageType == "" {
		info.PackageType = "library"
	}
	return &Recipe{Info: info, System: system}
}

// Declare adds options to the schema.
func (r *Recipe) Declare(opts ...Option) {
	r.schema = NewSchema(append(r.schema.Options(), opts...)...)
}

// IgnoreSettings excludes settings keys (as in Settings.Pairs) from the
// package identity, for libraries whose binaries do not depend on them.
func (r *Recipe) IgnoreSettings(keys ...string) {
	r.ignored = append(r.ignored, keys...)
}

// OnConfigure registers the hook refining resolved options. It returns the
// refined record, typically a subset of ctx.Options.
func (r *Recipe) OnConfigure(f func(ctx *Context) Values) {
	r.fOnConfigure = f
}

// OnRequire registers the hook declaring dependencies.
func (r *Recipe) OnRequire(f func(ctx *Context, reqs *Requirements)) {
	r.fOnRequire = f
}

// OnValidate registers the hook rejecting unsupported configurations.
func (r *Recipe) OnValidate(f func(ctx *Context) error) {
	r.fOnValidate = f
}

// OnGenerate registers the hook mapping options to toolchain variables.
func (r *Recipe) OnGenerate(f func(ctx *Context, tc *Toolchain)) {
	r.fOnGenerate = f
}

// OnSource registers the hook declaring fixups of the source tree, run
// after patches and before configure.
func (r *Recipe) OnSource(f func(ctx *Context, src *Layout)) {
	r.fOnSource = f
}

// OnPackage registers the hook declaring the package layout.
func (r *Recipe) OnPackage(f func(ctx *Context, pkg *Layout)) {
	r.fOnPackage = f
}

// OnPackageInfo registers the hook computing consumer metadata.
func (r *Recipe) OnPackageInfo(f func(ctx *Context, info *CppInfo)) {
	r.fOnPackageInfo = f
}

// -----------------------------------------------------------------------------

// DeclareOptions returns the declared option schema.
func (r *Recipe) DeclareOptions() Schema {
	return r.schema
}

// NormalizeOptions returns the schema restricted to options applicable to f.
func (r *Recipe) NormalizeOptions(f Facts) Schema {
	return r.schema.Normalize(f)
}

// ResolveOptions resolves overrides against the normalized schema, then
// runs the configure hook.
func (r *Recipe) ResolveOptions(f Facts, overrides map[string]string) (Values, error) {
	v, err := r.NormalizeOptions(f).Resolve(overrides)
	if err != nil || r.fOnConfigure == nil {
		return v, err
	}
	err = guard(func() error {
		v = r.fOnConfigure(NewContext(f, v))
		return nil
	})
	return v, err
}

// Requirements returns the dependencies for ctx.
func (r *Recipe) Requirements(ctx *Context) (RequirementSet, error) {
	var reqs Requirements
	if r.fOnRequire != nil {
		err := guard(func() error {
			r.fOnRequire(ctx, &reqs)
			return reqs.Err()
		})
		if err != nil {
			return RequirementSet{}, err
		}
	}
	return reqs.Set(), nil
}

// Validate fails when the recipe rejects ctx.
func (r *Recipe) Validate(ctx *Context) error {
	if r.fOnValidate == nil {
		return nil
	}
	return guard(func() error { return r.fOnValidate(ctx) })
}

// GenerateConfig returns the toolchain configuration for ctx.
func (r *Recipe) GenerateConfig(ctx *Context) (Config, error) {
	var tc *Toolchain
	err := guard(func() error {
		tc = NewToolchain(r.System, r.NormalizeOptions(ctx.Facts), ctx.Options, ctx.Settings)
		if r.fOnGenerate != nil {
			r.fOnGenerate(ctx, tc)
		}
		return nil
	})
	if err != nil {
		return Config{}, err
	}
	return tc.Config()
}

// SourceFixups returns the operations on the source tree.
func (r *Recipe) SourceFixups(ctx *Context) (Layout, error) {
	var l Layout
	if r.fOnSource == nil {
		return l, nil
	}
	err := guard(func() error {
		r.fOnSource(ctx, &l)
		return nil
	})
	return l, err
}

// PackageLayout returns the operations shaping the package tree.
func (r *Recipe) PackageLayout(ctx *Context) (Layout, error) {
	var l Layout
	if r.fOnPackage == nil {
		return l, nil
	}
	err := guard(func() error {
		r.fOnPackage(ctx, &l)
		return nil
	})
	return l, err
}

// ExportMetadata returns the consumer metadata for ctx.
func (r *Recipe) ExportMetadata(ctx *Context) (CppInfo, error) {
	var info CppInfo
	if r.fOnPackageInfo == nil {
		return info, nil
	}
	err := guard(func() error {
		r.fOnPackageInfo(ctx, &info)
		return nil
	})
	return info, err
}

// PackageID returns the single-point matrix identifying the binary built
// for s and v.
func (r *Recipe) PackageID(s Settings, v Values) Matrix {
	m := MatrixOf(s, v)
	for _, k := range r.ignored {
		delete(m.Require, k)
	}
	return m
}

// BuildMatrix returns the option space of the normalized schema combined
// with the settings of f.
func (r *Recipe) BuildMatrix(f Facts) Matrix {
	m := r.NormalizeOptions(f).Matrix()
	m.Require = map[string][]string{}
	for k, v := range MatrixOf(f.Settings, Values{}).Require {
		if !slices.Contains(r.ignored, k) {
			m.Require[k] = v
		}
	}
	return m
}

// guard runs f, turning a missing option panic into its error.
func guard(f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			oe, ok := e.(*OptionError)
			if !ok {
				panic(e)
			}
			err = oe
		}
	}()
	return f()
}

// RemoveFPICIfShared is a configure hook dropping fPIC for shared builds,
// where position independent code is implied.
func RemoveFPICIfShared(ctx *Context) Values {
	if ctx.Options.BoolSafe("shared") {
		return ctx.Options.Without("fPIC")
	}
	return ctx.Options
}
