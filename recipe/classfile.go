// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"github.com/qiniu/x/gsh"
)

const GopPackage = true

// -----------------------------------------------------------------------------

// RecipeF is the classfile of recipes written in XGo (*_recipe.gox).
type RecipeF struct {
	gsh.App

	rec Recipe
}

// Recipe returns the recipe declared by the classfile.
func (p *RecipeF) Recipe() *Recipe {
	r := p.rec
	if r.PackageType == "" {
		r.PackageType = "library"
	}
	return &r
}

func (p *RecipeF) app() *gsh.App {
	return &p.App
}

// Id sets the package name.
func (p *RecipeF) Id(name string) {
	p.rec.Name = name
}

// Description sets the one-line description.
func (p *RecipeF) Description(desc string) {
	p.rec.Description = desc
}

// License sets the SPDX license identifiers.
func (p *RecipeF) License(ids ...string) {
	p.rec.License = ids
}

// Homepage sets the upstream homepage.
func (p *RecipeF) Homepage(url string) {
	p.rec.Homepage = url
}

// Topics sets the search topics.
func (p *RecipeF) Topics(topics ...string) {
	p.rec.Topics = topics
}

// UseCMake selects CMake as the build system.
func (p *RecipeF) UseCMake() {
	p.rec.System = CMake
}

// UseAutotools selects Autotools as the build system.
func (p *RecipeF) UseAutotools() {
	p.rec.System = Autotools
}

// Options declares options.
func (p *RecipeF) Options(opts ...Option) {
	p.rec.Declare(opts...)
}

// IgnoreSettings excludes settings from the package identity.
func (p *RecipeF) IgnoreSettings(keys ...string) {
	p.rec.IgnoreSettings(keys...)
}

// -----------------------------------------------------------------------------

// OnConfigure event refines the resolved options.
func (p *RecipeF) OnConfigure(f func(ctx *Context) Values) {
	p.rec.OnConfigure(f)
}

// OnRequire event declares the dependencies.
func (p *RecipeF) OnRequire(f func(ctx *Context, reqs *Requirements)) {
	p.rec.OnRequire(f)
}

// OnValidate event rejects unsupported configurations.
func (p *RecipeF) OnValidate(f func(ctx *Context) error) {
	p.rec.OnValidate(f)
}

// OnGenerate event maps options to toolchain variables.
func (p *RecipeF) OnGenerate(f func(ctx *Context, tc *Toolchain)) {
	p.rec.OnGenerate(f)
}

// OnSource event declares source tree fixups.
func (p *RecipeF) OnSource(f func(ctx *Context, src *Layout)) {
	p.rec.OnSource(f)
}

// OnPackage event declares the package layout.
func (p *RecipeF) OnPackage(f func(ctx *Context, pkg *Layout)) {
	p.rec.OnPackage(f)
}

// OnPackageInfo event computes consumer metadata.
func (p *RecipeF) OnPackageInfo(f func(ctx *Context, info *CppInfo)) {
	p.rec.OnPackageInfo(f)
}

// -----------------------------------------------------------------------------

// Gopt_RecipeF_Main is main entry of this classfile.
func Gopt_RecipeF_Main(this interface {
	app() *gsh.App
	MainEntry()
}) {
	gsh.InitApp(this.app())
	this.MainEntry()
}
