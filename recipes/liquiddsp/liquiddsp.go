// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package liquiddsp is the recipe of the liquid-dsp signal processing
// library.
package liquiddsp

import "github.com/goplus/recipes/recipe"

// Name is the package name.
const Name = "liquid-dsp"

// New returns a fresh liquid-dsp recipe.
func New() *recipe.Recipe {
	r := recipe.New(recipe.Info{
		Name:        Name,
		Description: "Digital signal processing library for software-defined radios (and more)",
		License:     []string{"MIT"},
		Homepage:    "https://github.com/jgaeddert/liquid-dsp",
		URL:         "https://github.com/conan-io/conan-center-index",
		Topics:      []string{"dsp", "sdr"},
	}, recipe.Autotools)

	// The configure script has no shared/static switches: both libraries are
	// built and the unwanted one is removed when packaging.
	r.Declare(
		recipe.BoolOption("shared", false).PackageOnly(),
		recipe.BoolOption("simdoverride", true),
		recipe.BoolOption("with_fftw", false),
	)
	r.IgnoreSettings("compiler.libcxx", "compiler.cppstd")

	r.OnRequire(func(ctx *recipe.Context, reqs *recipe.Requirements) {
		if ctx.Options.Bool("with_fftw") {
			reqs.Require("fftw/[~3.3]")
		}
		buildOS := ctx.Settings.BuildOS
		if buildOS == "" {
			buildOS = ctx.Settings.OS
		}
		if buildOS == "Windows" {
			reqs.ToolRequire("msys2/cci.latest")
		}
		if ctx.Settings.IsMSVC() {
			reqs.ToolRequire("automake/1.16.5")
		}
	})

	r.OnValidate(func(ctx *recipe.Context) error {
		if ctx.Settings.CrossBuilding() {
			return recipe.Invalid("cross building is not yet supported")
		}
		return nil
	})

	r.OnGenerate(func(ctx *recipe.Context, tc *recipe.Toolchain) {
		tc.Autoreconf()
		tc.InSource()
		tc.BindValue("--enable-fftoverride", "with_fftw", !ctx.Options.Bool("with_fftw"))
		tc.Bind("--enable-simdoverride", "simdoverride")
	})

	r.OnPackage(func(ctx *recipe.Context, pkg *recipe.Layout) {
		pkg.CopyLicense("LICENSE", "")
		if ctx.Options.Bool("shared") {
			pkg.Rm("*.a", "lib", false)
		} else {
			pkg.Rm("*.[so|dylib]*", "lib", false)
		}
	})

	r.OnPackageInfo(func(ctx *recipe.Context, info *recipe.CppInfo) {
		info.AddLibs("liquid")
		if ctx.Settings.OS == "Linux" {
			info.AddSystemLibs("m")
		}
	})
	return r
}
