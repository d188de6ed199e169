// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package volk is the recipe of the Vector Optimized Library of Kernels.
package volk

import "github.com/goplus/recipes/recipe"

// Name is the package name.
const Name = "gnuradio-volk"

// New returns a fresh gnuradio-volk recipe.
func New() *recipe.Recipe {
	r := recipe.New(recipe.Info{
		Name:        Name,
		Description: "The Vector Optimized Library of Kernels",
		License:     []string{"LGPL-3.0"},
		Homepage:    "http://libvolk.org/",
		URL:         "https://github.com/conan-io/conan-center-index",
		Topics:      []string{"simd", "sdr", "simd-programming", "simd-instructions"},
	}, recipe.CMake)

	r.Declare(
		recipe.BoolOption("shared", false),
		recipe.BoolOption("fPIC", true).When(func(f recipe.Facts) bool {
			return f.Settings.OS != "Windows"
		}),
		recipe.BoolOption("with_cpu_features", true),
	)

	r.OnConfigure(recipe.RemoveFPICIfShared)

	r.OnRequire(func(ctx *recipe.Context, reqs *recipe.Requirements) {
		if ctx.Options.Bool("with_cpu_features") {
			reqs.Require("cpu_features/0.8.0", recipe.LinkLike(ctx.Options))
		}
	})

	// The C++17 floor only applies when a standard is requested explicitly.
	r.OnValidate(func(ctx *recipe.Context) error {
		if ctx.Settings.CppStd == "" {
			return nil
		}
		return recipe.CheckMinCppStd(ctx.Settings, "17")
	})

	r.OnGenerate(func(ctx *recipe.Context, tc *recipe.Toolchain) {
		tc.Bind("VOLK_CPU_FEATURES", "with_cpu_features")
		tc.Set("ENABLE_ORC", false)
		tc.Set("ENABLE_TESTING", false)
		tc.Set("ENABLE_PROFILING", false)
		tc.Set("ENABLE_MODTOOL", false)
	})

	r.OnPackage(func(ctx *recipe.Context, pkg *recipe.Layout) {
		pkg.CopyLicense("COPYING", "")
		pkg.Rmdir("lib/cmake")
		pkg.Rmdir("lib/pkgconfig")
	})

	r.OnPackageInfo(func(ctx *recipe.Context, info *recipe.CppInfo) {
		info.AddLibs("volk")
		info.SetProperty(recipe.PropCMakeFileName, "Volk")
		info.SetProperty(recipe.PropCMakeTargetName, "volk::volk")
		info.SetProperty(recipe.PropPkgConfigName, "volk")
	})
	return r
}
