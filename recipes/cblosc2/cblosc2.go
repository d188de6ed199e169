// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cblosc2 is the recipe of the c-blosc2 compressed data store.
package cblosc2

import (
	"slices"

	"github.com/goplus/recipes/recipe"
)

// Name is the package name.
const Name = "c-blosc2"

var licenses = []string{"BLOSC.txt", "BITSHUFFLE.txt", "FASTLZ.txt", "LZ4.txt", "ZLIB.txt", "STDINT.txt"}

// New returns a fresh c-blosc2 recipe.
func New() *recipe.Recipe {
	r := recipe.New(recipe.Info{
		Name:        Name,
		Description: "A fast, compressed, persistent binary data store library for C.",
		License:     []string{"BSD-3-Clause"},
		Homepage:    "https://github.com/Blosc/c-blosc2",
		URL:         "https://github.com/conan-io/conan-center-index",
		Topics:      []string{"c-blosc", "blosc", "compression", "cache", "store"},
	}, recipe.CMake)

	r.Declare(
		recipe.BoolOption("shared", false),
		recipe.BoolOption("fPIC", true).When(func(f recipe.Facts) bool {
			return f.Settings.OS != "Windows"
		}),
		recipe.EnumOption("simd_intrinsics", "avx2", recipe.None, "sse2", "avx2", "avx512").When(func(f recipe.Facts) bool {
			return f.Settings.IsArch("x86", "x86_64")
		}),
		recipe.BoolOption("with_lz4", true),
		recipe.EnumOption("with_zlib", "zlib", recipe.None, "zlib", "zlib-ng", "zlib-ng-compat"),
		recipe.BoolOption("with_zstd", true),
		recipe.BoolOption("with_plugins", true),
	)
	// C library: binaries do not depend on the C++ standard or library.
	r.IgnoreSettings("compiler.cppstd", "compiler.libcxx")

	r.OnConfigure(recipe.RemoveFPICIfShared)

	r.OnRequire(func(ctx *recipe.Context, reqs *recipe.Requirements) {
		o := ctx.Options
		if o.Bool("with_lz4") {
			reqs.Require("lz4/1.9.4")
		}
		switch o.Get("with_zlib") {
		case "zlib-ng-compat":
			reqs.Require("zlib-ng/2.2.0", recipe.WithOption("zlib_compat", recipe.True))
		case "zlib-ng":
			reqs.Require("zlib-ng/2.2.0", recipe.WithOption("zlib_compat", recipe.False))
		case "zlib":
			reqs.Require("zlib/[>=1.2.11 <2]")
		}
		if o.Bool("with_zstd") {
			reqs.Require("zstd/1.5.5")
		}
		reqs.ToolRequire("cmake/[>=3.16.3 <4]")
	})

	r.OnValidate(func(ctx *recipe.Context) error {
		if ctx.VersionBelow("2.11.0") &&
			ctx.Settings.IsArch("x86", "x86_64") &&
			ctx.Options.GetSafe("simd_intrinsics", recipe.None) == "avx512" {
			return recipe.Invalid("%s/%s doesn't support 'avx512' SIMD intrinsics", Name, ctx.Version)
		}
		return nil
	})

	r.OnGenerate(func(ctx *recipe.Context, tc *recipe.Toolchain) {
		o := ctx.Options
		shared := o.Bool("shared")
		tc.SetCache("BLOSC_IS_SUBPROJECT", false)
		tc.SetCache("BLOSC_INSTALL", true)
		tc.SetCache("BUILD_STATIC", !shared)
		tc.SetCache("BUILD_SHARED", shared)
		tc.SetCache("BUILD_TESTS", false)
		tc.SetCache("BUILD_FUZZERS", false)
		tc.SetCache("BUILD_BENCHMARKS", false)
		tc.SetCache("BUILD_EXAMPLES", false)

		if o.Has("simd_intrinsics") {
			simd := o.Get("simd_intrinsics")
			tc.BindCacheValue("DEACTIVATE_AVX2", "simd_intrinsics", !slices.Contains([]string{"avx2", "avx512"}, simd))
			tc.SetCache("DEACTIVATE_AVX512", simd != "avx512")
		} else {
			tc.SetCache("DEACTIVATE_AVX2", true)
			tc.SetCache("DEACTIVATE_AVX512", true)
		}

		tc.BindCacheValue("DEACTIVATE_LZ4", "with_lz4", !o.Bool("with_lz4"))
		tc.SetCache("PREFER_EXTERNAL_LZ4", true)
		tc.BindCacheValue("DEACTIVATE_ZLIB", "with_zlib", o.Get("with_zlib") == recipe.None)
		tc.SetCache("PREFER_EXTERNAL_ZLIB", true)
		tc.BindCacheValue("DEACTIVATE_ZSTD", "with_zstd", !o.Bool("with_zstd"))
		tc.SetCache("PREFER_EXTERNAL_ZSTD", true)
		tc.BindCache("BUILD_PLUGINS", "with_plugins")

		if o.Get("with_zlib") == "zlib-ng-compat" {
			tc.Define("ZLIB_COMPAT", "1")
		}
		if ctx.VersionAtLeast("2.15.2") {
			tc.SetCache("WITH_ZLIB_OPTIM", ctx.Settings.Arch != "wasm")
		}

		if o.Bool("with_lz4") {
			tc.DepProperty("lz4", recipe.PropCMakeFileName, "LZ4")
		}
		if o.Get("with_zlib") == "zlib-ng" {
			tc.DepProperty("zlib-ng", recipe.PropCMakeFileName, "ZLIB_NG")
			tc.DepProperty("zlib-ng", recipe.PropCMakeTargetName, "ZLIB_NG::ZLIB_NG")
		}
		if o.Bool("with_zstd") {
			tc.DepProperty("zstd", recipe.PropCMakeFileName, "ZSTD")
		}
	})

	// Bundled Find modules would shadow the packaged dependencies.
	r.OnSource(func(ctx *recipe.Context, src *recipe.Layout) {
		src.Rm("Find*.cmake", "cmake", false, "FindSIMD.cmake")
	})

	r.OnPackage(func(ctx *recipe.Context, pkg *recipe.Layout) {
		for _, lic := range licenses {
			pkg.CopyLicense(lic, "LICENSES")
		}
		pkg.Rmdir("lib/pkgconfig")
		pkg.Rmdir("lib/cmake")
		pkg.Rmdir("cmake")
		for _, dll := range []string{"concrt*.dll", "msvcp*.dll", "vcruntime*.dll"} {
			pkg.Rm(dll, "bin", true)
		}
	})

	r.OnPackageInfo(func(ctx *recipe.Context, info *recipe.CppInfo) {
		info.SetProperty(recipe.PropPkgConfigName, "blosc2")
		prefix := ""
		if ctx.Settings.IsMSVC() && !ctx.Options.Bool("shared") {
			prefix = "lib"
		}
		info.AddLibs(prefix + "blosc2")
		if ctx.Settings.IsOS("Linux", "FreeBSD") {
			info.AddSystemLibs("rt", "m", "pthread", "dl")
		}
	})
	return r
}
