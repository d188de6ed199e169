// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package glog is the recipe of the Google logging library.
package glog

import "github.com/goplus/recipes/recipe"

// Name is the package name.
const Name = "glog"

func unwindPlatform(f recipe.Facts) bool {
	return f.Settings.IsOS("Linux", "FreeBSD")
}

func notWindows(f recipe.Facts) bool {
	return f.Settings.OS != "Windows"
}

// New returns a fresh glog recipe.
func New() *recipe.Recipe {
	r := recipe.New(recipe.Info{
		Name:        Name,
		Description: "Google logging library",
		License:     []string{"BSD-3-Clause"},
		Homepage:    "https://github.com/google/glog/",
		URL:         "https://github.com/conan-io/conan-center-index",
		Topics:      []string{"logging"},
	}, recipe.CMake)

	r.Declare(
		recipe.BoolOption("shared", false),
		recipe.BoolOption("fPIC", true).When(notWindows),
		recipe.BoolOption("with_gflags", true),
		recipe.BoolOption("with_threads", true),
		recipe.BoolOption("with_unwind", true).When(unwindPlatform),
	)

	r.OnConfigure(recipe.RemoveFPICIfShared)

	r.OnRequire(func(ctx *recipe.Context, reqs *recipe.Requirements) {
		o := ctx.Options
		if o.Bool("with_gflags") {
			reqs.Require("gflags/2.2.2", recipe.TransitiveHeaders(), recipe.TransitiveLibs(), recipe.LinkLike(o))
		}
		if o.BoolSafe("with_unwind") {
			reqs.Require("libunwind/1.8.0", recipe.TransitiveHeaders(), recipe.TransitiveLibs(), recipe.LinkLike(o))
		}
		switch {
		case ctx.VersionAtLeast("0.7.0"):
			reqs.ToolRequire("cmake/[>=3.22 <4]")
		case ctx.VersionAtLeast("0.6.0"):
			reqs.ToolRequire("cmake/[>=3.16 <4]")
		}
	})

	r.OnValidate(func(ctx *recipe.Context) error {
		if ctx.VersionBelow("0.7.0") {
			return nil
		}
		return recipe.CheckMinCppStd(ctx.Settings, "14")
	})

	r.OnGenerate(func(ctx *recipe.Context, tc *recipe.Toolchain) {
		tc.Bind("WITH_GFLAGS", "with_gflags")
		tc.Bind("WITH_THREADS", "with_threads")
		tc.BindSafe("WITH_UNWIND", "with_unwind", false)
		tc.Set("WITH_PKGCONFIG", true)
		tc.Set("WITH_SYMBOLIZE", true)
		tc.Set("BUILD_TESTING", false)
		tc.Set("WITH_GTEST", false)
		tc.Set("CMAKE_TRY_COMPILE_CONFIGURATION", ctx.Settings.BuildType)

		if ctx.Settings.OS == "Emscripten" {
			tc.Override("WITH_SYMBOLIZE", false)
			tc.Override("HAVE_SYSCALL_H", false)
			tc.Override("HAVE_SYS_SYSCALL_H", false)
		}
	})

	r.OnPackage(func(ctx *recipe.Context, pkg *recipe.Layout) {
		pkg.CopyLicense("COPYING", "")
		pkg.Rmdir("lib/cmake")
		pkg.Rmdir("lib/pkgconfig")
		pkg.Rmdir("share")
	})

	r.OnPackageInfo(func(ctx *recipe.Context, info *recipe.CppInfo) {
		info.SetProperty(recipe.PropCMakeFileName, "glog")
		info.SetProperty(recipe.PropCMakeTargetName, "glog::glog")
		info.SetProperty(recipe.PropPkgConfigName, "libglog")

		postfix := ""
		if ctx.Debug() {
			postfix = "d"
		}
		info.AddLibs("glog" + postfix)

		shared := ctx.Options.Bool("shared")
		switch {
		case ctx.Settings.IsOS("Linux", "FreeBSD"):
			info.AddSystemLibs("pthread")
		case ctx.Settings.OS == "Windows":
			info.AddSystemLibs("dbghelp")
			info.AddDefines("GLOG_NO_ABBREVIATED_SEVERITIES")
			decl := ""
			if shared {
				decl = "__declspec(dllimport)"
			}
			info.AddDefines("GOOGLE_GLOG_DLL_DECL=" + decl)
		}
		if ctx.Options.Bool("with_gflags") && !shared {
			info.AddDefines("GFLAGS_DLL_DECLARE_FLAG=", "GFLAGS_DLL_DEFINE_FLAG=")
		}
		if ctx.VersionAtLeast("0.7.0") {
			info.AddDefines("GLOG_USE_GLOG_EXPORT=")
		}
	})
	return r
}
