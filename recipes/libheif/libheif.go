// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package libheif is the recipe of the HEIF and AVIF codec library.
package libheif

import "github.com/goplus/recipes/recipe"

// Name is the package name.
const Name = "libheif"

// codec is an optional codec backed by a dependency.
type codec struct {
	name string
	ref  string
	// component is the consumer component requirement.
	component string
	// since is the first version offering the option, "" for all.
	since string
}

var codecs = []codec{
	{name: "with_libde265", ref: "libde265/1.0.12", component: "libde265::libde265"},
	{name: "with_x265", ref: "libx265/3.4", component: "libx265::libx265"},
	{name: "with_libaomav1", ref: "libaom-av1/3.6.1", component: "libaom-av1::libaom-av1"},
	{name: "with_dav1d", ref: "dav1d/1.2.1", component: "dav1d::dav1d"},
	{name: "with_jpeg", ref: "libjpeg/9f", component: "libjpeg::libjpeg", since: "1.17.0"},
	{name: "with_openjpeg", ref: "openjpeg/2.5.2", component: "openjpeg::openjpeg", since: "1.17.0"},
	{name: "with_openjph", ref: "openjph/0.16.0", component: "openjph::openjph", since: "1.18.0"},
	{name: "with_openh264", ref: "openh264/2.4.1", component: "openh264::openh264", since: "1.19.0"},
}

func (c codec) option() recipe.Option {
	o := recipe.BoolOption(c.name, c.name == "with_libde265")
	if c.since != "" {
		since := c.since
		o = o.When(func(f recipe.Facts) bool { return f.VersionAtLeast(since) })
	}
	return o
}

// New returns a fresh libheif recipe.
func New() *recipe.Recipe {
	r := recipe.New(recipe.Info{
		Name:        Name,
		Description: "libheif is an HEIF and AVIF file format decoder and encoder.",
		License:     []string{"LGPL-3.0-only", "GPL-3.0-or-later", "MIT"},
		Homepage:    "https://github.com/strukturag/libheif",
		URL:         "https://github.com/conan-io/conan-center-index",
		Topics:      []string{"heif", "codec", "video"},
	}, recipe.CMake)

	r.Declare(
		recipe.BoolOption("shared", false),
		recipe.BoolOption("fPIC", true).When(func(f recipe.Facts) bool {
			return f.Settings.OS != "Windows"
		}),
	)
	for _, c := range codecs {
		r.Declare(c.option())
	}

	r.OnConfigure(recipe.RemoveFPICIfShared)

	r.OnRequire(func(ctx *recipe.Context, reqs *recipe.Requirements) {
		for _, c := range codecs {
			if ctx.Options.BoolSafe(c.name) {
				reqs.Require(c.ref)
			}
		}
		if ctx.VersionAtLeast("1.18.0") {
			reqs.ToolRequire("cmake/[>=3.16 <4]")
		}
	})

	r.OnValidate(func(ctx *recipe.Context) error {
		min := "11"
		if ctx.VersionAtLeast("1.19.0") {
			min = "20"
		}
		return recipe.CheckMinCppStd(ctx.Settings, min)
	})

	r.OnGenerate(func(ctx *recipe.Context, tc *recipe.Toolchain) {
		o := ctx.Options
		tc.Set("WITH_LIBSHARPYUV", false)
		tc.Bind("WITH_LIBDE265", "with_libde265")
		tc.Bind("WITH_X265", "with_x265")
		tc.Bind("WITH_AOM", "with_libaomav1")
		tc.Set("WITH_AOM_DECODER", o.Bool("with_libaomav1"))
		tc.Set("WITH_AOM_ENCODER", o.Bool("with_libaomav1"))
		tc.Set("WITH_RAV1E", false)
		tc.Bind("WITH_DAV1D", "with_dav1d")
		tc.Set("WITH_EXAMPLES", false)
		tc.Set("WITH_GDK_PIXBUF", false)
		tc.Set("BUILD_TESTING", false)
		tc.BindSafe("WITH_JPEG_DECODER", "with_jpeg", false)
		tc.Set("WITH_JPEG_ENCODER", o.BoolSafe("with_jpeg"))
		tc.BindSafe("WITH_OpenJPEG_DECODER", "with_openjpeg", false)
		tc.Set("WITH_OpenJPEG_ENCODER", o.BoolSafe("with_openjpeg"))
		tc.BindSafe("WITH_OPENJPH_ENCODER", "with_openjph", false)
		tc.BindSafe("WITH_OPENH264_DECODER", "with_openh264", false)
		tc.Set("CMAKE_DISABLE_FIND_PACKAGE_Doxygen", true)
		tc.SetCache("CMAKE_COMPILE_WARNING_AS_ERROR", false)

		if ctx.VersionAtLeast("1.18.0") {
			tc.DepProperty("libde265", recipe.PropCMakeFileName, "LIBDE265")
			tc.DepProperty("openjph", recipe.PropCMakeFileName, "OPENJPH")
		}
		if ctx.VersionAtLeast("1.19.0") {
			tc.DepProperty("openh264", recipe.PropCMakeFileName, "OpenH264")
		}
	})

	r.OnPackage(func(ctx *recipe.Context, pkg *recipe.Layout) {
		pkg.CopyLicense("COPYING", "")
		pkg.Rmdir("lib/cmake")
		pkg.Rmdir("lib/pkgconfig")
	})

	r.OnPackageInfo(func(ctx *recipe.Context, info *recipe.CppInfo) {
		info.SetProperty(recipe.PropCMakeFileName, "libheif")
		info.SetProperty(recipe.PropCMakeTargetName, "libheif::heif")
		info.SetProperty(recipe.PropPkgConfigName, "libheif")
		info.AddLibs("heif")

		shared := ctx.Options.Bool("shared")
		if !shared {
			info.AddDefines("LIBHEIF_STATIC_BUILD")
		}
		if ctx.Settings.IsOS("Linux", "FreeBSD") {
			info.AddSystemLibs("m", "pthread")
			if ctx.VersionAtLeast("1.18.0") {
				info.AddSystemLibs("dl")
			}
		}
		if !shared {
			if lib := ctx.Settings.StdCppLibrary(); lib != "" {
				info.AddSystemLibs(lib)
			}
		}
		for _, c := range codecs {
			if ctx.Options.BoolSafe(c.name) {
				info.AddRequires(c.component)
			}
		}
	})
	return r
}
