// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ixgo registers the recipe classfile with the XGo builder and
// exports the packages scripted recipes may use.
package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/ixgo/xgobuild/pkg/gsh"
	_ "github.com/goplus/recipes/internal/ixgo/pkg/github.com/goplus/recipes/pkgs/gnu"
	_ "github.com/goplus/recipes/internal/ixgo/pkg/github.com/goplus/recipes/pkgs/mod/constraint"
	_ "github.com/goplus/recipes/internal/ixgo/pkg/github.com/goplus/recipes/pkgs/mod/module"
	_ "github.com/goplus/recipes/internal/ixgo/pkg/github.com/goplus/recipes/recipe"
)

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   "_recipe.gox",
		Class: "RecipeF",
		PkgPaths: []string{
			"github.com/goplus/recipes/recipe",
		},
		Import: []*modfile.Import{
			{
				Name: "constraint",
				Path: "github.com/goplus/recipes/pkgs/mod/constraint",
			},
		},
	})
}
