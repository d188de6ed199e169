// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recipes indexes the built-in recipes.
package recipes

import (
	"fmt"
	"slices"

	"github.com/goplus/recipes/recipe"
	"github.com/goplus/recipes/recipes/cblosc2"
	"github.com/goplus/recipes/recipes/glog"
	"github.com/goplus/recipes/recipes/libheif"
	"github.com/goplus/recipes/recipes/liquiddsp"
	"github.com/goplus/recipes/recipes/volk"
)

var index = map[string]func() *recipe.Recipe{
	glog.Name:      glog.New,
	volk.Name:      volk.New,
	libheif.Name:   libheif.New,
	cblosc2.Name:   cblosc2.New,
	liquiddsp.Name: liquiddsp.New,
}

// Names returns the names of the built-in recipes, sorted.
func Names() []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a fresh instance of the recipe called name.
func Lookup(name string) (*recipe.Recipe, error) {
	newRecipe, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("recipe %q not found", name)
	}
	return newRecipe(), nil
}
