// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// BuildSystem names the external build tool a recipe drives.
type BuildSystem string

const (
	CMake     BuildSystem = "cmake"
	Autotools BuildSystem = "autotools"
)

// ValueKind is the type of a toolchain variable.
type ValueKind int

const (
	KindUnset ValueKind = iota
	KindBool
	KindString
)

// Value is a toolchain variable value.
type Value struct {
	Kind ValueKind `json:"kind"`
	Bool bool      `json:"bool,omitempty"`
	Str  string    `json:"str,omitempty"`
}

// BoolValue returns a boolean toolchain value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// StringValue returns a string toolchain value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// toValue converts the loosely typed arguments accepted by Toolchain.
func toValue(v any) Value {
	switch v := v.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case bool:
		return BoolValue(v)
	case string:
		return StringValue(v)
	}
	panic(fmt.Sprintf("recipe: unsupported toolchain value %T", v))
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return boolLiteral(v.Bool)
	case KindString:
		return v.Str
	}
	return "<unset>"
}

// -----------------------------------------------------------------------------

// Config is the generated, immutable toolchain configuration handed to the
// external build tool.
type Config struct {
	System    BuildSystem       `json:"system"`
	Variables map[string]Value  `json:"variables,omitempty"`
	Cache     map[string]Value  `json:"cache_variables,omitempty"`
	Defines   map[string]string `json:"defines,omitempty"`

	// Bindings maps each build-affecting option to its variable.
	Bindings map[string]string `json:"bindings,omitempty"`

	// Autoreconf regenerates the configure script before configuring.
	Autoreconf bool `json:"autoreconf,omitempty"`

	// InSource builds inside the source tree.
	InSource bool `json:"in_source,omitempty"`

	// DepProperties overrides consumer properties of dependencies, such
	// as the CMake file name the build script looks up.
	DepProperties map[string]map[string]string `json:"dep_properties,omitempty"`
}

// Lookup returns the value of key among variables and cache variables.
func (c Config) Lookup(key string) (Value, bool) {
	if v, ok := c.Variables[key]; ok {
		return v, true
	}
	v, ok := c.Cache[key]
	return v, ok
}

// Keys returns all variable and cache variable names, sorted.
func (c Config) Keys() []string {
	keys := slices.Collect(maps.Keys(c.Variables))
	keys = append(keys, slices.Collect(maps.Keys(c.Cache))...)
	slices.Sort(keys)
	return slices.Compact(keys)
}

// -----------------------------------------------------------------------------

type layer struct {
	vars  map[string]Value
	cache map[string]Value
}

func newLayer() layer {
	return layer{vars: map[string]Value{}, cache: map[string]Value{}}
}

// Toolchain builds a Config. Rules are applied in three layers: general
// rules derived from common options, recipe rules, then platform
// overrides, the last one winning.
type Toolchain struct {
	system    BuildSystem
	schema    Schema
	values    Values
	rules     layer
	overrides layer
	defines   map[string]string
	bindings  map[string][]string
	deps      map[string]map[string]string

	autoreconf bool
	inSource   bool
}

// NewToolchain returns a Toolchain for system with the general rules for
// shared, fPIC and build type already applied.
func NewToolchain(system BuildSystem, schema Schema, values Values, s Settings) *Toolchain {
	tc := &Toolchain{
		system:    system,
		schema:    schema,
		values:    values,
		rules:     newLayer(),
		overrides: newLayer(),
		defines:   map[string]string{},
		bindings:  map[string][]string{},
		deps:      map[string]map[string]string{},
	}
	tc.general(s)
	return tc
}

func (tc *Toolchain) affects(option string) bool {
	o, ok := tc.schema.Lookup(option)
	return ok && o.AffectsBuild() && tc.values.Has(option)
}

func (tc *Toolchain) general(s Settings) {
	switch tc.system {
	case CMake:
		if tc.affects("shared") {
			tc.Bind("BUILD_SHARED_LIBS", "shared")
		}
		if tc.affects("fPIC") {
			tc.Bind("CMAKE_POSITION_INDEPENDENT_CODE", "fPIC")
		}
		if s.BuildType != "" {
			tc.Set("CMAKE_BUILD_TYPE", s.BuildType)
		}
	case Autotools:
		if tc.affects("shared") {
			shared := tc.values.Bool("shared")
			tc.Bind("--enable-shared", "shared")
			tc.Set("--disable-static", shared)
			tc.Set("--disable-shared", !shared)
			tc.Set("--enable-static", !shared)
		}
		if tc.affects("fPIC") {
			tc.Bind("--with-pic", "fPIC")
		}
	}
}

// System returns the build system the configuration targets.
func (tc *Toolchain) System() BuildSystem { return tc.system }

// Set sets a variable. value is a bool, a string, a Value, or nil to
// remove the variable.
func (tc *Toolchain) Set(key string, value any) {
	tc.rules.vars[key] = toValue(value)
}

// SetCache sets a cache variable.
func (tc *Toolchain) SetCache(key string, value any) {
	tc.rules.cache[key] = toValue(value)
}

// Bind sets key to the value of option and records key as the option's
// toolchain variable.
func (tc *Toolchain) Bind(key, option string) {
	tc.BindValue(key, option, tc.optionValue(option))
}

// BindValue sets key to value and records key as option's variable.
func (tc *Toolchain) BindValue(key, option string, value any) {
	tc.values.Get(option)
	tc.rules.vars[key] = toValue(value)
	tc.bindings[option] = append(tc.bindings[option], key)
}

// BindCache is Bind for a cache variable.
func (tc *Toolchain) BindCache(key, option string) {
	tc.BindCacheValue(key, option, tc.optionValue(option))
}

// BindCacheValue is BindValue for a cache variable.
func (tc *Toolchain) BindCacheValue(key, option string, value any) {
	tc.values.Get(option)
	tc.rules.cache[key] = toValue(value)
	tc.bindings[option] = append(tc.bindings[option], key)
}

// BindSafe binds option when it exists and sets key to def otherwise.
func (tc *Toolchain) BindSafe(key, option string, def any) {
	if tc.values.Has(option) {
		tc.Bind(key, option)
		return
	}
	tc.Set(key, def)
}

func (tc *Toolchain) optionValue(option string) Value {
	v := tc.values.Get(option)
	if o, ok := tc.schema.Lookup(option); ok && o.IsBool() {
		return BoolValue(v == True)
	}
	if v == None {
		return Value{}
	}
	return StringValue(v)
}

// Override sets a variable in the platform override layer.
func (tc *Toolchain) Override(key string, value any) {
	tc.overrides.vars[key] = toValue(value)
}

// OverrideCache sets a cache variable in the platform override layer.
func (tc *Toolchain) OverrideCache(key string, value any) {
	tc.overrides.cache[key] = toValue(value)
}

// Define adds a preprocessor definition.
func (tc *Toolchain) Define(name, value string) {
	tc.defines[name] = value
}

// Autoreconf requests regenerating the configure script.
func (tc *Toolchain) Autoreconf() { tc.autoreconf = true }

// InSource requests building inside the source tree.
func (tc *Toolchain) InSource() { tc.inSource = true }

// DepProperty overrides the consumer property key of dependency dep.
func (tc *Toolchain) DepProperty(dep, key, value string) {
	if tc.deps[dep] == nil {
		tc.deps[dep] = map[string]string{}
	}
	tc.deps[dep][key] = value
}

// Config merges the layers and checks that every option affecting the
// build is bound to exactly one variable.
func (tc *Toolchain) Config() (Config, error) {
	if err := tc.checkBindings(); err != nil {
		return Config{}, err
	}
	cfg := Config{
		System:    tc.system,
		Variables: merge(tc.rules.vars, tc.overrides.vars),
		Cache:     merge(tc.rules.cache, tc.overrides.cache),
		Defines:   maps.Clone(tc.defines),
		Bindings:  make(map[string]string, len(tc.bindings)),

		Autoreconf: tc.autoreconf,
		InSource:   tc.inSource,
	}
	if len(tc.deps) > 0 {
		cfg.DepProperties = make(map[string]map[string]string, len(tc.deps))
		for dep, props := range tc.deps {
			cfg.DepProperties[dep] = maps.Clone(props)
		}
	}
	for option, keys := range tc.bindings {
		cfg.Bindings[option] = keys[0]
	}
	return cfg, nil
}

func (tc *Toolchain) checkBindings() error {
	var errs []error
	for _, name := range tc.values.Names() {
		if !tc.affects(name) {
			continue
		}
		switch keys := tc.bindings[name]; len(keys) {
		case 0:
			errs = append(errs, fmt.Errorf("%w: option %q is not bound to any toolchain variable", ErrUnmappedOption, name))
		case 1:
		default:
			errs = append(errs, fmt.Errorf("%w: option %q is bound to several variables (%s)", ErrUnmappedOption, name, strings.Join(keys, ", ")))
		}
	}
	return errors.Join(errs...)
}

// merge applies over on top of base, dropping unset values.
func merge(base, over map[string]Value) map[string]Value {
	out := make(map[string]Value, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	for k, v := range out {
		if v.Kind == KindUnset {
			delete(out, k)
		}
	}
	return out
}
