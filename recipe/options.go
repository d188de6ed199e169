// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Canonical option literals.
const (
	True  = "True"
	False = "False"
	None  = "None"
)

// Facts is what an option's applicability predicate may look at.
type Facts struct {
	Settings Settings
	Version  string
}

// Option is a named enumerated configuration switch.
type Option struct {
	Name    string
	Values  []string
	Default string

	isBool      bool
	packageOnly bool
	when        func(Facts) bool
}

// BoolOption declares a True/False option.
func BoolOption(name string, def bool) Option {
	return Option{
		Name:    name,
		Values:  []string{True, False},
		Default: boolLiteral(def),
		isBool:  true,
	}
}

// EnumOption declares an option restricted to values.
func EnumOption(name, def string, values ...string) Option {
	return Option{Name: name, Values: values, Default: def}
}

// When restricts the option to configurations where pred holds. Options
// for which pred is false are absent after normalization.
func (o Option) When(pred func(Facts) bool) Option {
	prev := o.when
	o.when = func(f Facts) bool {
		if prev != nil && !prev(f) {
			return false
		}
		return pred(f)
	}
	return o
}

// PackageOnly marks an option that changes packaging but has no toolchain
// variable.
func (o Option) PackageOnly() Option {
	o.packageOnly = true
	return o
}

// IsBool reports whether the option is a True/False switch.
func (o Option) IsBool() bool { return o.isBool }

// AffectsBuild reports whether the option must be bound to a toolchain
// variable.
func (o Option) AffectsBuild() bool { return !o.packageOnly }

// Applies reports whether the option exists for f.
func (o Option) Applies(f Facts) bool {
	return o.when == nil || o.when(f)
}

// canonical returns the canonical spelling of v, or false if v is not
// allowed.
func (o Option) canonical(v string) (string, bool) {
	if o.isBool {
		switch strings.ToLower(v) {
		case "true", "1", "on", "yes":
			return True, true
		case "false", "0", "off", "no":
			return False, true
		}
		return "", false
	}
	if slices.Contains(o.Values, v) {
		return v, true
	}
	return "", false
}

// -----------------------------------------------------------------------------

// Schema is an ordered, immutable set of option declarations.
type Schema struct {
	opts []Option
}

// NewSchema builds a schema, panicking on duplicated names or defaults
// outside the allowed values since both are defects of the declaration.
func NewSchema(opts ...Option) Schema {
	seen := make(map[string]bool, len(opts))
	for _, o := range opts {
		if seen[o.Name] {
			panic(fmt.Sprintf("recipe: option %q declared twice", o.Name))
		}
		seen[o.Name] = true
		if _, ok := o.canonical(o.Default); !ok {
			panic(fmt.Sprintf("recipe: default %q of option %q is not an allowed value", o.Default, o.Name))
		}
	}
	return Schema{opts: slices.Clone(opts)}
}

// Options returns the option declarations in declaration order.
func (s Schema) Options() []Option {
	return slices.Clone(s.opts)
}

// Len returns the number of options.
func (s Schema) Len() int { return len(s.opts) }

// Lookup returns the option named name.
func (s Schema) Lookup(name string) (Option, bool) {
	for _, o := range s.opts {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Has reports whether name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names returns the option names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.opts))
	for i, o := range s.opts {
		names[i] = o.Name
	}
	return names
}

// Normalize returns the schema restricted to the options that apply to f.
// The receiver is left untouched so normalizing is idempotent.
func (s Schema) Normalize(f Facts) Schema {
	out := make([]Option, 0, len(s.opts))
	for _, o := range s.opts {
		if o.Applies(f) {
			out = append(out, o)
		}
	}
	return Schema{opts: out}
}

// Defaults returns the default value of every option.
func (s Schema) Defaults() map[string]string {
	m := make(map[string]string, len(s.opts))
	for _, o := range s.opts {
		m[o.Name] = o.Default
	}
	return m
}

// Resolve combines defaults with overrides. Overriding an option that is
// not in the schema fails with ErrMissingOption.
func (s Schema) Resolve(overrides map[string]string) (Values, error) {
	m := s.Defaults()
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		o, ok := s.Lookup(name)
		if !ok {
			return Values{}, &OptionError{Name: name}
		}
		v, ok := o.canonical(overrides[name])
		if !ok {
			return Values{}, fmt.Errorf("%w: %s=%s, allowed %v", ErrInvalidOption, name, overrides[name], o.Values)
		}
		m[name] = v
	}
	return Values{m: m}, nil
}

// Matrix returns the option space of the schema.
func (s Schema) Matrix() Matrix {
	opts := make(map[string][]string, len(s.opts))
	for _, o := range s.opts {
		opts[o.Name] = slices.Clone(o.Values)
	}
	return Matrix{Options: opts}
}

// -----------------------------------------------------------------------------

// Values is the immutable resolved option record.
type Values struct {
	m map[string]string
}

// NewValues returns a Values holding a copy of m.
func NewValues(m map[string]string) Values {
	return Values{m: maps.Clone(m)}
}

// Has reports whether the option exists.
func (v Values) Has(name string) bool {
	_, ok := v.m[name]
	return ok
}

// Get returns the value of name. It panics with *OptionError when name does
// not exist; hosts recover it into an ErrMissingOption error.
func (v Values) Get(name string) string {
	val, ok := v.m[name]
	if !ok {
		panic(&OptionError{Name: name})
	}
	return val
}

// GetSafe returns the value of name, or def when it does not exist.
func (v Values) GetSafe(name, def string) string {
	if val, ok := v.m[name]; ok {
		return val
	}
	return def
}

// Bool returns the boolean value of name. It panics like Get.
func (v Values) Bool(name string) bool {
	return v.Get(name) == True
}

// BoolSafe returns the boolean value of name, or false when absent.
func (v Values) BoolSafe(name string) bool {
	return v.m[name] == True
}

// Without returns a copy with names removed. Absent names are ignored.
func (v Values) Without(names ...string) Values {
	m := maps.Clone(v.m)
	for _, name := range names {
		delete(m, name)
	}
	return Values{m: m}
}

// Names returns the option names in sorted order.
func (v Values) Names() []string {
	return slices.Sorted(maps.Keys(v.m))
}

// Map returns a copy of the values.
func (v Values) Map() map[string]string {
	return maps.Clone(v.m)
}

// String returns "name=value" pairs joined by ",".
func (v Values) String() string {
	names := v.Names()
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + v.m[name]
	}
	return strings.Join(pairs, ",")
}

func boolLiteral(b bool) string {
	if b {
		return True
	}
	return False
}
