// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/goplus/recipes/pkgs/mod/constraint"
	"github.com/goplus/recipes/pkgs/mod/module"
)

// Requirement is one upstream dependency.
type Requirement struct {
	Ref        module.Ref            `json:"ref"`
	Constraint constraint.Constraint `json:"-"`

	// TransitiveHeaders and TransitiveLibs make the dependency's headers
	// and libraries visible to consumers of this package.
	TransitiveHeaders bool `json:"transitive_headers,omitempty"`
	TransitiveLibs    bool `json:"transitive_libs,omitempty"`

	// Options overrides option values of the dependency.
	Options map[string]string `json:"options,omitempty"`

	// Tool marks a build-time tool requirement.
	Tool bool `json:"tool,omitempty"`
}

// Name returns the dependency name.
func (r Requirement) Name() string { return r.Ref.Name }

func (r Requirement) String() string { return r.Ref.String() }

// ReqOption customizes a Requirement.
type ReqOption func(*Requirement)

// TransitiveHeaders propagates the dependency's headers to consumers.
func TransitiveHeaders() ReqOption {
	return func(r *Requirement) { r.TransitiveHeaders = true }
}

// TransitiveLibs propagates the dependency's libraries to consumers.
func TransitiveLibs() ReqOption {
	return func(r *Requirement) { r.TransitiveLibs = true }
}

// WithOption sets an option of the dependency.
func WithOption(name, value string) ReqOption {
	return func(r *Requirement) {
		if r.Options == nil {
			r.Options = make(map[string]string)
		}
		r.Options[name] = value
	}
}

// LinkLike makes the dependency's shared option mirror the depending
// package's own, so both sides agree on linkage.
func LinkLike(v Values) ReqOption {
	return WithOption("shared", boolLiteral(v.Bool("shared")))
}

// -----------------------------------------------------------------------------

// Requirements collects the dependencies declared by a recipe.
type Requirements struct {
	reqs []Requirement
	errs []error
}

// Require declares a library dependency. ref is "name/version" or
// "name/[range]".
func (p *Requirements) Require(ref string, opts ...ReqOption) {
	p.add(ref, false, opts)
}

// ToolRequire declares a build-time tool dependency.
func (p *Requirements) ToolRequire(ref string, opts ...ReqOption) {
	p.add(ref, true, opts)
}

func (p *Requirements) add(ref string, tool bool, opts []ReqOption) {
	r, err := module.ParseRef(ref)
	if err != nil {
		p.errs = append(p.errs, err)
		return
	}
	c, err := constraint.Parse(r.Constraint)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("requirement %s: %w", ref, err))
		return
	}
	for _, prev := range p.reqs {
		if prev.Ref.Name == r.Name && prev.Tool == tool {
			p.errs = append(p.errs, fmt.Errorf("requirement %s declared twice", r.Name))
			return
		}
	}
	req := Requirement{Ref: r, Constraint: c, Tool: tool}
	for _, opt := range opts {
		opt(&req)
	}
	p.reqs = append(p.reqs, req)
}

// Err returns the errors recorded while declaring requirements.
func (p *Requirements) Err() error {
	return errors.Join(p.errs...)
}

// Set returns the declared requirements.
func (p *Requirements) Set() RequirementSet {
	out := make([]Requirement, len(p.reqs))
	for i, r := range p.reqs {
		r.Options = maps.Clone(r.Options)
		out[i] = r
	}
	return RequirementSet{reqs: out}
}

// RequirementSet is the immutable result of the requirements hook.
type RequirementSet struct {
	reqs []Requirement
}

// All returns library and tool requirements in declaration order.
func (s RequirementSet) All() []Requirement {
	return slices.Clone(s.reqs)
}

// Libs returns the library requirements.
func (s RequirementSet) Libs() []Requirement {
	return s.filter(false)
}

// Tools returns the tool requirements.
func (s RequirementSet) Tools() []Requirement {
	return s.filter(true)
}

func (s RequirementSet) filter(tool bool) []Requirement {
	var out []Requirement
	for _, r := range s.reqs {
		if r.Tool == tool {
			out = append(out, r)
		}
	}
	return out
}

// Lookup returns the library requirement on name.
func (s RequirementSet) Lookup(name string) (Requirement, bool) {
	for _, r := range s.reqs {
		if !r.Tool && r.Ref.Name == name {
			return r, true
		}
	}
	return Requirement{}, false
}

// Has reports whether there is a library requirement on name.
func (s RequirementSet) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names returns the library requirement names in declaration order.
func (s RequirementSet) Names() []string {
	libs := s.Libs()
	names := make([]string, len(libs))
	for i, r := range libs {
		names[i] = r.Ref.Name
	}
	return names
}
