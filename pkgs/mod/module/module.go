// Package module defines the module.Version and module.Ref types along
// with support code.
package module

import (
	"fmt"
	"path/filepath"
	"strings"
)

// A Version represents a specific version of a recipe identified by its
// name.
type Version struct {
	Path    string // Recipe name, e.g. "glog"
	Version string // Version string, e.g. "0.7.1"
}

// String returns "path@version".
func (v Version) String() string {
	if v.Version == "" {
		return v.Path
	}
	return v.Path + "@" + v.Version
}

// A Ref is a requirement reference in the form "name/constraint", where
// constraint is an exact version or a bracketed range.
type Ref struct {
	Name       string
	Constraint string
}

// ParseRef parses "name/constraint".
func ParseRef(s string) (Ref, error) {
	name, constraint, ok := strings.Cut(s, "/")
	if !ok || name == "" || constraint == "" {
		return Ref{}, fmt.Errorf("invalid reference %q: expected name/version", s)
	}
	return Ref{Name: name, Constraint: constraint}, nil
}

// String returns "name/constraint".
func (r Ref) String() string {
	return r.Name + "/" + r.Constraint
}

// EscapePath returns the escaped form of the given recipe name as a valid
// file system path. It fails if the name is invalid.
func EscapePath(path string) (escaped string, err error) {
	return filepath.Localize(path)
}
