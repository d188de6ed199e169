// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import "slices"

// FileOpKind is the kind of a file operation.
type FileOpKind int

const (
	// OpCopy copies files matching Pattern from Src to Dst.
	OpCopy FileOpKind = iota
	// OpRmdir removes the directory Dir recursively. A missing directory
	// is not an error.
	OpRmdir
	// OpRm removes files matching Pattern in Dir, except those in Keep.
	OpRm
)

func (k FileOpKind) String() string {
	switch k {
	case OpCopy:
		return "copy"
	case OpRmdir:
		return "rmdir"
	case OpRm:
		return "rm"
	}
	return "unknown"
}

// FileOp is one declarative file operation. Paths are slash separated and
// relative to the tree the operation applies to.
type FileOp struct {
	Kind      FileOpKind `json:"kind"`
	Pattern   string     `json:"pattern,omitempty"`
	Src       string     `json:"src,omitempty"`
	Dst       string     `json:"dst,omitempty"`
	Dir       string     `json:"dir,omitempty"`
	Recursive bool       `json:"recursive,omitempty"`
	Keep      []string   `json:"keep,omitempty"`
}

// LicenseDir is where license files are copied inside a package.
const LicenseDir = "licenses"

// Layout collects file operations on a source tree or a package tree.
//
// For a package, copies are relative to the source tree (Src) and the
// package (Dst) and run before install; removals run after install.
type Layout struct {
	ops []FileOp
}

// Copy copies files matching pattern from src to dst.
func (l *Layout) Copy(pattern, src, dst string) {
	l.ops = append(l.ops, FileOp{Kind: OpCopy, Pattern: pattern, Src: src, Dst: dst})
}

// CopyLicense copies files matching pattern in the source subdirectory src
// into LicenseDir.
func (l *Layout) CopyLicense(pattern, src string) {
	l.Copy(pattern, src, LicenseDir)
}

// Rmdir removes dir and everything below it.
func (l *Layout) Rmdir(dir string) {
	l.ops = append(l.ops, FileOp{Kind: OpRmdir, Dir: dir})
}

// Rm removes files matching pattern in dir, descending into
// subdirectories when recursive. Files named in keep are left alone.
func (l *Layout) Rm(pattern, dir string, recursive bool, keep ...string) {
	l.ops = append(l.ops, FileOp{Kind: OpRm, Pattern: pattern, Dir: dir, Recursive: recursive, Keep: keep})
}

// Ops returns the operations in declaration order.
func (l *Layout) Ops() []FileOp {
	return slices.Clone(l.ops)
}

// Copies returns the copy operations.
func (l *Layout) Copies() []FileOp {
	return l.filter(func(op FileOp) bool { return op.Kind == OpCopy })
}

// Removals returns the rmdir and rm operations.
func (l *Layout) Removals() []FileOp {
	return l.filter(func(op FileOp) bool { return op.Kind != OpCopy })
}

func (l *Layout) filter(keep func(FileOp) bool) []FileOp {
	var out []FileOp
	for _, op := range l.ops {
		if keep(op) {
			out = append(out, op)
		}
	}
	return out
}
