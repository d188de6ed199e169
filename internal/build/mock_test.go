package build

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goplus/recipes/pkgs/mod/versions"
)

// fakeTool implements Tool without running anything. It lays out a small
// source tree on Fetch and an install tree on Install.
type fakeTool struct {
	calls []string
	jobs  []*Job

	// sources are written by Fetch, installed files by Install.
	sources   map[string]string
	installed map[string]string

	// failAt makes the named call fail.
	failAt string
	err    error

	// onConfigure runs when Configure is called.
	onConfigure func(job *Job)
}

var _ Tool = (*fakeTool)(nil)

func newFakeTool() *fakeTool {
	return &fakeTool{
		sources: map[string]string{
			"CMakeLists.txt": "project(fake)\n",
			"COPYING":        "license\n",
		},
		installed: map[string]string{
			"include/glog/logging.h":           "#pragma once\n",
			"lib/libglog.a":                    "!<arch>\n",
			"lib/cmake/glog/glog-config.cmake": "",
			"lib/pkgconfig/libglog.pc":         "",
			"share/doc/glog/README":            "",
		},
	}
}

func (f *fakeTool) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failAt == call {
		return f.err
	}
	return nil
}

func writeFiles(root string, files map[string]string) error {
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTool) Fetch(ctx context.Context, src versions.Source, dir string) error {
	if err := f.record("fetch"); err != nil {
		return err
	}
	return writeFiles(dir, f.sources)
}

func (f *fakeTool) Patch(ctx context.Context, dir string, patches []string) error {
	return f.record("patch")
}

func (f *fakeTool) Configure(ctx context.Context, job *Job) error {
	f.jobs = append(f.jobs, job)
	if f.onConfigure != nil {
		f.onConfigure(job)
	}
	return f.record("configure")
}

func (f *fakeTool) Build(ctx context.Context, job *Job) error {
	return f.record("build")
}

func (f *fakeTool) Install(ctx context.Context, job *Job) error {
	if err := f.record("install"); err != nil {
		return err
	}
	return writeFiles(job.InstallDir, f.installed)
}
