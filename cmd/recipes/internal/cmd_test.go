package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/recipes/internal/env"
	"github.com/goplus/recipes/recipe"
	"github.com/klauspost/compress/zip"
)

var linux = []string{"os=Linux", "arch=x86_64", "compiler=gcc", "compiler.cppstd=17", "build_type=Release"}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(env.WorkDirEnv, t.TempDir())
	for _, f := range []*invocationFlags{&inspectFlags, &matrixFlags, &planFlags, &makeFlags, &infoFlags} {
		f.reset()
	}
	infoFormat, infoPrefix = "text", "/usr/local"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func withSettings(args ...string) []string {
	for _, s := range linux {
		args = append(args, "-s", s)
	}
	return args
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, name := range []string{"glog", "gnuradio-volk", "c-blosc2"} {
		if !strings.Contains(out, name) {
			t.Errorf("list output misses %s:\n%s", name, out)
		}
	}
}

func TestInspect(t *testing.T) {
	out, err := execute(t, withSettings("inspect", "glog@0.7.1")...)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"BSD-3-Clause", "with_unwind", "with_gflags"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output misses %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "inspect", "glog@0.7.1", "-s", "os=Windows", "-s", "compiler=msvc")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if strings.Contains(out, "with_unwind") || strings.Contains(out, "fPIC") {
		t.Errorf("inspect on Windows lists options that do not apply:\n%s", out)
	}
}

func TestMatrix(t *testing.T) {
	out, err := execute(t, withSettings("matrix", "glog@0.7.1")...)
	if err != nil {
		t.Fatalf("matrix error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// shared, fPIC, with_gflags, with_threads, with_unwind
	if len(lines) != 32 {
		t.Errorf("matrix printed %d combinations, want 32:\n%s", len(lines), out)
	}
	for _, l := range lines {
		if !strings.Contains(l, "|") {
			t.Errorf("combination %q has no options part", l)
		}
	}
}

func TestPlan(t *testing.T) {
	out, err := execute(t, withSettings("plan", "glog@0.7.1", "-O", "with_unwind=False")...)
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	for _, want := range []string{
		"with_unwind=False",
		"gflags/2.2.2",
		"cmake/[>=3.22 <4]",
		"-DWITH_GFLAGS:BOOL=ON",
		"-DWITH_UNWIND:BOOL=OFF",
		"-DCMAKE_BUILD_TYPE=Release",
		"copy COPYING . -> licenses",
		"rmdir lib/cmake",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "libunwind") {
		t.Errorf("plan requires libunwind with with_unwind=False:\n%s", out)
	}
}

func TestPlanRejected(t *testing.T) {
	args := []string{"plan", "glog@0.7.1", "-s", "os=Linux", "-s", "compiler.cppstd=11"}
	_, err := execute(t, args...)
	if !errors.Is(err, recipe.ErrUnsupportedStandard) {
		t.Errorf("plan error = %v, want ErrUnsupportedStandard", err)
	}

	_, err = execute(t, withSettings("plan", "glog@0.7.1", "-O", "shared=maybe")...)
	if !errors.Is(err, recipe.ErrInvalidOption) {
		t.Errorf("plan error = %v, want ErrInvalidOption", err)
	}
}

func TestInfo(t *testing.T) {
	out, err := execute(t, withSettings("info", "glog@0.7.1", "--format", "flags", "--prefix", "/opt/glog")...)
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	for _, want := range []string{"-I/opt/glog/include", "-lglog", "-lpthread", "-DGLOG_USE_GLOG_EXPORT="} {
		if !strings.Contains(out, want) {
			t.Errorf("info flags misses %q: %s", want, out)
		}
	}

	out, err = execute(t, withSettings("info", "glog@0.7.1", "--format", "pkgconfig")...)
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	if !strings.Contains(out, "Name: libglog") || !strings.Contains(out, "Version: 0.7.1") {
		t.Errorf("info pkgconfig:\n%s", out)
	}

	out, err = execute(t, withSettings("info", "glog@0.7.1", "--format", "json")...)
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	var info recipe.CppInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("info json: %v\n%s", err, out)
	}
	if info.Property(recipe.PropCMakeTargetName) != "glog::glog" {
		t.Errorf("cmake_target_name = %q", info.Property(recipe.PropCMakeTargetName))
	}

	if _, err := execute(t, withSettings("info", "glog@0.7.1", "--format", "yaml")...); err == nil {
		t.Error("info with an unknown format should fail")
	}
}

func TestMakeNeedsData(t *testing.T) {
	if _, err := execute(t, withSettings("make", "glog@0.7.1")...); err == nil {
		t.Error("make without --data should fail")
	}
}

func TestOutputResult(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"include/glog/logging.h": "#pragma once\n",
		"lib/libglog.a":          "!<arch>\n",
		"licenses/COPYING":       "license\n",
	}
	for name, body := range files {
		p := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("Dir", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "out")
		if err := outputResult(src, dest); err != nil {
			t.Fatalf("outputResult() error = %v", err)
		}
		for name, body := range files {
			got, err := os.ReadFile(filepath.Join(dest, filepath.FromSlash(name)))
			if err != nil || string(got) != body {
				t.Errorf("%s = %q, %v; want %q", name, got, err, body)
			}
		}
	})

	t.Run("Zip", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "glog.zip")
		if err := outputResult(src, dest); err != nil {
			t.Fatalf("outputResult() error = %v", err)
		}
		zr, err := zip.OpenReader(dest)
		if err != nil {
			t.Fatalf("OpenReader() error = %v", err)
		}
		defer zr.Close()
		got := make(map[string]bool)
		for _, f := range zr.File {
			got[f.Name] = true
		}
		for name := range files {
			if !got[name] {
				t.Errorf("zip misses %s, has %v", name, got)
			}
		}
		if !got["include/glog/"] {
			t.Errorf("zip misses directory entries, has %v", got)
		}
	})
}
