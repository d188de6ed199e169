package formula

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/recipes/recipe"
	"github.com/goplus/xgo/parser"
	"github.com/goplus/xgo/parser/fsx"
	"github.com/goplus/xgo/parser/fsx/memfs"
	"github.com/goplus/xgo/token"
)

func TestLoadFS(t *testing.T) {
	t.Run("ValidRecipe", func(t *testing.T) {
		fsys := os.DirFS("testdata").(fs.ReadFileFS)
		r, err := LoadFS(fsys, "glog_recipe.gox")
		if err != nil {
			t.Fatalf("LoadFS failed: %v", err)
		}
		if r.Name != "glog" {
			t.Errorf("Name = %q, want %q", r.Name, "glog")
		}
		if r.System != recipe.CMake {
			t.Errorf("System = %q, want %q", r.System, recipe.CMake)
		}
		if r.PackageType != "library" {
			t.Errorf("PackageType = %q, want library", r.PackageType)
		}

		f := recipe.Facts{Settings: recipe.DefaultSettings(), Version: "0.7.1"}
		values, err := r.ResolveOptions(f, map[string]string{"with_gflags": "False"})
		if err != nil {
			t.Fatalf("ResolveOptions failed: %v", err)
		}
		ctx := recipe.NewContext(f, values)
		reqs, err := r.Requirements(ctx)
		if err != nil {
			t.Fatalf("Requirements failed: %v", err)
		}
		if reqs.Has("gflags") {
			t.Error("gflags required with with_gflags=False")
		}
		cfg, err := r.GenerateConfig(ctx)
		if err != nil {
			t.Fatalf("GenerateConfig failed: %v", err)
		}
		if v, ok := cfg.Lookup("WITH_GFLAGS"); !ok || v != recipe.BoolValue(false) {
			t.Errorf("WITH_GFLAGS = %v, %v; want False", v, ok)
		}
		info, err := r.ExportMetadata(ctx)
		if err != nil {
			t.Fatalf("ExportMetadata failed: %v", err)
		}
		if diff := cmp.Diff([]string{"glog"}, info.Libs); diff != "" {
			t.Errorf("Libs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		fsys := os.DirFS("testdata").(fs.ReadFileFS)
		if _, err := LoadFS(fsys, "nonexistent_recipe.gox"); err == nil {
			t.Error("LoadFS should return error for non-existent file")
		}
	})

	t.Run("InvalidSyntax", func(t *testing.T) {
		tmpDir := t.TempDir()
		os.WriteFile(filepath.Join(tmpDir, "invalid_recipe.gox"), []byte("this is not valid gox code !!!@@@"), 0644)
		fsys := os.DirFS(tmpDir).(fs.ReadFileFS)
		if _, err := LoadFS(fsys, "invalid_recipe.gox"); err == nil {
			t.Error("LoadFS should return error for invalid syntax")
		}
	})

	t.Run("NoID", func(t *testing.T) {
		fsys := os.DirFS("testdata").(fs.ReadFileFS)
		if _, err := LoadFS(fsys, "noid_recipe.gox"); err == nil {
			t.Error("LoadFS should reject a recipe without id")
		}
	})
}

func TestLoad(t *testing.T) {
	r, err := Load(filepath.Join("testdata", "glog_recipe.gox"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if r.Name != "glog" {
		t.Errorf("Name = %q, want %q", r.Name, "glog")
	}
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		file    string
		want    string
		wantErr bool
	}{
		{file: "glog_recipe.gox", want: "glog"},
		{file: "noid_recipe.gox", wantErr: true},
		{file: "missing_recipe.gox", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := NameOf(filepath.Join("testdata", tt.file))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NameOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassfile(t *testing.T) {
	t.Run("ixgo", func(t *testing.T) {
		content, err := os.ReadFile("testdata/glog_recipe.gox")
		if err != nil {
			t.Fatal(err)
		}
		ctx := ixgo.NewContext(0)
		xgoContext := xgobuild.NewContext(ctx)
		pkg, err := xgoContext.ParseFSDir(memfs.SingleFile("testdata", "glog_recipe.gox", string(content)), "testdata")
		if err != nil {
			t.Fatal(err)
		}
		source, err := pkg.ToSource()
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"recipe.RecipeF", "func (this *glog) MainEntry()", "func (this *glog) Main()"} {
			if !strings.Contains(string(source), want) {
				t.Errorf("generated source misses %q:\n%s", want, source)
			}
		}
	})

	t.Run("xgo", func(t *testing.T) {
		fset := token.NewFileSet()
		_, err := parser.ParseFSEntry(fset, fsx.Local, "testdata/glog_recipe.gox", nil, parser.Config{
			ClassKind: xgobuild.ClassKind,
		})
		if err != nil {
			t.Error(err)
		}
	})
}
