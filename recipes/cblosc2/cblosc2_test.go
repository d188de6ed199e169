package cblosc2

import (
	"errors"
	"testing"

	"github.com/goplus/recipes/recipe"
)

func resolve(t *testing.T, s recipe.Settings, version string, overrides map[string]string) (*recipe.Recipe, *recipe.Context) {
	t.Helper()
	r := New()
	f := recipe.Facts{Settings: s, Version: version}
	v, err := r.ResolveOptions(f, overrides)
	if err != nil {
		t.Fatalf("ResolveOptions() error = %v", err)
	}
	return r, recipe.NewContext(f, v)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		arch string
		want bool
	}{
		{"x86", true},
		{"x86_64", true},
		{"armv8", false},
		{"wasm", false},
	}
	for _, tt := range tests {
		schema := New().NormalizeOptions(recipe.Facts{Settings: recipe.Settings{OS: "Linux", Arch: tt.arch}})
		if got := schema.Has("simd_intrinsics"); got != tt.want {
			t.Errorf("%s: simd_intrinsics present = %v, want %v", tt.arch, got, tt.want)
		}
	}
}

func TestZlibRequirement(t *testing.T) {
	tests := []struct {
		with   string
		dep    string
		compat string
	}{
		{recipe.None, "", ""},
		{"zlib", "zlib", ""},
		{"zlib-ng", "zlib-ng", recipe.False},
		{"zlib-ng-compat", "zlib-ng", recipe.True},
	}
	for _, tt := range tests {
		r, ctx := resolve(t, recipe.Settings{OS: "Linux", Arch: "x86_64"}, "2.15.2", map[string]string{"with_zlib": tt.with})
		reqs, err := r.Requirements(ctx)
		if err != nil {
			t.Fatalf("Requirements() error = %v", err)
		}
		if reqs.Has("zlib") != (tt.dep == "zlib") || reqs.Has("zlib-ng") != (tt.dep == "zlib-ng") {
			t.Errorf("with_zlib=%s: requirements = %v, want %q", tt.with, reqs.Names(), tt.dep)
		}
		if req, ok := reqs.Lookup("zlib-ng"); ok && req.Options["zlib_compat"] != tt.compat {
			t.Errorf("with_zlib=%s: zlib_compat = %q, want %q", tt.with, req.Options["zlib_compat"], tt.compat)
		}

		cfg, err := r.GenerateConfig(ctx)
		if err != nil {
			t.Fatalf("GenerateConfig() error = %v", err)
		}
		if got, _ := cfg.Lookup("DEACTIVATE_ZLIB"); got != recipe.BoolValue(tt.with == recipe.None) {
			t.Errorf("with_zlib=%s: DEACTIVATE_ZLIB = %v", tt.with, got)
		}
		if _, ok := cfg.Defines["ZLIB_COMPAT"]; ok != (tt.with == "zlib-ng-compat") {
			t.Errorf("with_zlib=%s: ZLIB_COMPAT defined = %v", tt.with, ok)
		}
	}
}

func TestValidateAVX512(t *testing.T) {
	tests := []struct {
		version string
		arch    string
		wantErr bool
	}{
		{"2.10.5", "x86_64", true},
		{"2.11.0", "x86_64", false},
	}
	for _, tt := range tests {
		r, ctx := resolve(t, recipe.Settings{OS: "Linux", Arch: tt.arch}, tt.version, map[string]string{"simd_intrinsics": "avx512"})
		err := r.Validate(ctx)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s %s: Validate() error = %v, wantErr %v", tt.version, tt.arch, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, recipe.ErrInvalidConfiguration) {
			t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
		}
	}
}

func TestGenerateConfig(t *testing.T) {
	tests := []struct {
		name      string
		s         recipe.Settings
		overrides map[string]string
		want      map[string]bool
	}{
		{
			name:      "x86_64 sse2 shared",
			s:         recipe.Settings{OS: "Linux", Arch: "x86_64"},
			overrides: map[string]string{"simd_intrinsics": "sse2", "shared": "True"},
			want: map[string]bool{
				"DEACTIVATE_AVX2":   true,
				"DEACTIVATE_AVX512": true,
				"BUILD_SHARED":      true,
				"BUILD_STATIC":      false,
				"WITH_ZLIB_OPTIM":   true,
			},
		},
		{
			name: "wasm default",
			s:    recipe.Settings{OS: "Emscripten", Arch: "wasm"},
			want: map[string]bool{
				"DEACTIVATE_AVX2":   true,
				"DEACTIVATE_AVX512": true,
				"DEACTIVATE_LZ4":    false,
				"BUILD_PLUGINS":     true,
				"WITH_ZLIB_OPTIM":   false,
			},
		},
		{
			name: "x86_64 default",
			s:    recipe.Settings{OS: "Linux", Arch: "x86_64"},
			want: map[string]bool{
				"DEACTIVATE_AVX2":   false,
				"DEACTIVATE_AVX512": true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ctx := resolve(t, tt.s, "2.15.2", tt.overrides)
			cfg, err := r.GenerateConfig(ctx)
			if err != nil {
				t.Fatalf("GenerateConfig() error = %v", err)
			}
			for key, want := range tt.want {
				if got, _ := cfg.Lookup(key); got != recipe.BoolValue(want) {
					t.Errorf("%s = %v, want %v", key, got, want)
				}
			}
		})
	}
}

func TestSourceFixups(t *testing.T) {
	r, ctx := resolve(t, recipe.Settings{OS: "Linux", Arch: "x86_64"}, "2.15.2", nil)
	l, err := r.SourceFixups(ctx)
	if err != nil {
		t.Fatalf("SourceFixups() error = %v", err)
	}
	ops := l.Ops()
	if len(ops) != 1 || ops[0].Pattern != "Find*.cmake" || ops[0].Keep[0] != "FindSIMD.cmake" {
		t.Errorf("SourceFixups() = %+v", ops)
	}
}

func TestPackageID(t *testing.T) {
	r := New()
	v := recipe.NewValues(map[string]string{"shared": recipe.False})
	a := r.PackageID(recipe.Settings{OS: "Linux", CppStd: "17", LibCxx: "libstdc++11"}, v)
	b := r.PackageID(recipe.Settings{OS: "Linux"}, v)
	if a.String() != b.String() {
		t.Errorf("PackageID() depends on C++ settings: %q != %q", a.String(), b.String())
	}
}

func TestExportMetadata(t *testing.T) {
	r, ctx := resolve(t, recipe.Settings{OS: "Windows", Arch: "x86_64", Compiler: "msvc"}, "2.15.2", nil)
	info, err := r.ExportMetadata(ctx)
	if err != nil {
		t.Fatalf("ExportMetadata() error = %v", err)
	}
	if len(info.Libs) != 1 || info.Libs[0] != "libblosc2" {
		t.Errorf("Libs = %v, want [libblosc2]", info.Libs)
	}
	if len(info.SystemLibs) != 0 {
		t.Errorf("SystemLibs = %v, want none on Windows", info.SystemLibs)
	}
}
