package volk

import (
	"errors"
	"testing"

	"github.com/goplus/recipes/recipe"
)

func resolve(t *testing.T, s recipe.Settings, overrides map[string]string) (*recipe.Recipe, *recipe.Context) {
	t.Helper()
	r := New()
	f := recipe.Facts{Settings: s, Version: "3.1.2"}
	v, err := r.ResolveOptions(f, overrides)
	if err != nil {
		t.Fatalf("ResolveOptions() error = %v", err)
	}
	return r, recipe.NewContext(f, v)
}

func TestNormalize(t *testing.T) {
	for _, os := range []string{"Linux", "Macos", "Windows"} {
		schema := New().NormalizeOptions(recipe.Facts{Settings: recipe.Settings{OS: os}})
		if got, want := schema.Has("fPIC"), os != "Windows"; got != want {
			t.Errorf("%s: fPIC present = %v, want %v", os, got, want)
		}
	}
}

func TestRequirementsFollowFeatures(t *testing.T) {
	s := recipe.Settings{OS: "Linux"}
	space := New().NormalizeOptions(recipe.Facts{Settings: s}).Matrix()
	for _, combo := range space.OptionCombinations() {
		r, ctx := resolve(t, s, combo)
		reqs, err := r.Requirements(ctx)
		if err != nil {
			t.Fatalf("%v: Requirements() error = %v", combo, err)
		}
		cpu, ok := reqs.Lookup("cpu_features")
		if want := combo["with_cpu_features"] == recipe.True; ok != want {
			t.Errorf("%v: cpu_features present = %v, want %v", combo, ok, want)
		}
		if ok && cpu.Options["shared"] != combo["shared"] {
			t.Errorf("%v: cpu_features shared = %q, want %q", combo, cpu.Options["shared"], combo["shared"])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       recipe.Settings
		wantErr bool
	}{
		{"no explicit standard", recipe.Settings{OS: "Linux", Compiler: "gcc", CompilerVersion: "9"}, false},
		{"explicit 14", recipe.Settings{OS: "Linux", CppStd: "14"}, true},
		{"explicit 17", recipe.Settings{OS: "Linux", CppStd: "17"}, false},
		{"explicit gnu20", recipe.Settings{OS: "Linux", CppStd: "gnu20"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ctx := resolve(t, tt.s, nil)
			err := r.Validate(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, recipe.ErrUnsupportedStandard) {
				t.Errorf("Validate() error = %v, want ErrUnsupportedStandard", err)
			}
		})
	}
}

func TestGenerateConfig(t *testing.T) {
	r, ctx := resolve(t, recipe.Settings{OS: "Linux"}, map[string]string{"with_cpu_features": "False"})
	cfg, err := r.GenerateConfig(ctx)
	if err != nil {
		t.Fatalf("GenerateConfig() error = %v", err)
	}
	for key, want := range map[string]bool{
		"VOLK_CPU_FEATURES": false,
		"ENABLE_ORC":        false,
		"ENABLE_TESTING":    false,
		"ENABLE_PROFILING":  false,
		"ENABLE_MODTOOL":    false,
	} {
		if got, _ := cfg.Lookup(key); got != recipe.BoolValue(want) {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
}

func TestExportMetadata(t *testing.T) {
	r, ctx := resolve(t, recipe.Settings{OS: "Windows"}, nil)
	info, err := r.ExportMetadata(ctx)
	if err != nil {
		t.Fatalf("ExportMetadata() error = %v", err)
	}
	if len(info.Libs) != 1 || info.Libs[0] != "volk" {
		t.Errorf("Libs = %v, want [volk]", info.Libs)
	}
	if got := info.Property(recipe.PropCMakeTargetName); got != "volk::volk" {
		t.Errorf("cmake_target_name = %q, want volk::volk", got)
	}
	if got := info.Property(recipe.PropCMakeFileName); got != "Volk" {
		t.Errorf("cmake_file_name = %q, want Volk", got)
	}
}
