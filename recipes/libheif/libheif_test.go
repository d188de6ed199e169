package libheif

import (
	"errors"
	"slices"
	"strings"
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

func TestVersionGatedOptions(t *testing.T) {
	tests := []struct {
		version string
		want    []string
	}{
		{"1.16.2", nil},
		{"1.17.6", []string{"with_jpeg", "with_openjpeg"}},
		{"1.18.2", []string{"with_jpeg", "with_openjpeg", "with_openjph"}},
		{"1.19.5", []string{"with_jpeg", "with_openjpeg", "with_openjph", "with_openh264"}},
	}
	gated := []string{"with_jpeg", "with_openjpeg", "with_openjph", "with_openh264"}
	for _, tt := range tests {
		schema := New().NormalizeOptions(recipe.Facts{Settings: recipe.Settings{OS: "Linux"}, Version: tt.version})
		for _, name := range gated {
			if got, want := schema.Has(name), slices.Contains(tt.want, name); got != want {
				t.Errorf("%s: %s present = %v, want %v", tt.version, name, got, want)
			}
		}
	}
}

func TestRequirementsFollowFeatures(t *testing.T) {
	s := recipe.Settings{OS: "Linux"}
	space := New().NormalizeOptions(recipe.Facts{Settings: s, Version: "1.19.5"}).Matrix()
	for _, combo := range space.OptionCombinations() {
		r, ctx := resolve(t, s, "1.19.5", combo)
		reqs, err := r.Requirements(ctx)
		if err != nil {
			t.Fatalf("Requirements() error = %v", err)
		}
		info, err := r.ExportMetadata(ctx)
		if err != nil {
			t.Fatalf("ExportMetadata() error = %v", err)
		}
		for _, c := range codecs {
			name, _, _ := strings.Cut(c.ref, "/")
			want := combo[c.name] == recipe.True
			if got := reqs.Has(name); got != want {
				t.Errorf("%v: %s present = %v, want %v", combo, name, got, want)
			}
			if got := slices.Contains(info.Requires, c.component); got != want {
				t.Errorf("%v: component %s present = %v, want %v", combo, c.component, got, want)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		version string
		cppstd  string
		wantErr bool
	}{
		{"1.18.2", "11", false},
		{"1.18.2", "98", true},
		{"1.19.5", "17", true},
		{"1.19.5", "20", false},
	}
	for _, tt := range tests {
		r, ctx := resolve(t, recipe.Settings{OS: "Linux", CppStd: tt.cppstd}, tt.version, nil)
		err := r.Validate(ctx)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s cppstd=%s: Validate() error = %v, wantErr %v", tt.version, tt.cppstd, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, recipe.ErrUnsupportedStandard) {
			t.Errorf("Validate() error = %v, want ErrUnsupportedStandard", err)
		}
	}
}

func TestGenerateConfig(t *testing.T) {
	r, ctx := resolve(t, recipe.Settings{OS: "Linux"}, "1.19.5", map[string]string{"with_libaomav1": "True"})
	cfg, err := r.GenerateConfig(ctx)
	if err != nil {
		t.Fatalf("GenerateConfig() error = %v", err)
	}
	for key, want := range map[string]bool{
		"WITH_AOM":                           true,
		"WITH_AOM_DECODER":                   true,
		"WITH_AOM_ENCODER":                   true,
		"WITH_LIBDE265":                      true,
		"WITH_OPENH264_DECODER":              false,
		"CMAKE_DISABLE_FIND_PACKAGE_Doxygen": true,
		"CMAKE_COMPILE_WARNING_AS_ERROR":     false,
	} {
		if got, _ := cfg.Lookup(key); got != recipe.BoolValue(want) {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
	if got := cfg.DepProperties["openh264"][recipe.PropCMakeFileName]; got != "OpenH264" {
		t.Errorf("openh264 cmake_file_name = %q, want OpenH264", got)
	}
}

func TestExportMetadata(t *testing.T) {
	s := recipe.Settings{OS: "Linux", LibCxx: "libstdc++11"}
	r, ctx := resolve(t, s, "1.18.2", nil)
	info, err := r.ExportMetadata(ctx)
	if err != nil {
		t.Fatalf("ExportMetadata() error = %v", err)
	}
	want := []string{"m", "pthread", "dl", "stdc++"}
	if !slices.Equal(info.SystemLibs, want) {
		t.Errorf("SystemLibs = %v, want %v", info.SystemLibs, want)
	}
	if !info.HasDefine("LIBHEIF_STATIC_BUILD") {
		t.Errorf("Defines = %v, want LIBHEIF_STATIC_BUILD", info.Defines)
	}
}
