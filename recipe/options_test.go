package recipe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSchema() Schema {
	return NewSchema(
		BoolOption("shared", false),
		BoolOption("fPIC", true).When(func(f Facts) bool { return f.Settings.OS != "Windows" }),
		EnumOption("simd", "avx2", None, "sse2", "avx2").When(func(f Facts) bool { return f.Settings.IsArch("x86", "x86_64") }),
		BoolOption("with_docs", false).PackageOnly(),
	)
}

func TestSchema_Normalize(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want []string
	}{
		{"linux x86_64", Settings{OS: "Linux", Arch: "x86_64"}, []string{"shared", "fPIC", "simd", "with_docs"}},
		{"windows x86_64", Settings{OS: "Windows", Arch: "x86_64"}, []string{"shared", "simd", "with_docs"}},
		{"macos armv8", Settings{OS: "Macos", Arch: "armv8"}, []string{"shared", "fPIC", "with_docs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testSchema().Normalize(Facts{Settings: tt.s}).Names()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchema_NormalizeIdempotent(t *testing.T) {
	s := testSchema()
	f := Facts{Settings: Settings{OS: "Windows", Arch: "armv8"}}
	once := s.Normalize(f)
	twice := once.Normalize(f)
	if diff := cmp.Diff(once.Names(), twice.Names()); diff != "" {
		t.Errorf("Normalize is not idempotent (-once +twice):\n%s", diff)
	}
	if s.Len() != 4 {
		t.Errorf("declared schema changed: Len() = %d, want 4", s.Len())
	}
}

func TestSchema_Resolve(t *testing.T) {
	s := testSchema().Normalize(Facts{Settings: Settings{OS: "Linux", Arch: "x86_64"}})

	v, err := s.Resolve(map[string]string{"shared": "true", "simd": "sse2"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got, want := v.String(), "fPIC=True,shared=True,simd=sse2,with_docs=False"; got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}

	if _, err := s.Resolve(map[string]string{"simd": "neon"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("Resolve(simd=neon) error = %v, want ErrInvalidOption", err)
	}

	win := testSchema().Normalize(Facts{Settings: Settings{OS: "Windows", Arch: "x86_64"}})
	_, err = win.Resolve(map[string]string{"fPIC": "True"})
	var oe *OptionError
	if !errors.As(err, &oe) || oe.Name != "fPIC" {
		t.Errorf("Resolve(fPIC) on Windows error = %v, want missing fPIC", err)
	}
	if !errors.Is(err, ErrMissingOption) {
		t.Errorf("errors.Is(%v, ErrMissingOption) = false", err)
	}
}

func TestNewSchema_Panics(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"duplicate", []Option{BoolOption("shared", false), BoolOption("shared", true)}},
		{"bad default", []Option{EnumOption("simd", "neon", "sse2", "avx2")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("NewSchema() should panic")
				}
			}()
			NewSchema(tt.opts...)
		})
	}
}

func TestValues(t *testing.T) {
	v := NewValues(map[string]string{"shared": True, "with_zlib": "zlib"})

	if !v.Bool("shared") {
		t.Error("Bool(shared) = false, want true")
	}
	if v.BoolSafe("fPIC") {
		t.Error("BoolSafe(fPIC) = true, want false")
	}
	if got := v.GetSafe("fPIC", False); got != False {
		t.Errorf("GetSafe(fPIC) = %q, want %q", got, False)
	}

	w := v.Without("shared", "absent")
	if w.Has("shared") || !v.Has("shared") {
		t.Error("Without() must return a copy without the names")
	}

	defer func() {
		e := recover()
		oe, ok := e.(*OptionError)
		if !ok || oe.Name != "fPIC" {
			t.Errorf("Get(fPIC) panic = %v, want *OptionError{fPIC}", e)
		}
	}()
	v.Get("fPIC")
}
