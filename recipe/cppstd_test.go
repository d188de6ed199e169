package recipe

import (
	"errors"
	"testing"
)

func TestDefaultCppStd(t *testing.T) {
	tests := []struct {
		compiler, version, want string
	}{
		{"gcc", "5", "gnu98"},
		{"gcc", "9", "gnu14"},
		{"gcc", "13", "gnu17"},
		{"clang", "14", "gnu14"},
		{"clang", "17", "gnu17"},
		{"apple-clang", "15", "gnu98"},
		{"msvc", "193", "14"},
		{"msvc", "180", ""},
		{"gcc", "", ""},
		{"icc", "2021", ""},
	}
	for _, tt := range tests {
		s := Settings{Compiler: tt.compiler, CompilerVersion: tt.version}
		if got := DefaultCppStd(s); got != tt.want {
			t.Errorf("DefaultCppStd(%s %s) = %q, want %q", tt.compiler, tt.version, got, tt.want)
		}
	}
}

func TestCheckMinCppStd(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		min     string
		wantErr bool
	}{
		{"explicit 11 below 14", Settings{CppStd: "11"}, "14", true},
		{"explicit gnu14", Settings{CppStd: "gnu14"}, "14", false},
		{"explicit 20 above 17", Settings{CppStd: "20"}, "17", false},
		{"default gcc 13", Settings{Compiler: "gcc", CompilerVersion: "13"}, "14", false},
		{"default gcc 5", Settings{Compiler: "gcc", CompilerVersion: "5"}, "14", true},
		{"unknown toolchain", Settings{}, "20", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMinCppStd(tt.s, tt.min)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckMinCppStd() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrUnsupportedStandard) {
				t.Errorf("errors.Is(%v, ErrUnsupportedStandard) = false", err)
			}
			var se *StandardError
			if !errors.As(err, &se) || se.Want != tt.min {
				t.Errorf("CheckMinCppStd() error = %#v, want StandardError{Want: %q}", err, tt.min)
			}
		})
	}
}
