package module

import "testing"

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		want    Ref
		wantErr bool
	}{
		{"gflags/2.2.2", Ref{Name: "gflags", Constraint: "2.2.2"}, false},
		{"cmake/[>=3.22 <4]", Ref{Name: "cmake", Constraint: "[>=3.22 <4]"}, false},
		{"msys2/cci.latest", Ref{Name: "msys2", Constraint: "cci.latest"}, false},
		{"gflags", Ref{}, true},
		{"/1.0", Ref{}, true},
		{"gflags/", Ref{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRef(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("Ref.String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{Path: "glog", Version: "0.7.1"}).String(); got != "glog@0.7.1" {
		t.Errorf("String() = %q, want %q", got, "glog@0.7.1")
	}
	if got := (Version{Path: "glog"}).String(); got != "glog" {
		t.Errorf("String() = %q, want %q", got, "glog")
	}
}

func TestEscapePath(t *testing.T) {
	if _, err := EscapePath("gnuradio-volk"); err != nil {
		t.Errorf("EscapePath(gnuradio-volk) error = %v", err)
	}
	if _, err := EscapePath("../escape"); err == nil {
		t.Error("EscapePath(../escape) should fail")
	}
}
