package patch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const fixCMake = `--- a/CMakeLists.txt
+++ b/CMakeLists.txt
@@ -1,2 +1,2 @@
 project(glog)
-set(WITH_GTEST ON)
+set(WITH_GTEST OFF)
`

func TestApply(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "CMakeLists.txt"), []byte("project(glog)\nset(WITH_GTEST ON)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	patchFile := filepath.Join(t.TempDir(), "0001-gtest.patch")
	if err := os.WriteFile(patchFile, []byte(fixCMake), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Apply(context.Background(), src, []string{patchFile}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(src, "CMakeLists.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "project(glog)\nset(WITH_GTEST OFF)\n"; got != want {
		t.Errorf("patched file = %q, want %q", got, want)
	}

	// The same patch no longer applies.
	if err := Apply(context.Background(), src, []string{patchFile}); err == nil {
		t.Error("Apply() twice should fail")
	}
}

func TestApplyNone(t *testing.T) {
	if err := Apply(context.Background(), t.TempDir(), nil); err != nil {
		t.Errorf("Apply(nil) error = %v", err)
	}
}
