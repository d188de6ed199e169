package lockedfile

import (
	"path/filepath"
	"testing"
)

func TestMutex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg", ".lock")
	mu := MutexAt(path)

	unlock, err := mu.Lock()
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	if _, ok, err := MutexAt(path).TryLock(); err != nil || ok {
		t.Fatalf("TryLock() while held = %v, %v, want false, nil", ok, err)
	}

	unlock()

	unlock2, ok, err := MutexAt(path).TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock() after unlock = %v, %v, want true, nil", ok, err)
	}
	unlock2()
}

func TestMutexEmptyPath(t *testing.T) {
	if _, err := MutexAt("").Lock(); err == nil {
		t.Error("Lock() with empty path should fail")
	}
}
