// Package lockedfile provides a mutex backed by an OS file lock, for
// exclusion across processes.
package lockedfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// A Mutex is a mutual exclusion lock on the file at Path.
type Mutex struct {
	Path string
}

// MutexAt returns a Mutex whose lock file is path.
func MutexAt(path string) *Mutex {
	return &Mutex{Path: path}
}

// Lock blocks until the lock is held and returns the function releasing it.
func (mu *Mutex) Lock() (unlock func(), err error) {
	if mu.Path == "" {
		return nil, fmt.Errorf("lockedfile: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(mu.Path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(mu.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", mu.Path, err)
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}

// TryLock is Lock without blocking. It reports false when another holder
// has the lock.
func (mu *Mutex) TryLock() (unlock func(), ok bool, err error) {
	if err := os.MkdirAll(filepath.Dir(mu.Path), 0o755); err != nil {
		return nil, false, err
	}
	f, err := os.OpenFile(mu.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, false, err
	}
	locked, err := tryLockFile(f)
	if err != nil || !locked {
		f.Close()
		return nil, false, err
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, true, nil
}
