// Package files runs the file operations recipes declare on source and
// package trees.
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/goplus/recipes/recipe"
)

// Copy copies every file below src whose base name matches pattern into
// dst, keeping its path relative to src. It returns the number of files
// copied. A missing src copies nothing.
func Copy(pattern, src, dst string) (int, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return 0, fmt.Errorf("copy %s: %w", pattern, err)
	}
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == src {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); !ok {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Rmdir removes dir and everything below it. A missing dir is not an error.
func Rmdir(dir string) error {
	return os.RemoveAll(dir)
}

// Rm removes the files in dir whose base name matches pattern, descending
// into subdirectories when recursive. Files named in keep survive. It
// returns the number of files removed. A missing dir removes nothing.
func Rm(pattern, dir string, recursive bool, keep ...string) (int, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return 0, fmt.Errorf("rm %s: %w", pattern, err)
	}
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if slices.Contains(keep, name) {
			return nil
		}
		if ok, _ := filepath.Match(pattern, name); !ok {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// Apply runs op. Copies read below srcRoot and write below dstRoot;
// removals apply to dstRoot.
func Apply(op recipe.FileOp, srcRoot, dstRoot string) error {
	switch op.Kind {
	case recipe.OpCopy:
		_, err := Copy(op.Pattern, join(srcRoot, op.Src), join(dstRoot, op.Dst))
		return err
	case recipe.OpRmdir:
		return Rmdir(join(dstRoot, op.Dir))
	case recipe.OpRm:
		_, err := Rm(op.Pattern, join(dstRoot, op.Dir), op.Recursive, op.Keep...)
		return err
	}
	return fmt.Errorf("unknown file operation %v", op.Kind)
}

// ApplyAll runs ops in order and stops at the first failure.
func ApplyAll(ops []recipe.FileOp, srcRoot, dstRoot string) error {
	for _, op := range ops {
		if err := Apply(op, srcRoot, dstRoot); err != nil {
			return fmt.Errorf("%s %s: %w", op.Kind, opTarget(op), err)
		}
	}
	return nil
}

func opTarget(op recipe.FileOp) string {
	if op.Kind == recipe.OpRmdir {
		return op.Dir
	}
	return op.Pattern
}

func join(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
