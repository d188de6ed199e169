package fetch

import (
	"archive/tar"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/qiniu/x/log"
	"github.com/ulikunitz/xz"
)

// ErrUnsupportedArchive is returned for archive names Extract cannot handle.
var ErrUnsupportedArchive = errors.New("unsupported archive format")

var archiveExts = []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar.zst", ".tar", ".zip"}

// archiveExt returns the archive extension of name, or "".
func archiveExt(name string) string {
	for _, ext := range archiveExts {
		if strings.HasSuffix(name, ext) {
			return ext
		}
	}
	return ""
}

// Extract unpacks archive into dest. When every entry lives below a single
// top-level directory, that directory is stripped. dest is replaced.
func Extract(archive, dest string) error {
	ext := archiveExt(archive)
	if ext == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedArchive, archive)
	}
	staging := dest + ".extract"
	if err := os.RemoveAll(staging); err != nil {
		return err
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	var err error
	if ext == ".zip" {
		err = unzip(archive, staging)
	} else {
		err = untar(archive, ext, staging)
	}
	if err != nil {
		return err
	}

	root, err := strippedRoot(staging)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dest); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.Rename(root, dest)
}

// strippedRoot returns the single top-level directory of dir, or dir
// itself when there is none.
func strippedRoot(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		log.Debug("strip root", entries[0].Name())
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

// safeJoin joins name to dest and rejects paths escaping dest.
func safeJoin(dest, name string) (string, error) {
	p := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, p) {
		return "", fmt.Errorf("illegal file path in archive: %s", name)
	}
	return p, nil
}

// within reports whether p is dir or lies below it.
func within(dir, p string) bool {
	return p == dir || strings.HasPrefix(p, dir+string(os.PathSeparator))
}

// linkGuard keeps tar entries from reaching outside the extraction root
// through symlinks created by earlier entries.
type linkGuard struct {
	root string // extraction root with symlinks resolved
}

func newLinkGuard(dest string) (*linkGuard, error) {
	root, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return nil, err
	}
	return &linkGuard{root: root}, nil
}

// checkParent rejects target when its nearest existing ancestor, with
// symlinks resolved, is outside the root.
func (g *linkGuard) checkParent(name, target string) error {
	dir := filepath.Dir(target)
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			if !within(g.root, resolved) {
				return fmt.Errorf("illegal file path in archive: %s goes through a symlink outside the root", name)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return err
		}
		dir = parent
	}
}

// checkLink rejects a symlink at target whose destination is absolute or
// resolves outside the root.
func (g *linkGuard) checkLink(name, target, linkname string) error {
	if linkname == "" || filepath.IsAbs(linkname) || filepath.VolumeName(linkname) != "" {
		return fmt.Errorf("illegal symlink in archive: %s -> %s", name, linkname)
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return err
	}
	// Resolve before cleaning so ".." applies after earlier symlinks.
	dst := parent + string(os.PathSeparator) + filepath.FromSlash(linkname)
	if resolved, err := filepath.EvalSymlinks(dst); err == nil {
		dst = resolved
	} else {
		dst = filepath.Clean(dst)
	}
	if !within(g.root, dst) {
		return fmt.Errorf("illegal symlink in archive: %s -> %s points outside the root", name, linkname)
	}
	return nil
}

func untar(archive, ext, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	switch ext {
	case ".tar.gz", ".tgz":
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip reader for %s: %w", archive, err)
		}
		defer gz.Close()
		r = gz
	case ".tar.bz2":
		r = bzip2.NewReader(f)
	case ".tar.xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("xz reader for %s: %w", archive, err)
		}
		r = xr
	case ".tar.zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("zstd reader for %s: %w", archive, err)
		}
		defer zr.Close()
		r = zr
	}

	guard, err := newLinkGuard(dest)
	if err != nil {
		return err
	}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", archive, err)
		}
		if hdr.Typeflag == tar.TypeXHeader || hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		if err := guard.checkParent(hdr.Name, target); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			// A file entry replaces a symlink of the same name instead of
			// writing through it.
			if fi, err := os.Lstat(target); err == nil && fi.Mode()&os.ModeSymlink != 0 {
				if err := os.Remove(target); err != nil {
					return err
				}
			}
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := guard.checkLink(hdr.Name, target, hdr.Linkname); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("symlink %s -> %s: %w", target, hdr.Linkname, err)
			}
		default:
			log.Debugf("skip tar entry %s of type %c", hdr.Name, hdr.Typeflag)
		}
	}
}

func unzip(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(target, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
