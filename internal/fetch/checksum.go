package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/goplus/recipes/pkgs/mod/versions"
	"lukechampine.com/blake3"
)

// ErrChecksum is returned when a downloaded file does not match its
// declared digest.
var ErrChecksum = errors.New("checksum mismatch")

func fileDigest(path string, h hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256 returns the hex sha256 digest of the file at path.
func SHA256(path string) (string, error) {
	return fileDigest(path, sha256.New())
}

// BLAKE3 returns the hex 256-bit blake3 digest of the file at path.
func BLAKE3(path string) (string, error) {
	return fileDigest(path, blake3.New(32, nil))
}

// Verify checks the file at path against the digests of src. Empty
// digests are not checked.
func Verify(path string, src versions.Source) error {
	check := func(name, want string, sum func(string) (string, error)) error {
		if want == "" {
			return nil
		}
		got, err := sum(path)
		if err != nil {
			return err
		}
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("%w: %s %s: got %s, want %s", ErrChecksum, name, path, got, want)
		}
		return nil
	}
	if err := check("sha256", src.SHA256, SHA256); err != nil {
		return err
	}
	return check("blake3", src.BLAKE3, BLAKE3)
}

// hashString returns a short stable name for s.
func hashString(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
