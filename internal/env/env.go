package env

import (
	"os"
	"path/filepath"
)

// WorkDirEnv overrides the working directory when set.
const WorkDirEnv = "RECIPES_HOME"

// WorkDir returns the root of all build state: packages, build trees and
// downloaded sources.
func WorkDir() (string, error) {
	if dir := os.Getenv(WorkDirEnv); dir != "" {
		return dir, nil
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".recipes"), nil
}

// DownloadDir returns the directory caching source archives, creating it
// when missing.
func DownloadDir() (string, error) {
	return subDir("downloads")
}

func subDir(name string) (string, error) {
	root, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
