package buildsys

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Environ is a set of environment overrides passed to external tools. The
// process environment is never modified.
type Environ map[string]string

// Set sets key to value.
func (e Environ) Set(key, value string) {
	e[key] = value
}

func (e Environ) get(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// Prepend prepends a value to a path list variable using the appropriate separator.
func (e Environ) Prepend(key, value string) {
	current := e.get(key)
	if current == "" {
		e[key] = value
		return
	}
	e[key] = value + string(os.PathListSeparator) + current
}

// AppendFlag appends a flag to a variable (space-separated).
func (e Environ) AppendFlag(key, flag string) {
	current := e.get(key)
	if current == "" {
		e[key] = flag
		return
	}
	e[key] = strings.TrimSpace(current + " " + flag)
}

// UseRoot makes the package installed at root visible to pkg-config, CMake
// and the compiler.
func (e Environ) UseRoot(root string) {
	includeDir := filepath.Join(root, "include")
	libDir := filepath.Join(root, "lib")
	pkgconfigDir := filepath.Join(root, "lib", "pkgconfig")

	exists := func(dir string) bool {
		_, err := os.Stat(dir)
		return err == nil
	}

	if exists(pkgconfigDir) {
		e.Prepend("PKG_CONFIG_PATH", pkgconfigDir)
	}
	if exists(root) {
		e.Prepend("CMAKE_PREFIX_PATH", root)
	}
	if exists(includeDir) {
		e.Prepend("CMAKE_INCLUDE_PATH", includeDir)
	}
	if exists(libDir) {
		e.Prepend("CMAKE_LIBRARY_PATH", libDir)
	}

	if runtime.GOOS == "windows" {
		if exists(includeDir) {
			e.Prepend("INCLUDE", includeDir)
		}
		if exists(libDir) {
			e.Prepend("LIB", libDir)
		}
		return
	}
	if exists(includeDir) {
		e.AppendFlag("CPPFLAGS", "-I"+includeDir)
	}
	if exists(libDir) {
		e.AppendFlag("LDFLAGS", "-L"+libDir)
	}
}

// Merge returns base with the overrides applied, sorted by key.
func (e Environ) Merge(base []string) []string {
	envMap := make(map[string]string, len(base)+len(e))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range e {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

// Cmd describes one external tool invocation.
type Cmd struct {
	Bin    string
	Args   []string
	Dir    string
	Env    Environ
	Stdout io.Writer
	Stderr io.Writer
}

// Run runs c and waits for it. Canceling ctx kills the process.
func Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if len(c.Env) > 0 {
		cmd.Env = c.Env.Merge(os.Environ())
	}
	return cmd.Run()
}
