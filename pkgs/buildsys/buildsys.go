package buildsys

import (
	"context"
	"io"

	"github.com/goplus/recipes/recipe"
)

// BuildSystem captures shared capabilities of build helpers (CMake, Autotools, etc).
// It keeps the common lifecycle and dependency/env setup; implementations add their own extras.
type BuildSystem interface {
	// Use injects an installed dependency rooted at root into the environment.
	Use(root string)

	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Output routes the tool's stdout and stderr.
	Output(stdout, stderr io.Writer)

	// Apply translates a generated toolchain configuration into tool
	// arguments.
	Apply(cfg recipe.Config) error

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
