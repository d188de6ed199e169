package build

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goplus/recipes/internal/fetch"
	"github.com/goplus/recipes/internal/patch"
	"github.com/goplus/recipes/pkgs/buildsys"
	"github.com/goplus/recipes/pkgs/buildsys/autotools"
	"github.com/goplus/recipes/pkgs/buildsys/cmake"
	"github.com/goplus/recipes/pkgs/mod/versions"
	"github.com/goplus/recipes/recipe"
)

// Job is one package build handed to a Tool.
type Job struct {
	Recipe     string
	Version    string
	Settings   recipe.Settings
	Config     recipe.Config
	SourceDir  string
	BuildDir   string
	InstallDir string

	// Deps maps dependency names to their installed roots.
	Deps map[string]string

	helper buildsys.BuildSystem
}

// Tool performs the external effects of a build. The host never touches
// a source or build tree except through a Tool and the declared file
// operations.
type Tool interface {
	Fetch(ctx context.Context, src versions.Source, dir string) error
	Patch(ctx context.Context, dir string, patches []string) error
	Configure(ctx context.Context, job *Job) error
	Build(ctx context.Context, job *Job) error
	Install(ctx context.Context, job *Job) error
}

// Native drives the real CMake and Autotools executables.
type Native struct {
	Fetcher *fetch.Fetcher
	Stdout  io.Writer
	Stderr  io.Writer
}

var _ Tool = (*Native)(nil)

// NewNative returns a Native tool downloading into cacheDir.
func NewNative(cacheDir string) *Native {
	return &Native{
		Fetcher: fetch.New(cacheDir),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (n *Native) Fetch(ctx context.Context, src versions.Source, dir string) error {
	return n.Fetcher.Fetch(ctx, src, dir)
}

func (n *Native) Patch(ctx context.Context, dir string, patches []string) error {
	return patch.Apply(ctx, dir, patches)
}

// helper returns the build system helper of job, creating it on first use.
func (n *Native) helper(job *Job) (buildsys.BuildSystem, error) {
	if job.helper != nil {
		return job.helper, nil
	}
	var bs buildsys.BuildSystem
	switch job.Config.System {
	case recipe.CMake:
		c := cmake.New(job.SourceDir, job.BuildDir, job.InstallDir)
		for name, root := range job.Deps {
			c.UseAs(root, job.Config.DepProperties[name][recipe.PropCMakeFileName])
		}
		bs = c
	case recipe.Autotools:
		a := autotools.New(job.SourceDir, job.BuildDir, job.InstallDir)
		for _, root := range job.Deps {
			a.Use(root)
		}
		bs = a
	default:
		return nil, fmt.Errorf("unsupported build system %q", job.Config.System)
	}
	bs.Output(n.Stdout, n.Stderr)
	if err := bs.Apply(job.Config); err != nil {
		return nil, err
	}
	job.helper = bs
	return bs, nil
}

func (n *Native) Configure(ctx context.Context, job *Job) error {
	bs, err := n.helper(job)
	if err != nil {
		return err
	}
	return bs.Configure(ctx)
}

func (n *Native) Build(ctx context.Context, job *Job) error {
	bs, err := n.helper(job)
	if err != nil {
		return err
	}
	return bs.Build(ctx)
}

func (n *Native) Install(ctx context.Context, job *Job) error {
	bs, err := n.helper(job)
	if err != nil {
		return err
	}
	return bs.Install(ctx)
}
