package autotools

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goplus/recipes/pkgs/buildsys"
	"github.com/goplus/recipes/recipe"
)

// AutoTools wraps common Autotools build steps with chainable configuration.
type AutoTools struct {
	SourceDir  string
	buildDir   string
	installDir string
	inSource   bool
	autoreconf bool
	args       []string
	env        buildsys.Environ
	stdout     io.Writer
	stderr     io.Writer
}

var _ buildsys.BuildSystem = (*AutoTools)(nil)

// New creates a new AutoTools helper. An empty buildDir builds in the
// source tree.
func New(sourceDir, buildDir, installDir string) *AutoTools {
	return &AutoTools{
		SourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		inSource:   buildDir == "",
		env:        buildsys.Environ{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func (a *AutoTools) Source(dir string) {
	a.SourceDir = dir
}

func (a *AutoTools) InstallDir(dir string) {
	a.installDir = dir
}

// InSource makes configure and make run inside the source tree.
func (a *AutoTools) InSource() *AutoTools {
	a.inSource = true
	return a
}

func (a *AutoTools) Output(stdout, stderr io.Writer) {
	a.stdout, a.stderr = stdout, stderr
}

func (a *AutoTools) Env(key, value string) {
	a.env.Set(key, value)
}

// Environ returns the environment overrides passed to the tools.
func (a *AutoTools) Environ() buildsys.Environ {
	return a.env
}

// Use configures the build environment to use the package installed at root.
func (a *AutoTools) Use(root string) {
	a.env.UseRoot(root)
}

// Args returns the configure arguments collected by Apply.
func (a *AutoTools) Args() []string {
	return a.args
}

// Apply turns cfg into configure arguments. Keys starting with "--" are
// flags: true passes the flag, false omits it, a string passes --key=value.
// Other keys are environment variables.
func (a *AutoTools) Apply(cfg recipe.Config) error {
	if cfg.System != recipe.Autotools {
		return fmt.Errorf("autotools: cannot apply %s configuration", cfg.System)
	}
	for _, k := range cfg.Keys() {
		v, _ := cfg.Lookup(k)
		if !strings.HasPrefix(k, "--") {
			a.env.Set(k, v.String())
			continue
		}
		switch v.Kind {
		case recipe.KindBool:
			if v.Bool {
				a.args = append(a.args, k)
			}
		case recipe.KindString:
			if v.Str == "" {
				a.args = append(a.args, k)
			} else {
				a.args = append(a.args, k+"="+v.Str)
			}
		default:
			return fmt.Errorf("autotools: flag %s has no value", k)
		}
	}
	keys := make([]string, 0, len(cfg.Defines))
	for k := range cfg.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flag := "-D" + k
		if v := cfg.Defines[k]; v != "" {
			flag += "=" + v
		}
		a.env.AppendFlag("CPPFLAGS", flag)
	}
	a.autoreconf = cfg.Autoreconf
	if cfg.InSource {
		a.InSource()
	}
	return nil
}

// Autoreconf regenerates the configure script in the source tree.
func (a *AutoTools) Autoreconf(ctx context.Context) error {
	return a.run(ctx, "autoreconf", []string{"-fiv"}, a.SourceDir)
}

// Configure runs ./configure with standard flags.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	if a.autoreconf {
		if err := a.Autoreconf(ctx); err != nil {
			return err
		}
	}
	buildDir := a.dir()
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return err
	}

	exe := "./configure"
	if !a.inSource {
		exe = filepath.Join(a.SourceDir, "configure")
	}

	configArgs := []string{}
	if a.installDir != "" {
		configArgs = append(configArgs, "--prefix="+a.installDir)
	}
	configArgs = append(configArgs, a.args...)
	configArgs = append(configArgs, args...)

	return a.run(ctx, exe, configArgs, buildDir)
}

// Build runs make (or provided args) in the build directory.
func (a *AutoTools) Build(ctx context.Context, args ...string) error {
	cmdArgs := []string{"make"}
	if len(args) > 0 {
		cmdArgs = args
	}
	return a.run(ctx, cmdArgs[0], cmdArgs[1:], a.dir())
}

// Install runs make install (or provided args) in the build directory.
func (a *AutoTools) Install(ctx context.Context, args ...string) error {
	cmdArgs := []string{"make", "install"}
	if len(args) > 0 {
		cmdArgs = args
	}
	return a.run(ctx, cmdArgs[0], cmdArgs[1:], a.dir())
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (a *AutoTools) OutputDir() string {
	if a.installDir != "" {
		return a.installDir
	}
	return a.dir()
}

func (a *AutoTools) dir() string {
	if a.inSource || a.buildDir == "" {
		return a.SourceDir
	}
	return a.buildDir
}

func (a *AutoTools) run(ctx context.Context, bin string, args []string, workdir string) error {
	return buildsys.Run(ctx, buildsys.Cmd{
		Bin:    bin,
		Args:   args,
		Dir:    workdir,
		Env:    a.env,
		Stdout: a.stdout,
		Stderr: a.stderr,
	})
}
