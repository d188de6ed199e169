package cmake

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goplus/recipes/pkgs/buildsys"
	"github.com/goplus/recipes/recipe"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake wraps common CMake build steps with chainable configuration.
type CMake struct {
	SourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	toolchain  string
	Defines    map[string]defineValue
	env        buildsys.Environ
	stdout     io.Writer
	stderr     io.Writer
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New creates a new CMake helper. An empty buildDir makes Configure create
// a temporary one.
func New(sourceDir, buildDir, installDir string) *CMake {
	return &CMake{
		SourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		Defines:    map[string]defineValue{},
		env:        buildsys.Environ{},
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
}

func (c *CMake) Source(dir string) {
	c.SourceDir = dir
}

func (c *CMake) InstallDir(dir string) {
	c.installDir = dir
}

// BuildDir returns the binary directory, which is empty until Configure
// runs when none was given.
func (c *CMake) BuildDir() string {
	return c.buildDir
}

func (c *CMake) Output(stdout, stderr io.Writer) {
	c.stdout, c.stderr = stdout, stderr
}

func (c *CMake) Generator(name string) *CMake {
	c.generator = name
	return c
}

func (c *CMake) BuildType(name string) *CMake {
	c.buildType = name
	return c
}

func (c *CMake) Toolchain(path string) *CMake {
	c.toolchain = path
	return c
}

func (c *CMake) Define(key, value string) *CMake {
	c.Defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

func (c *CMake) DefineBool(key string, value bool) *CMake {
	if value {
		c.Defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return c
	}
	c.Defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return c
}

func (c *CMake) Env(key, value string) {
	c.env.Set(key, value)
}

// Environ returns the environment overrides passed to cmake.
func (c *CMake) Environ() buildsys.Environ {
	return c.env
}

// Use configures the build environment to use the package installed at root.
func (c *CMake) Use(root string) {
	c.env.UseRoot(root)
}

// UseAs is Use for a dependency whose CMake config package is named
// fileName, so find_package(fileName) resolves to root.
func (c *CMake) UseAs(root, fileName string) {
	c.Use(root)
	if fileName != "" {
		c.Define(fileName+"_ROOT", root)
	}
}

// Apply turns cfg into cache entries. Variables and cache entries are both
// passed with -D; preprocessor definitions go to the compiler flags.
func (c *CMake) Apply(cfg recipe.Config) error {
	if cfg.System != recipe.CMake {
		return fmt.Errorf("cmake: cannot apply %s configuration", cfg.System)
	}
	apply := func(vars map[string]recipe.Value) error {
		for k, v := range vars {
			switch v.Kind {
			case recipe.KindBool:
				c.DefineBool(k, v.Bool)
			case recipe.KindString:
				if k == "CMAKE_BUILD_TYPE" {
					c.BuildType(v.Str)
					continue
				}
				c.Define(k, v.Str)
			default:
				return fmt.Errorf("cmake: variable %s has no value", k)
			}
		}
		return nil
	}
	if err := apply(cfg.Cache); err != nil {
		return err
	}
	if err := apply(cfg.Variables); err != nil {
		return err
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
		c.env.AppendFlag("CFLAGS", flag)
		c.env.AppendFlag("CXXFLAGS", flag)
	}
	return nil
}

func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if c.buildDir == "" {
		dir, err := os.MkdirTemp("", "recipes-build-")
		if err != nil {
			return err
		}
		c.buildDir = dir
	}
	if err := os.MkdirAll(c.buildDir, 0755); err != nil {
		return err
	}
	cmakeArgs := []string{"-S", c.SourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.toolchain != "" {
		c.Define("CMAKE_TOOLCHAIN_FILE", c.toolchain)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.DefinesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)

	return c.run(ctx, cmakeArgs)
}

func (c *CMake) Build(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--build", c.dir()}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	cmdArgs = append(cmdArgs, args...)
	return c.run(ctx, cmdArgs)
}

func (c *CMake) Install(ctx context.Context, args ...string) error {
	cmdArgs := []string{"--install", c.dir()}
	if c.buildType != "" {
		cmdArgs = append(cmdArgs, "--config", c.buildType)
	}
	if c.installDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", c.installDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return c.run(ctx, cmdArgs)
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.dir()
}

func (c *CMake) dir() string {
	if c.buildDir == "" {
		return filepath.Join(c.SourceDir, "build")
	}
	return c.buildDir
}

// DefinesArgs renders the cache entries as -D arguments in key order.
func (c *CMake) DefinesArgs() []string {
	if len(c.Defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Defines))
	for k := range c.Defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.Defines[k]
		if def.typeName != "" {
			args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
			continue
		}
		args = append(args, "-D"+k+"="+def.value)
	}
	return args
}

func (c *CMake) run(ctx context.Context, args []string) error {
	return buildsys.Run(ctx, buildsys.Cmd{
		Bin:    "cmake",
		Args:   args,
		Env:    c.env,
		Stdout: c.stdout,
		Stderr: c.stderr,
	})
}
