package internal

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goplus/recipes/internal/build"
	"github.com/goplus/recipes/internal/env"
	"github.com/goplus/recipes/pkgs/buildsys"
	"github.com/goplus/recipes/pkgs/buildsys/autotools"
	"github.com/goplus/recipes/pkgs/buildsys/cmake"
	"github.com/goplus/recipes/recipe"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var planFlags invocationFlags

var planCmd = &cobra.Command{
	Use:   "plan name@version",
	Short: "Show what building a package would do",
	Long: `Plan resolves options, requirements and the toolchain configuration of a
package without fetching or building anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	p, err := evalPlan(cmd.Context(), &planFlags, args[0])
	if err != nil {
		return err
	}
	return printPlan(cmd.OutOrStdout(), p)
}

// evalPlan runs the pure stages of the recipe named by arg.
func evalPlan(ctx context.Context, f *invocationFlags, arg string) (*build.Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name, version := parseRef(arg)
	r, err := f.loadRecipe(name)
	if err != nil {
		return nil, err
	}
	inv, err := f.invocation(version)
	if err != nil {
		return nil, err
	}
	workDir, err := env.WorkDir()
	if err != nil {
		return nil, err
	}
	return build.NewHost(workDir, nil).Plan(ctx, r, inv)
}

func printPlan(w io.Writer, p *build.Plan) error {
	lines, err := configLines(p.Config)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, color.Bold.Sprintf("%s@%s", p.Recipe, p.Version), p.PackageID)

	fmt.Fprintln(w, color.Bold.Sprint("options:"))
	for _, name := range p.Options.Names() {
		fmt.Fprintf(w, "  %s=%s\n", name, p.Options.Get(name))
	}

	if reqs := p.Requirements.All(); len(reqs) > 0 {
		fmt.Fprintln(w, color.Bold.Sprint("requires:"))
		for _, req := range p.Requirements.Libs() {
			fmt.Fprintln(w, "  "+req.String())
		}
		for _, req := range p.Requirements.Tools() {
			fmt.Fprintln(w, "  "+req.String(), color.Note.Sprint("(tool)"))
		}
	}

	fmt.Fprintln(w, color.Bold.Sprintf("%s:", p.Config.System))
	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}

	if p.Source != nil {
		fmt.Fprintln(w, color.Bold.Sprint("sources:"))
		for _, u := range p.Source.URL {
			fmt.Fprintln(w, "  "+u)
		}
		for _, patch := range p.Patches {
			fmt.Fprintln(w, "  patch", patch)
		}
	}
	if ops := slices.Concat(p.SourceFixups, p.Package.Ops()); len(ops) > 0 {
		fmt.Fprintln(w, color.Bold.Sprint("files:"))
		for _, op := range ops {
			fmt.Fprintln(w, "  "+formatOp(op))
		}
	}
	return nil
}

// configLines renders the configuration the way the build system helper
// passes it on.
func configLines(cfg recipe.Config) ([]string, error) {
	var lines []string
	var environ buildsys.Environ
	switch cfg.System {
	case recipe.CMake:
		c := cmake.New("", "", "")
		if err := c.Apply(cfg); err != nil {
			return nil, err
		}
		if v, ok := cfg.Lookup("CMAKE_BUILD_TYPE"); ok {
			lines = append(lines, "-DCMAKE_BUILD_TYPE="+v.String())
		}
		lines = append(lines, c.DefinesArgs()...)
		environ = c.Environ()
	case recipe.Autotools:
		a := autotools.New("", "", "")
		if err := a.Apply(cfg); err != nil {
			return nil, err
		}
		if cfg.Autoreconf {
			lines = append(lines, "(autoreconf)")
		}
		lines = append(lines, a.Args()...)
		environ = a.Environ()
	default:
		return nil, fmt.Errorf("unsupported build system %q", cfg.System)
	}
	for _, k := range slices.Sorted(maps.Keys(environ)) {
		lines = append(lines, k+"="+environ[k])
	}
	return lines, nil
}

func formatOp(op recipe.FileOp) string {
	switch op.Kind {
	case recipe.OpCopy:
		return fmt.Sprintf("copy %s %s -> %s", op.Pattern, dirOrDot(op.Src), dirOrDot(op.Dst))
	case recipe.OpRmdir:
		return "rmdir " + op.Dir
	case recipe.OpRm:
		s := fmt.Sprintf("rm %s in %s", op.Pattern, dirOrDot(op.Dir))
		if op.Recursive {
			s += " (recursive)"
		}
		if len(op.Keep) > 0 {
			s += " keep " + strings.Join(op.Keep, ",")
		}
		return s
	}
	return op.Kind.String()
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
