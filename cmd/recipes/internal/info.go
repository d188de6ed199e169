package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goplus/recipes/internal/build"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var (
	infoFlags  invocationFlags
	infoPrefix string
	infoFormat string
)

var infoCmd = &cobra.Command{
	Use:   "info name@version",
	Short: "Print the consumer metadata of a package",
	Long: `Info prints what consumers of a package need: library names, system
libraries, preprocessor definitions and the names under which CMake and
pkg-config find it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoFlags.register(infoCmd)
	infoCmd.Flags().StringVar(&infoPrefix, "prefix", "/usr/local", "Install prefix used by the flags and pkgconfig formats")
	infoCmd.Flags().StringVar(&infoFormat, "format", "text", "Output format: text, json, flags or pkgconfig")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	p, err := evalPlan(cmd.Context(), &infoFlags, args[0])
	if err != nil {
		return err
	}
	r, err := infoFlags.loadRecipe(p.Recipe)
	if err != nil {
		return err
	}
	return printInfo(cmd.OutOrStdout(), p, r.Description, infoFormat, infoPrefix)
}

func printInfo(w io.Writer, p *build.Plan, description, format, prefix string) error {
	info := p.Info
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "flags":
		_, err := fmt.Fprintln(w, info.Flags(prefix))
		return err
	case "pkgconfig":
		_, err := io.WriteString(w, info.PkgConfig(prefix, p.Recipe, p.Version, description))
		return err
	case "text":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintln(w, color.Bold.Sprintf("%s@%s", p.Recipe, p.Version))
	field := func(name string, values []string) {
		if len(values) > 0 {
			fmt.Fprintf(w, "  %s %s\n", color.Cyan.Sprintf("%-12s", name+":"), strings.Join(values, " "))
		}
	}
	field("libs", info.Libs)
	field("system_libs", info.SystemLibs)
	field("defines", info.Defines)
	field("requires", info.Requires)
	for _, k := range slices.Sorted(maps.Keys(info.Properties)) {
		field(k, []string{info.Properties[k]})
	}
	return nil
}
