package internal

import (
	"fmt"
	"strings"

	"github.com/goplus/recipes/recipe"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var inspectFlags invocationFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect [name[@version]]",
	Short: "Show the identity and options of a recipe",
	Long: `Inspect prints the identity of a recipe and the options that apply to the
given settings, with their allowed values and defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectFlags.register(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	var name, version string
	if len(args) > 0 {
		name, version = parseRef(args[0])
	}
	r, err := inspectFlags.loadRecipe(name)
	if err != nil {
		return err
	}
	settings, err := recipe.ParseSettings(recipe.DefaultSettings(), inspectFlags.settings)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, color.Bold.Sprint(r.Name), "-", r.Description)
	fmt.Fprintln(out, "  license:  ", strings.Join(r.License, ", "))
	fmt.Fprintln(out, "  homepage: ", r.Homepage)
	fmt.Fprintln(out, "  topics:   ", strings.Join(r.Topics, ", "))
	fmt.Fprintln(out, "  system:   ", r.System)

	schema := r.NormalizeOptions(recipe.Facts{Settings: settings, Version: version})
	fmt.Fprintln(out, color.Bold.Sprint("options:"))
	for _, o := range schema.Options() {
		fmt.Fprintf(out, "  %s = %s  %v\n", color.Cyan.Sprint(o.Name), o.Default, o.Values)
	}
	return nil
}
