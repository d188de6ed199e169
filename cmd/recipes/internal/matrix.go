package internal

import (
	"fmt"

	"github.com/goplus/recipes/recipe"
	"github.com/spf13/cobra"
)

var matrixFlags invocationFlags

var matrixCmd = &cobra.Command{
	Use:   "matrix [name[@version]]",
	Short: "Print the build matrix of a recipe",
	Long: `Matrix prints every settings and options combination a recipe can be built
with for the given settings, one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatrix,
}

func init() {
	matrixFlags.register(matrixCmd)
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	var name, version string
	if len(args) > 0 {
		name, version = parseRef(args[0])
	}
	r, err := matrixFlags.loadRecipe(name)
	if err != nil {
		return err
	}
	settings, err := recipe.ParseSettings(recipe.DefaultSettings(), matrixFlags.settings)
	if err != nil {
		return err
	}
	m := r.BuildMatrix(recipe.Facts{Settings: settings, Version: version})
	out := cmd.OutOrStdout()
	for _, combo := range m.Combinations() {
		fmt.Fprintln(out, combo)
	}
	return nil
}
