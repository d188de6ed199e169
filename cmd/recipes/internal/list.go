package internal

import (
	"fmt"

	"github.com/goplus/recipes/recipes"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in recipes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range recipes.Names() {
		r, err := recipes.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", color.Cyan.Sprintf("%-16s", name), r.Description)
	}
	return nil
}
