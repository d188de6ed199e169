package internal

import (
	"fmt"
	"strings"

	"github.com/goplus/recipes/internal/build"
	"github.com/goplus/recipes/internal/formula"
	"github.com/goplus/recipes/pkgs/mod/versions"
	"github.com/goplus/recipes/recipe"
	"github.com/goplus/recipes/recipes"
	"github.com/spf13/cobra"
)

// invocationFlags are shared by the commands that evaluate a recipe.
type invocationFlags struct {
	settings   []string
	options    []string
	deps       []string
	data       string
	recipeFile string
}

func (f *invocationFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.settings, "setting", "s", nil, "Setting as key=value, e.g. os=Linux or compiler.cppstd=17")
	flags.StringArrayVarP(&f.options, "option", "O", nil, "Option override as key=value, e.g. shared=True")
	flags.StringArrayVar(&f.deps, "dep", nil, "Installed dependency root as name=dir")
	flags.StringVar(&f.data, "data", "", "Source descriptor file (conandata.yml)")
	flags.StringVar(&f.recipeFile, "recipe", "", "Scripted recipe file (*"+formula.Ext+") used instead of a built-in recipe")
}

func (f *invocationFlags) reset() {
	*f = invocationFlags{}
}

// loadRecipe returns the recipe called name, from the scripted recipe
// file when one is given.
func (f *invocationFlags) loadRecipe(name string) (*recipe.Recipe, error) {
	if f.recipeFile == "" {
		return recipes.Lookup(name)
	}
	r, err := formula.Load(f.recipeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.recipeFile, err)
	}
	if name != "" && r.Name != name {
		return nil, fmt.Errorf("%s declares %q, not %q", f.recipeFile, r.Name, name)
	}
	return r, nil
}

// invocation builds the host invocation for version.
func (f *invocationFlags) invocation(version string) (build.Invocation, error) {
	settings, err := recipe.ParseSettings(recipe.DefaultSettings(), f.settings)
	if err != nil {
		return build.Invocation{}, err
	}
	options, err := parsePairs("option", f.options)
	if err != nil {
		return build.Invocation{}, err
	}
	deps, err := parsePairs("dep", f.deps)
	if err != nil {
		return build.Invocation{}, err
	}
	inv := build.Invocation{
		Version:  version,
		Settings: settings,
		Options:  options,
		Deps:     deps,
	}
	if f.data != "" {
		if inv.Sources, err = versions.Parse(f.data, nil); err != nil {
			return build.Invocation{}, err
		}
		if inv.Version == "" {
			inv.Version = inv.Sources.Latest()
		}
	}
	if inv.Version == "" {
		return build.Invocation{}, fmt.Errorf("no version given and no source descriptor to pick one from")
	}
	return inv, nil
}

// parseRef parses a package argument in the form "name@version" or "name".
func parseRef(arg string) (name, version string) {
	for i := len(arg) - 1; i >= 0; i-- {
		if arg[i] == '@' {
			return arg[:i], arg[i+1:]
		}
	}
	return arg, ""
}

// parsePairs parses "key=value" flag values.
func parsePairs(what string, pairs []string) (map[string]string, error) {
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid %s %q: expected key=value", what, pair)
		}
		m[k] = strings.TrimSpace(v)
	}
	return m, nil
}
