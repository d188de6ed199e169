// Package formula loads recipes written as XGo classfiles (*_recipe.gox).
package formula

import (
	"fmt"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/recipes/recipe"
	"github.com/goplus/xgo/ast"
	"github.com/goplus/xgo/parser"
	"github.com/goplus/xgo/parser/fsx/memfs"
	"github.com/goplus/xgo/token"

	_ "github.com/goplus/recipes/internal/ixgo"
)

// Ext is the file name suffix of scripted recipes.
const Ext = "_recipe.gox"

// NameOf extracts the package name from a scripted recipe by parsing its
// AST. It searches for the id() call and returns its argument.
func NameOf(path string) (name string, err error) {
	fset := token.NewFileSet()
	astFile, err := parser.ParseEntry(fset, path, nil, parser.Config{
		ClassKind: xgobuild.ClassKind,
	})
	if err != nil {
		return "", err
	}
	return nameFrom(astFile)
}

// Load loads a scripted recipe from the local file system.
func Load(path string) (*recipe.Recipe, error) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir).(fs.ReadFileFS), file)
}

// LoadFS builds and interprets the recipe file path of fsys, then returns
// the recipe its top-level statements declared.
func LoadFS(fsys fs.ReadFileFS, path string) (*recipe.Recipe, error) {
	ctx := ixgo.NewContext(0)

	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Build the file as a one-file package so the classfile kind is
	// detected from its name.
	dir, fname := pathpkg.Split(path)
	dir = pathpkg.Clean(dir)
	source, err := xgobuild.BuildFSDir(ctx, memfs.SingleFile(dir, fname, string(content)), dir)
	if err != nil {
		return nil, err
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return nil, err
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return nil, err
	}
	if err = interp.RunInit(); err != nil {
		return nil, err
	}

	structName, ok := strings.CutSuffix(filepath.Base(path), Ext)
	if !ok || structName == "" {
		return nil, fmt.Errorf("failed to load recipe: file name is not valid: %s", path)
	}
	typ, ok := interp.GetType(structName)
	if !ok {
		return nil, fmt.Errorf("failed to load recipe: struct name not found: %s", structName)
	}
	val := reflect.New(typ)
	val.Interface().(interface{ Main() }).Main()

	field := val.Elem().FieldByName("RecipeF")
	if !field.IsValid() {
		return nil, fmt.Errorf("failed to load recipe: %s does not embed RecipeF", structName)
	}
	r := field.Addr().Interface().(*recipe.RecipeF).Recipe()
	if r.Name == "" {
		return nil, fmt.Errorf("failed to load recipe: %s: no id declared", path)
	}
	return r, nil
}

// nameFrom finds the id() call of a recipe AST.
func nameFrom(f *ast.File) (name string, err error) {
	found := false
	ast.Inspect(f, func(n ast.Node) bool {
		if found {
			return false
		}
		c, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if fn, ok := c.Fun.(*ast.Ident); ok && fn.Name == "id" {
			name, err = parseCallArg(c, fn.Name)
			found = true
			return false
		}
		return true
	})
	if err == nil && !found {
		err = fmt.Errorf("failed to parse id from AST: no id call")
	}
	return
}

// parseCallArg extracts the first string argument from a function call expression.
func parseCallArg(c *ast.CallExpr, fnName string) (string, error) {
	if len(c.Args) == 0 {
		return "", fmt.Errorf("failed to parse %s from AST: no argument", fnName)
	}
	arg, ok := c.Args[0].(*ast.BasicLit)
	if !ok || arg.Kind != token.STRING {
		return "", fmt.Errorf("failed to parse %s from AST: argument is not a string literal", fnName)
	}
	s := strings.Trim(strings.Trim(arg.Value, `"`), "`")
	if s == "" {
		return "", fmt.Errorf("failed to parse %s from AST: no argument", fnName)
	}
	return s, nil
}
