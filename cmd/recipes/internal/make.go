package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/recipes/internal/build"
	"github.com/goplus/recipes/internal/env"
	"github.com/gookit/color"
	"github.com/klauspost/compress/zip"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	makeFlags  invocationFlags
	makeOutput string
	makeForce  bool
)

var makeCmd = &cobra.Command{
	Use:   "make name@version",
	Short: "Build a package into the work directory",
	Long: `Make downloads, patches and builds a package, then installs it with its
licenses into the work directory. The source descriptor file (--data) gives
the download location and checksum of each version.`,
	Args: cobra.ExactArgs(1),
	RunE: runMake,
}

func init() {
	makeFlags.register(makeCmd)
	makeCmd.Flags().StringVarP(&makeOutput, "output", "o", "", "Output path (directory or .zip file)")
	makeCmd.Flags().BoolVarP(&makeForce, "force", "f", false, "Rebuild even when the package is cached")
	rootCmd.AddCommand(makeCmd)
}

func runMake(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	name, version := parseRef(args[0])
	r, err := makeFlags.loadRecipe(name)
	if err != nil {
		return err
	}
	inv, err := makeFlags.invocation(version)
	if err != nil {
		return err
	}
	if inv.Sources == nil {
		return fmt.Errorf("make needs a source descriptor file, use --data")
	}
	inv.Force = makeForce

	// Resolve output path to absolute before build
	if makeOutput != "" {
		abs, err := filepath.Abs(makeOutput)
		if err != nil {
			return fmt.Errorf("failed to resolve output path: %w", err)
		}
		makeOutput = abs
	}

	workDir, err := env.WorkDir()
	if err != nil {
		return fmt.Errorf("failed to get work dir: %w", err)
	}
	downloads, err := env.DownloadDir()
	if err != nil {
		return fmt.Errorf("failed to get download dir: %w", err)
	}
	tool := build.NewNative(downloads)
	if !verbose {
		tool.Stdout = io.Discard
		tool.Stderr = io.Discard
	} else {
		tool.Fetcher.Progress = cmd.ErrOrStderr()
	}

	res, err := build.NewHost(workDir, tool).Run(ctx, r, inv)
	if err != nil {
		return fmt.Errorf("failed to build %s@%s: %w", r.Name, inv.Version, err)
	}

	out := cmd.OutOrStdout()
	status := color.Success.Sprint("built")
	if res.Cached {
		status = color.Note.Sprint("cached")
	}
	fmt.Fprintf(out, "%s %s@%s %s\n", status, res.Recipe, res.Version, res.Dir)

	if makeOutput != "" {
		if err := outputResult(res.Dir, makeOutput); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		log.Info("package written to", makeOutput)
	}
	return nil
}

// outputResult writes the package to dest.
// If dest ends with ".zip", creates a zip archive; otherwise copies the directory.
func outputResult(srcDir, dest string) error {
	if strings.HasSuffix(dest, ".zip") {
		return zipDir(srcDir, dest)
	}
	return os.CopyFS(dest, os.DirFS(srcDir))
}

// zipDir creates a zip archive at dest from the contents of srcDir.
func zipDir(srcDir, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
			_, err = w.CreateHeader(header)
			return err
		}
		header.Method = zip.Deflate
		writer, err := w.CreateHeader(header)
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(writer, file)
		return err
	})
}
