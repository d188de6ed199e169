package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/recipes/internal/files"
	"github.com/goplus/recipes/internal/lockedfile"
	"github.com/goplus/recipes/pkgs/mod/module"
	"github.com/goplus/recipes/pkgs/mod/versions"
	"github.com/goplus/recipes/recipe"
	"github.com/qiniu/x/log"
)

// Host sequences the hooks of a recipe and delegates the external work to
// a Tool.
type Host struct {
	WorkDir string
	Tool    Tool
}

// NewHost returns a Host keeping packages below workDir.
func NewHost(workDir string, tool Tool) *Host {
	return &Host{WorkDir: workDir, Tool: tool}
}

// Invocation is one request to build a package.
type Invocation struct {
	Version  string
	Settings recipe.Settings
	Options  map[string]string

	// Deps maps dependency names to their installed roots.
	Deps map[string]string

	// Sources is the source descriptor store of the recipe.
	Sources *versions.Versions

	// Force rebuilds even when the cache has the package.
	Force bool
}

// Plan is everything an invocation will do, computed without side effects.
type Plan struct {
	Recipe       string
	Version      string
	Facts        recipe.Facts
	Declared     recipe.Schema // every option the recipe declares
	Schema       recipe.Schema // options applicable to Facts
	Options      recipe.Values
	Requirements recipe.RequirementSet
	Config       recipe.Config
	Source       *versions.Source
	Patches      []string
	SourceFixups []recipe.FileOp
	Package      recipe.Layout
	Info         recipe.CppInfo
	PackageID    string
	Stage        Stage
}

// Plan runs the pure hooks of r for inv: option resolution, requirements,
// validation, config generation, layouts and metadata. The returned plan
// records the stage reached, also on failure.
func (h *Host) Plan(ctx context.Context, r *recipe.Recipe, inv Invocation) (*Plan, error) {
	p := &Plan{Recipe: r.Name, Version: inv.Version}
	fail := func(err error) (*Plan, error) {
		return p, &StageError{Recipe: r.Name, Reached: p.Stage, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if inv.Version == "" {
		return fail(errors.New("no version given"))
	}

	p.Declared = r.DeclareOptions()
	p.Stage = Declared

	p.Facts = recipe.Facts{Settings: inv.Settings, Version: inv.Version}
	p.Schema = p.Declared.Normalize(p.Facts)
	values, err := r.ResolveOptions(p.Facts, inv.Options)
	if err != nil {
		return fail(err)
	}
	p.Options = values
	p.Stage = Normalized

	rctx := recipe.NewContext(p.Facts, values)
	if p.Requirements, err = r.Requirements(rctx); err != nil {
		return fail(err)
	}
	if err := r.Validate(rctx); err != nil {
		return fail(err)
	}
	p.Stage = Validated

	if p.Config, err = r.GenerateConfig(rctx); err != nil {
		return fail(err)
	}
	fixups, err := r.SourceFixups(rctx)
	if err != nil {
		return fail(err)
	}
	p.SourceFixups = fixups.Ops()
	if p.Package, err = r.PackageLayout(rctx); err != nil {
		return fail(err)
	}
	if p.Info, err = r.ExportMetadata(rctx); err != nil {
		return fail(err)
	}
	if inv.Sources != nil {
		src, err := inv.Sources.Source(inv.Version)
		if err != nil {
			return fail(err)
		}
		p.Source = &src
		for _, patch := range inv.Sources.PatchesOf(inv.Version) {
			p.Patches = append(p.Patches, inv.Sources.PatchPath(patch))
		}
	}
	id := r.PackageID(inv.Settings, values)
	p.PackageID = id.String()
	p.Stage = Configured
	return p, nil
}

// Run builds and packages r for inv. Nothing is written before the
// configuration is generated. A package already in the cache is returned
// without rebuilding unless inv.Force is set.
func (h *Host) Run(ctx context.Context, r *recipe.Recipe, inv Invocation) (*Result, error) {
	res := &Result{Recipe: r.Name, Version: inv.Version}
	p, err := h.Plan(ctx, r, inv)
	res.Stage = p.Stage
	if err != nil {
		return res, err
	}
	fail := func(err error) (*Result, error) {
		return res, &StageError{Recipe: r.Name, Reached: res.Stage, Err: err}
	}
	if p.Source == nil {
		return fail(fmt.Errorf("%w: no source descriptor for %s", versions.ErrUnknownVersion, inv.Version))
	}
	res.PackageID = p.PackageID
	res.Options = p.Options.Map()
	res.Config = p.Config
	res.Info = p.Info
	for _, req := range p.Requirements.All() {
		res.Requires = append(res.Requires, req.String())
	}

	cacheDir, err := h.cacheDir(r.Name)
	if err != nil {
		return fail(err)
	}
	unlock, err := lockedfile.MutexAt(filepath.Join(cacheDir, ".lock")).Lock()
	if err != nil {
		return fail(err)
	}
	defer unlock()

	installDir, err := h.installDir(r.Name, inv.Version, p.PackageID)
	if err != nil {
		return fail(err)
	}
	res.Dir = installDir

	if !inv.Force {
		if cached, ok := h.cached(r.Name, inv.Version, p.PackageID); ok {
			log.Info(module.Version{Path: r.Name, Version: inv.Version}, "is up to date")
			cached.Stage = MetadataExported
			cached.Cached = true
			return cached, nil
		}
	}

	log.Info("build", module.Version{Path: r.Name, Version: inv.Version}, p.PackageID)
	job := &Job{
		Recipe:     r.Name,
		Version:    inv.Version,
		Settings:   inv.Settings,
		Config:     p.Config,
		SourceDir:  installDir + ".src",
		BuildDir:   installDir + ".build",
		InstallDir: installDir,
		Deps:       h.deps(p.Requirements, inv.Deps),
	}
	for _, dir := range []string{job.SourceDir, job.BuildDir, job.InstallDir} {
		if err := os.RemoveAll(dir); err != nil {
			return fail(err)
		}
	}

	if err := h.build(ctx, p, job); err != nil {
		return fail(err)
	}
	res.Stage = Built

	if err := h.pack(ctx, p, job); err != nil {
		return fail(err)
	}
	res.Stage = Packaged

	res.BuildTime = time.Now()
	cache, err := h.loadCache(r.Name)
	if err != nil {
		cache = &buildCache{}
	}
	cache.set(inv.Version, p.PackageID, &buildEntry{Result: *res, BuildTime: res.BuildTime})
	if err := h.saveCache(r.Name, cache); err != nil {
		return fail(err)
	}
	res.Stage = MetadataExported

	os.RemoveAll(job.BuildDir)
	os.RemoveAll(job.SourceDir)
	return res, nil
}

// build fetches and patches the sources, applies the source fixups and
// runs the external configure and build. Patches are never applied once
// the external build has started.
func (h *Host) build(ctx context.Context, p *Plan, job *Job) error {
	if err := h.Tool.Fetch(ctx, *p.Source, job.SourceDir); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if len(p.Patches) > 0 {
		if err := h.Tool.Patch(ctx, job.SourceDir, p.Patches); err != nil {
			return fmt.Errorf("patch: %w", err)
		}
	}
	if err := files.ApplyAll(p.SourceFixups, job.SourceDir, job.SourceDir); err != nil {
		return fmt.Errorf("source fixups: %w", err)
	}
	if err := h.Tool.Configure(ctx, job); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	if err := h.Tool.Build(ctx, job); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	return nil
}

// pack copies the licenses, runs the external install and removes what
// consumers must not see.
func (h *Host) pack(ctx context.Context, p *Plan, job *Job) error {
	if err := os.MkdirAll(job.InstallDir, 0o755); err != nil {
		return err
	}
	if err := files.ApplyAll(p.Package.Copies(), job.SourceDir, job.InstallDir); err != nil {
		return fmt.Errorf("package: %w", err)
	}
	if err := h.Tool.Install(ctx, job); err != nil {
		return fmt.Errorf("install: %w", err)
	}
	if err := files.ApplyAll(p.Package.Removals(), job.SourceDir, job.InstallDir); err != nil {
		return fmt.Errorf("package: %w", err)
	}
	return nil
}

func (h *Host) cached(name, version, matrix string) (*Result, bool) {
	cache, err := h.loadCache(name)
	if err != nil {
		return nil, false
	}
	entry, ok := cache.get(version, matrix)
	if !ok {
		return nil, false
	}
	if _, err := os.Stat(entry.Result.Dir); err != nil {
		log.Debug("cached package", entry.Result.Dir, "is gone")
		return nil, false
	}
	res := entry.Result
	return &res, true
}

// deps picks the installed roots of the library requirements.
func (h *Host) deps(reqs recipe.RequirementSet, roots map[string]string) map[string]string {
	out := make(map[string]string)
	for _, req := range reqs.Libs() {
		root, ok := roots[req.Name()]
		if !ok {
			log.Warn("dependency", req.String(), "has no installed root")
			continue
		}
		out[req.Name()] = root
	}
	return out
}
