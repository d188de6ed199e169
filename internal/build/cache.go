package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goplus/recipes/pkgs/mod/module"
	"github.com/goplus/recipes/recipe"
	"lukechampine.com/blake3"
)

// Work directory layout:
//
//	workDir/
//	  <escaped>/                      # recipe-level dir (cacheDir)
//	    .cache.json                   # build cache: maps "version-matrix" to buildEntry
//	    .lock                         # held while building any package of the recipe
//	  <escaped>@<version>-<hash>/     # package dir (installDir)
//	    include/
//	    lib/
//	    licenses/
//	  <escaped>@<version>-<hash>.src/ # unpacked, patched sources
//	  <escaped>@<version>-<hash>.build/
const cacheFile = ".cache.json"

// Result describes a finished package.
type Result struct {
	Recipe    string            `json:"recipe"`
	Version   string            `json:"version"`
	PackageID string            `json:"package_id"`
	Dir       string            `json:"dir"`
	Options   map[string]string `json:"options,omitempty"`
	Requires  []string          `json:"requires,omitempty"`
	Config    recipe.Config     `json:"config"`
	Info      recipe.CppInfo    `json:"info"`
	BuildTime time.Time         `json:"build_time"`

	// Stage is how far the invocation got; Cached reports a cache hit.
	Stage  Stage `json:"-"`
	Cached bool  `json:"-"`
}

// buildEntry contains metadata about a single successful build.
type buildEntry struct {
	Result    Result    `json:"result"`
	BuildTime time.Time `json:"build_time"`
}

// buildCache maps "version-matrixString" keys to their build entries.
type buildCache struct {
	Cache map[string]*buildEntry `json:"cache"`
}

func cacheKey(version, matrix string) string {
	return version + "-" + matrix
}

func (c *buildCache) get(version, matrix string) (*buildEntry, bool) {
	entry, ok := c.Cache[cacheKey(version, matrix)]
	return entry, ok
}

func (c *buildCache) set(version, matrix string, entry *buildEntry) {
	if c.Cache == nil {
		c.Cache = make(map[string]*buildEntry)
	}
	c.Cache[cacheKey(version, matrix)] = entry
}

// matrixHash names a package directory; matrix strings hold characters
// some file systems reject.
func matrixHash(matrix string) string {
	sum := blake3.Sum256([]byte(matrix))
	return fmt.Sprintf("%x", sum[:8])
}

// cacheDir returns the recipe-level directory for cache storage: workDir/<escaped>.
func (h *Host) cacheDir(name string) (string, error) {
	escaped, err := module.EscapePath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(h.WorkDir, escaped), nil
}

// installDir returns the package directory: workDir/<escaped>@<version>-<hash>.
func (h *Host) installDir(name, version, matrix string) (string, error) {
	escaped, err := module.EscapePath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(h.WorkDir, fmt.Sprintf("%s@%s-%s", escaped, version, matrixHash(matrix))), nil
}

// loadCache reads the cache file of a recipe from the work directory.
func (h *Host) loadCache(name string) (*buildCache, error) {
	dir, err := h.cacheDir(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, cacheFile))
	if err != nil {
		return nil, err
	}
	var cache buildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// saveCache writes the cache file of a recipe to the work directory.
func (h *Host) saveCache(name string, cache *buildCache) error {
	dir, err := h.cacheDir(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, cacheFile), data, 0o644)
}
