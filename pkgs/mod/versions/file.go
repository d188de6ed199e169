// Package versions reads source descriptor files: per-version source
// locations, checksums and patches kept outside recipe code.
package versions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/goplus/recipes/pkgs/mod/constraint"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVersion is returned for versions without a source entry.
var ErrUnknownVersion = errors.New("unknown version")

// URLs is a list of mirrors. It decodes from a single string or a list.
type URLs []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *URLs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*u = URLs{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*u = list
		return nil
	}
	return fmt.Errorf("line %d: url must be a string or a list of strings", value.Line)
}

// Source describes where the sources of one version come from.
type Source struct {
	URL    URLs   `yaml:"url"`
	SHA256 string `yaml:"sha256"`
	BLAKE3 string `yaml:"blake3,omitempty"`
}

// Patch is a patch applied to the sources of one version.
type Patch struct {
	File        string `yaml:"patch_file"`
	Description string `yaml:"patch_description,omitempty"`
	Type        string `yaml:"patch_type,omitempty"`
	Source      string `yaml:"patch_source,omitempty"`
}

// Versions is the content of a source descriptor file.
type Versions struct {
	Sources map[string]Source  `yaml:"sources"`
	Patches map[string][]Patch `yaml:"patches,omitempty"`

	// Dir is the directory patch files are relative to.
	Dir string `yaml:"-"`
}

// Parse parses the descriptor file. When data is nil the file is read.
func Parse(file string, data []byte) (*Versions, error) {
	var reader io.Reader

	if data != nil {
		reader = bytes.NewBuffer(data)
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var v Versions
	if err := yaml.NewDecoder(reader).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if file != "" {
		v.Dir = filepath.Dir(file)
	}
	for ver, src := range v.Sources {
		if len(src.URL) == 0 {
			return nil, fmt.Errorf("parse %s: version %s has no url", file, ver)
		}
	}
	return &v, nil
}

// Source returns the source descriptor of version.
func (v *Versions) Source(version string) (Source, error) {
	src, ok := v.Sources[version]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	return src, nil
}

// PatchesOf returns the patches of version in application order.
func (v *Versions) PatchesOf(version string) []Patch {
	return slices.Clone(v.Patches[version])
}

// PatchPath returns the file system path of p.
func (v *Versions) PatchPath(p Patch) string {
	return filepath.Join(v.Dir, filepath.FromSlash(p.File))
}

// List returns the known versions, oldest first.
func (v *Versions) List() []string {
	list := make([]string, 0, len(v.Sources))
	for ver := range v.Sources {
		list = append(list, ver)
	}
	slices.SortFunc(list, constraint.Compare)
	return list
}

// Latest returns the newest known version, or "" when there is none.
func (v *Versions) Latest() string {
	list := v.List()
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}
