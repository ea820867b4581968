package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every content type decoded from disk.
type validator interface {
	Validate() error
}

// loadDir decodes each .yaml/.yml file directly inside dir into a fresh T,
// validating it before it is accepted. kind names the content in errors.
//
// Postcondition: Results follow lexical file-name order. Any failure names
// the offending file.
func loadDir[T any, PT interface {
	*T
	validator
}](dir, kind string) ([]PT, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s directory %s: %w", kind, dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	out := make([]PT, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		item := PT(new(T))
		if err := yaml.Unmarshal(data, item); err != nil {
			return nil, fmt.Errorf("parsing %s file %s: %w", kind, path, err)
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%s file %s: %w", kind, path, err)
		}
		out = append(out, item)
	}
	return out, nil
}
