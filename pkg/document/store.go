package document

import (
	"fmt"
	"io/fs"
	"sort"
)

// Store indexes templates and data sets loaded from a filesystem by name.
type Store struct {
	templates map[string]Template
	data      map[string]map[string]any
}

// LoadFS walks fsys and parses every JSON/YAML file. Files ending in
// ".data.json", ".data.yaml" or ".data.yml" are data sets, everything else
// is a template. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		templates: make(map[string]Template),
		data:      make(map[string]map[string]any),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("document: read %s: %w", path, err)
		}

		name := Name(path)
		if isDataFile(path) {
			if _, exists := store.data[name]; exists {
				return fmt.Errorf("document: duplicate data set %q (file %s)", name, path)
			}
			values, err := ParseData(raw, path)
			if err != nil {
				return err
			}
			store.data[name] = values
			return nil
		}

		if _, exists := store.templates[name]; exists {
			return fmt.Errorf("document: duplicate template %q (file %s)", name, path)
		}
		tmpl, err := Parse(raw, path)
		if err != nil {
			return err
		}
		store.templates[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Template returns the template registered under name.
func (s *Store) Template(name string) (Template, bool) {
	if s == nil {
		return Template{}, false
	}
	tmpl, ok := s.templates[name]
	return tmpl, ok
}

// Data returns the data set registered under name. The map is shared.
func (s *Store) Data(name string) (map[string]any, bool) {
	if s == nil {
		return nil, false
	}
	values, ok := s.data[name]
	return values, ok
}

// Templates lists template names in sorted order.
func (s *Store) Templates() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.templates)
}

// DataSets lists data set names in sorted order.
func (s *Store) DataSets() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.data)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
