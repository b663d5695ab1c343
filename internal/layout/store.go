// Package layout persists the last geometry each surface reported.
package layout

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/frudas24/sketchslice/internal/geom"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout document.
type File struct {
	Surfaces map[string]geom.Layout `yaml:"surfaces"`
}

// Load reads layout data from disk. Missing files return empty data.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

// Save writes layout data to disk, creating parent directories as needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Store is a write-through cache over a layout file.
type Store struct {
	mu   sync.Mutex
	path string
	file File
}

// Open loads path into a new store.
func Open(path string) (*Store, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	if f.Surfaces == nil {
		f.Surfaces = make(map[string]geom.Layout)
	}
	return &Store{path: path, file: f}, nil
}

// Get returns the stored layout for a surface.
func (s *Store) Get(id string) (geom.Layout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.file.Surfaces[id]
	return l, ok
}

// Put stores a surface layout and writes the file.
func (s *Store) Put(id string, l geom.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.file.Surfaces[id]; ok && cur == l {
		return nil
	}
	s.file.Surfaces[id] = l
	return Save(s.path, s.file)
}
