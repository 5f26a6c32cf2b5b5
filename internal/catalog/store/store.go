// Package store holds the read-only app catalog.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"consentintel/internal/catalog/models"
	"consentintel/pkg/platform/sentinel"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Apps []models.App `yaml:"apps"`
}

// Store is an immutable, ordered catalog. Safe for concurrent use without
// locking because nothing mutates it after construction.
type Store struct {
	apps  []models.App
	index map[string]int
}

// New builds a catalog from apps, rejecting blank or duplicate ids.
func New(apps []models.App) (*Store, error) {
	s := &Store{
		apps:  make([]models.App, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for i, app := range apps {
		id := strings.TrimSpace(app.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %d: id is required: %w", i, sentinel.ErrInvalidInput)
		}
		if _, dup := s.index[id]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q: %w", i, id, sentinel.ErrInvalidInput)
		}
		app.ID = id
		s.index[id] = len(s.apps)
		s.apps = append(s.apps, app.Clone())
	}
	return s, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Apps)
}

// LoadDefault returns the embedded catalog.
func LoadDefault() (*Store, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// List returns every app in catalog order.
func (s *Store) List(_ context.Context) ([]models.App, error) {
	out := make([]models.App, len(s.apps))
	for i, app := range s.apps {
		out[i] = app.Clone()
	}
	return out, nil
}

// FindByID returns sentinel.ErrNotFound for unknown ids.
func (s *Store) FindByID(_ context.Context, id string) (*models.App, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	app := s.apps[i].Clone()
	return &app, nil
}

func (s *Store) Len() int {
	return len(s.apps)
}
