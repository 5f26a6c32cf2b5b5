package store

import (
	"context"
	"slices"
	"sync"

	"consentintel/internal/consent/models"
	"consentintel/pkg/platform/sentinel"
)

// Error contract: FindInstalled returns sentinel.ErrNotFound for apps that
// are not installed. All other methods succeed for the in-memory store.

// InMemoryStore owns the installed-app and timeline collections for the
// lifetime of the process. Reads hand out copies.
type InMemoryStore struct {
	mu        sync.RWMutex
	installed []*models.InstalledApp
	index     map[string]int
	events    []*models.TimelineEvent
}

// New constructs an empty in-memory consent store.
func New() *InMemoryStore {
	return &InMemoryStore{index: make(map[string]int)}
}

func (s *InMemoryStore) FindInstalled(_ context.Context, appID string) (*models.InstalledApp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[appID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyApp := *s.installed[i]
	return &copyApp, nil
}

// ListInstalled returns installed apps in install order.
func (s *InMemoryStore) ListInstalled(_ context.Context) ([]*models.InstalledApp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.InstalledApp, 0, len(s.installed))
	for _, app := range s.installed {
		copyApp := *app
		out = append(out, &copyApp)
	}
	return out, nil
}

// SaveInstalled inserts a new record or replaces the existing one in place,
// keeping its original position.
func (s *InMemoryStore) SaveInstalled(_ context.Context, app *models.InstalledApp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyApp := *app
	if i, ok := s.index[app.AppID]; ok {
		s.installed[i] = &copyApp
		return nil
	}
	s.index[app.AppID] = len(s.installed)
	s.installed = append(s.installed, &copyApp)
	return nil
}

// DeleteInstalled removes an installed record, keeping the order of the rest.
// Deleting an app that is not installed is a no-op.
func (s *InMemoryStore) DeleteInstalled(_ context.Context, appID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[appID]
	if !ok {
		return nil
	}
	s.installed = slices.Delete(s.installed, i, i+1)
	delete(s.index, appID)
	for j := i; j < len(s.installed); j++ {
		s.index[s.installed[j].AppID] = j
	}
	return nil
}

func (s *InMemoryStore) AppendEvent(_ context.Context, event *models.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyEvent := *event
	s.events = append(s.events, &copyEvent)
	return nil
}

// ListEvents returns matching events in insertion order.
func (s *InMemoryStore) ListEvents(_ context.Context, filter models.EventFilter) ([]*models.TimelineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TimelineEvent, 0)
	for _, e := range s.events {
		if filter.AppID != "" && e.AppID != filter.AppID {
			continue
		}
		if len(filter.Severities) > 0 && !slices.Contains(filter.Severities, e.Severity) {
			continue
		}
		copyEvent := *e
		out = append(out, &copyEvent)
	}
	return out, nil
}

func (s *InMemoryStore) CountInstalled(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.installed), nil
}

// Reset clears both collections under one write lock so readers never see
// one emptied without the other.
func (s *InMemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installed = nil
	s.index = make(map[string]int)
	s.events = nil
	return nil
}
