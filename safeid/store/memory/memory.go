package memory

import (
	"sync"

	"github.com/TheusHen/safeid/safeid/name"
	"github.com/TheusHen/safeid/safeid/store"
)

// Store is an in-memory record store.
// It is useful for tests, examples and embedding in applications.
type Store struct {
	mu      sync.RWMutex
	entries map[name.Name]store.Entry
}

func New() *Store {
	return &Store{entries: map[name.Name]store.Entry{}}
}

func (s *Store) Put(entry store.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Name] = entry.Clone()
	return nil
}

func (s *Store) Get(n name.Name) (store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[n]
	if !ok {
		return store.Entry{}, store.ErrNotFound
	}
	return entry.Clone(), nil
}

func (s *Store) List() ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.Clone())
	}
	return out, nil
}
