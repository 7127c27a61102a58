package source

import (
	"sync"

	"github.com/howlerhq/howler-api/pkg/apperror"
)

// Registry holds the tracked accounts in the order they were added.
// Usernames are unique on their normalized form, matched exactly.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(s Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sources {
		if existing.Username == s.Username {
			return apperror.NewConflict("account", "username", s.Username)
		}
	}
	r.sources = append(r.sources, s)
	return nil
}

func (r *Registry) Remove(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sources {
		if s.Username == username {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("account", username)
}

func (r *Registry) Has(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sources {
		if s.Username == username {
			return true
		}
	}
	return false
}

// List returns the tracked accounts in registry order.
func (r *Registry) List() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

func (r *Registry) Restore(sources []Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sources = make([]Source, len(sources))
	copy(r.sources, sources)
}
