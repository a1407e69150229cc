package catalog

import (
	"errors"
	"sort"
	"sync"
)

// ErrFilmNotFound is returned when a film id is not in the catalog.
// Handlers translate this into an HTTP 404 response.
var ErrFilmNotFound = errors.New("film not found")

// ErrDuplicateFilm is returned when a film with the same id is added
// twice. Handlers translate this into an HTTP 409 response.
var ErrDuplicateFilm = errors.New("film already registered")

// Catalog is the in-memory film registry. It is safe for concurrent
// use; the map is guarded by a read-write mutex while counter updates
// on the films themselves are atomic and need no lock.
type Catalog struct {
	mu    sync.RWMutex
	films map[string]*Film
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{films: make(map[string]*Film)}
}

// Add registers a film. The only validation is id uniqueness.
func (c *Catalog) Add(f *Film) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.films[f.ID]; ok {
		return ErrDuplicateFilm
	}
	c.films[f.ID] = f
	return nil
}

// Get looks a film up by id.
func (c *Catalog) Get(id string) (*Film, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	return f, nil
}

// List returns every film ordered by creation time (oldest first, id
// as tiebreaker) so callers see a stable ordering.
func (c *Catalog) List() []*Film {
	c.mu.RLock()
	out := make([]*Film, 0, len(c.films))
	for _, f := range c.films {
		out = append(out, f)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
