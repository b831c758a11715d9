// Package catalog holds the named objects of a filter workspace: universes,
// mappings, filters, and exercises. Everything the checker resolves by name
// lives here.
package catalog

import (
	"sort"
	"sync"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/exercises"
	"github.com/filtra-labs/filtra/internal/filter"
	"github.com/filtra-labs/filtra/internal/sets"
	"github.com/filtra-labs/filtra/pkg/models"
)

// NamedFilter is a filter registered under a name, with its annotation.
type NamedFilter struct {
	Name        string
	Universe    string
	Description string
	Filter      *filter.Filter
}

// Info returns the API representation of the named filter.
// Members are included only when full is set.
func (nf *NamedFilter) Info(full bool) models.FilterInfo {
	info := models.FilterInfo{
		Name:        nf.Name,
		Universe:    nf.Universe,
		Description: nf.Description,
		MemberCount: nf.Filter.MemberCount(),
		Core:        nf.Filter.Core().Elements(),
		Trivial:     nf.Filter.IsTrivial(),
	}
	if full {
		for _, m := range nf.Filter.Members() {
			info.Members = append(info.Members, m.Elements())
		}
	}
	return info
}

// Catalog is the in-memory registry of workspace objects.
// Safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	universes map[string]*sets.Universe
	mappings  map[string]*filter.Mapping
	filters   map[string]*NamedFilter
	exercises map[string]*exercises.Exercise
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		universes: make(map[string]*sets.Universe),
		mappings:  make(map[string]*filter.Mapping),
		filters:   make(map[string]*NamedFilter),
		exercises: make(map[string]*exercises.Exercise),
	}
}

// AddUniverse registers a universe under a name.
func (c *Catalog) AddUniverse(name string, u *sets.Universe) error {
	if name == "" {
		return errors.NewInvalidWorkspace("universes", "universe name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.universes[name]; exists {
		return errors.NewInvalidWorkspace("universes", "duplicate universe name: "+name)
	}
	c.universes[name] = u
	return nil
}

// Universe returns a registered universe by name.
func (c *Catalog) Universe(name string) (*sets.Universe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.universes[name]
	if !ok {
		return nil, errors.NewUniverseNotFound(name)
	}
	return u, nil
}

// UniverseNames returns all registered universe names, sorted.
func (c *Catalog) UniverseNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.universes)
}

// AddMapping registers a mapping under a name.
func (c *Catalog) AddMapping(name string, m *filter.Mapping) error {
	if name == "" {
		return errors.NewInvalidWorkspace("mappings", "mapping name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.mappings[name]; exists {
		return errors.NewInvalidWorkspace("mappings", "duplicate mapping name: "+name)
	}
	c.mappings[name] = m
	return nil
}

// Mapping returns a registered mapping by name.
func (c *Catalog) Mapping(name string) (*filter.Mapping, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.mappings[name]
	if !ok {
		return nil, errors.NewMappingNotFound(name)
	}
	return m, nil
}

// MappingNames returns all registered mapping names, sorted.
func (c *Catalog) MappingNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.mappings)
}

// AddFilter registers a filter under a name.
func (c *Catalog) AddFilter(nf *NamedFilter) error {
	if nf.Name == "" {
		return errors.NewInvalidWorkspace("filters", "filter name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.filters[nf.Name]; exists {
		return errors.NewInvalidWorkspace("filters", "duplicate filter name: "+nf.Name)
	}
	c.filters[nf.Name] = nf
	return nil
}

// Filter returns a registered filter by name.
func (c *Catalog) Filter(name string) (*NamedFilter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nf, ok := c.filters[name]
	if !ok {
		return nil, errors.NewFilterNotFound(name)
	}
	return nf, nil
}

// FilterNames returns all registered filter names, sorted.
func (c *Catalog) FilterNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.filters)
}

// Filters returns all registered filters, ordered by name.
func (c *Catalog) Filters() []*NamedFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*NamedFilter, 0, len(c.filters))
	for _, name := range sortedKeys(c.filters) {
		result = append(result, c.filters[name])
	}
	return result
}

// AddExercise registers an exercise under its name.
func (c *Catalog) AddExercise(ex *exercises.Exercise) error {
	if ex.Name == "" {
		return errors.NewInvalidWorkspace("exercises", "exercise name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.exercises[ex.Name]; exists {
		return errors.NewInvalidWorkspace("exercises", "duplicate exercise name: "+ex.Name)
	}
	c.exercises[ex.Name] = ex
	return nil
}

// Exercise returns a registered exercise by name.
func (c *Catalog) Exercise(name string) (*exercises.Exercise, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ex, ok := c.exercises[name]
	if !ok {
		return nil, errors.NewExerciseNotFound(name)
	}
	return ex, nil
}

// Exercises returns all registered exercises, ordered by name.
func (c *Catalog) Exercises() []*exercises.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*exercises.Exercise, 0, len(c.exercises))
	for _, name := range sortedKeys(c.exercises) {
		result = append(result, c.exercises[name])
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
