package catalog

import (
	"fmt"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/filter"
	"github.com/filtra-labs/filtra/internal/sets"
	"github.com/filtra-labs/filtra/pkg/models"
)

// BuildUniverse constructs a universe from its definition.
func BuildUniverse(def models.UniverseDefinition) (*sets.Universe, error) {
	return sets.NewUniverse(def.Elements...)
}

// BuildMapping constructs a mapping from its definition, resolving the
// source and target universes against the catalog.
func (c *Catalog) BuildMapping(def models.MappingDefinition) (*filter.Mapping, error) {
	from, err := c.Universe(def.From)
	if err != nil {
		return nil, err
	}
	to, err := c.Universe(def.To)
	if err != nil {
		return nil, err
	}
	return filter.NewMapping(from, to, def.Assign)
}

// BuildBasis constructs a basis from its definition over a universe.
// A nil Select list selects every item.
func BuildBasis(u *sets.Universe, def *models.BasisDefinition) (*filter.Basis, error) {
	items := make([]sets.Subset, len(def.Items))
	for i, elems := range def.Items {
		s, err := u.SetOf(elems...)
		if err != nil {
			return nil, err
		}
		items[i] = s
	}
	var selector func(int) bool
	if def.Select != nil {
		selected := make(map[int]struct{}, len(def.Select))
		for _, i := range def.Select {
			if i < 0 || i >= len(items) {
				return nil, errors.NewInvalidWorkspace("basis",
					fmt.Sprintf("selected index %d is out of range (basis has %d items)", i, len(items)))
			}
			selected[i] = struct{}{}
		}
		selector = func(i int) bool {
			_, ok := selected[i]
			return ok
		}
	}
	return filter.NewBasis(u, items, selector)
}

// BuildFilter constructs a filter from its definition, resolving the
// universe against the catalog. Exactly one construction form must be set.
func (c *Catalog) BuildFilter(def models.FilterDefinition) (*NamedFilter, error) {
	u, err := c.Universe(def.Universe)
	if err != nil {
		return nil, err
	}

	forms := 0
	if def.Members != nil {
		forms++
	}
	if def.Principal != nil {
		forms++
	}
	if def.Basis != nil {
		forms++
	}
	if def.Top {
		forms++
	}
	if def.Bottom {
		forms++
	}
	if forms != 1 {
		return nil, errors.NewInvalidWorkspace("filters",
			fmt.Sprintf("filter %q must use exactly one of members, principal, basis, top, bottom (got %d)", def.Name, forms))
	}

	var f *filter.Filter
	switch {
	case def.Members != nil:
		family := make([]sets.Subset, len(def.Members))
		for i, elems := range def.Members {
			s, err := u.SetOf(elems...)
			if err != nil {
				return nil, err
			}
			family[i] = s
		}
		f, err = filter.FromMembers(u, family)
	case def.Principal != nil:
		var s sets.Subset
		s, err = u.SetOf(def.Principal...)
		if err == nil {
			f = filter.Principal(s)
		}
	case def.Basis != nil:
		var b *filter.Basis
		b, err = BuildBasis(u, def.Basis)
		if err == nil {
			f, err = b.Filter()
		}
	case def.Top:
		f = filter.Top(u)
	case def.Bottom:
		f = filter.Bottom(u)
	}
	if err != nil {
		return nil, err
	}

	return &NamedFilter{
		Name:        def.Name,
		Universe:    def.Universe,
		Description: def.Description,
		Filter:      f,
	}, nil
}
