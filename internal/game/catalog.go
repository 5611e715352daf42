package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// Catalog is the ordered, immutable set of species.
type Catalog struct {
	species []*Species
	byId    map[string]*Species
}

// NewCatalog orders the species by their Order field (then id) and checks
// that every location has an unconditional common fallback. Any failure is
// a configuration fault.
func NewCatalog(species map[string]*Species) (*Catalog, error) {
	c := &Catalog{
		byId: make(map[string]*Species, len(species)),
	}
	for id, sp := range species {
		sp.Id = id
		c.species = append(c.species, sp)
		c.byId[id] = sp
	}
	slices.SortFunc(c.species, func(a, b *Species) int {
		if n := cmp.Compare(a.Order, b.Order); n != 0 {
			return n
		}
		return cmp.Compare(a.Id, b.Id)
	})

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the catalog can always produce a catch.
func (c *Catalog) Validate() error {
	if len(c.species) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrConfigurationFault)
	}

	el := errors.NewErrorList()
	for _, loc := range Locations {
		if c.Fallback(loc) == nil {
			el.Add(fmt.Errorf("%w: no unconditional common species for %s", ErrConfigurationFault, loc))
		}
	}
	return el.Err()
}

// All returns the species in catalog order.
func (c *Catalog) All() []*Species {
	return slices.Clone(c.species)
}

// Get returns the species with the given id, or nil.
func (c *Catalog) Get(id string) *Species {
	return c.byId[id]
}

// Len is the number of distinct species.
func (c *Catalog) Len() int {
	return len(c.species)
}

// Fallback returns the first unconditional common species for loc, or nil.
func (c *Catalog) Fallback(loc Location) *Species {
	for _, sp := range c.species {
		if sp.Rarity == RarityCommon && sp.Gate == GateNone && sp.FoundIn(loc) {
			return sp
		}
	}
	return nil
}

// Default is the fixed last-resort species: the first common entry.
func (c *Catalog) Default() *Species {
	for _, sp := range c.species {
		if sp.Rarity == RarityCommon {
			return sp
		}
	}
	return c.species[0]
}
