package fruitmerge

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
)

// ErrInvalidCatalog is returned when a catalog breaks the ordering invariant.
var ErrInvalidCatalog = errors.New("fruitmerge: invalid catalog")

// FruitType is one immutable catalog tier.
type FruitType struct {
	Name   string
	Radius float64
	Points int // Awarded when this tier is formed by a merge
	Glyph  rune
	Color  core.Color
}

// Catalog is the ordered list of tiers, smallest first.
// The last tier has no successor and never merges.
type Catalog struct {
	types []FruitType
}

// NewCatalog validates and wraps the given tiers.
func NewCatalog(types []FruitType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidCatalog)
	}
	for i := 1; i < len(types); i++ {
		prev, cur := types[i-1], types[i]
		if cur.Radius <= prev.Radius || cur.Points <= prev.Points {
			return nil, fmt.Errorf("%w: tier %d (%s) must be larger and worth more than %s",
				ErrInvalidCatalog, i, cur.Name, prev.Name)
		}
	}
	if types[0].Radius <= 0 {
		return nil, fmt.Errorf("%w: tier 0 has non-positive radius", ErrInvalidCatalog)
	}

	owned := make([]FruitType, len(types))
	copy(owned, types)
	return &Catalog{types: owned}, nil
}

// CatalogFromConfig converts YAML fruit entries into a catalog.
// Missing glyphs default to the first letter of the name; unknown colors
// fall back to the terminal default.
func CatalogFromConfig(fruits []config.FruitConfig) (*Catalog, error) {
	types := make([]FruitType, len(fruits))
	for i, f := range fruits {
		glyph := '●'
		switch {
		case f.Glyph != "":
			glyph, _ = utf8.DecodeRuneInString(f.Glyph)
		case f.Name != "":
			glyph, _ = utf8.DecodeRuneInString(f.Name)
		}
		color, ok := core.ParseColor(f.Color)
		if !ok {
			color = core.ColorDefault
		}
		types[i] = FruitType{
			Name:   f.Name,
			Radius: f.Radius,
			Points: f.Points,
			Glyph:  glyph,
			Color:  color,
		}
	}
	return NewCatalog(types)
}

// Len returns the number of tiers.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Valid reports whether i is a real tier index.
func (c *Catalog) Valid(i int) bool {
	return i >= 0 && i < len(c.types)
}

// Def returns the tier at i, clamping out-of-range indices to the nearest
// real tier so lookups on bad data degrade instead of panicking.
func (c *Catalog) Def(i int) FruitType {
	return c.types[core.Clamp(i, 0, len(c.types)-1)]
}

// Radius is shorthand for Def(i).Radius.
func (c *Catalog) Radius(i int) float64 {
	return c.Def(i).Radius
}

// IsLast reports whether tier i has no successor.
func (c *Catalog) IsLast(i int) bool {
	return i >= len(c.types)-1
}

// CanMerge reports whether two fruits of tier i may fuse.
func (c *Catalog) CanMerge(i int) bool {
	return c.Valid(i) && !c.IsLast(i)
}
