package fruitmerge

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
)

// twoTierCatalog is the smallest catalog with a mergeable tier.
func twoTierCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog([]FruitType{
		{Name: "small", Radius: 15, Points: 10, Glyph: 's'},
		{Name: "big", Radius: 20, Points: 20, Glyph: 'b'},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return cat
}

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := CatalogFromConfig(config.DefaultFruitMergeConfig().Fruits)
	if err != nil {
		t.Fatalf("CatalogFromConfig failed: %v", err)
	}
	return cat
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		types []FruitType
	}{
		{"empty", nil},
		{"zero radius", []FruitType{{Radius: 0, Points: 1}}},
		{"equal radius", []FruitType{{Radius: 10, Points: 1}, {Radius: 10, Points: 2}}},
		{"shrinking radius", []FruitType{{Radius: 10, Points: 1}, {Radius: 5, Points: 2}}},
		{"equal points", []FruitType{{Radius: 10, Points: 5}, {Radius: 20, Points: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.types)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestCatalogDefClamps(t *testing.T) {
	cat := twoTierCatalog(t)

	if got := cat.Def(-3).Name; got != "small" {
		t.Errorf("Def(-3) = %q, want small", got)
	}
	if got := cat.Def(99).Name; got != "big" {
		t.Errorf("Def(99) = %q, want big", got)
	}
	if cat.Valid(2) || !cat.Valid(1) {
		t.Error("Valid should accept only 0..Len-1")
	}
}

func TestCatalogLastTier(t *testing.T) {
	cat := twoTierCatalog(t)

	if !cat.CanMerge(0) {
		t.Error("tier 0 should be mergeable")
	}
	if cat.CanMerge(1) {
		t.Error("last tier must not be mergeable")
	}
	if !cat.IsLast(1) {
		t.Error("tier 1 should be last")
	}
}

func TestCatalogFromDefaultConfig(t *testing.T) {
	cat := defaultCatalog(t)

	if cat.Len() != 11 {
		t.Fatalf("Len = %d, want 11", cat.Len())
	}

	first := cat.Def(0)
	if first.Name != "cherry" || first.Radius != 15 || first.Points != 10 || first.Glyph != 'c' {
		t.Errorf("unexpected first tier: %+v", first)
	}

	last := cat.Def(cat.Len() - 1)
	if last.Name != "watermelon" || last.Radius != 70 || last.Points != 10240 {
		t.Errorf("unexpected last tier: %+v", last)
	}
}

func TestCatalogFromConfigGlyphFallback(t *testing.T) {
	cat, err := CatalogFromConfig([]config.FruitConfig{
		{Name: "kiwi", Radius: 10, Points: 5, Color: "no_such_color"},
	})
	if err != nil {
		t.Fatalf("CatalogFromConfig failed: %v", err)
	}
	if got := cat.Def(0).Glyph; got != 'k' {
		t.Errorf("glyph = %q, want 'k'", got)
	}
}
