// Package config provides YAML-based game configuration loading, validation
// and difficulty presets for the fruit merge game.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Variant identifiers. Each variant has its own embedded default file and
// its own high-score table.
const (
	VariantClassic = "fruitmerge"
	VariantMini    = "fruitmerge_mini"
)

// ErrInvalidConfig is returned (wrapped) when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// FruitMergeConfig contains all tuning for one game variant.
type FruitMergeConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Container ContainerConfig `yaml:"container"`
	Drop      DropConfig      `yaml:"drop"`
	Fruits    []FruitConfig   `yaml:"fruits"`
}

// PhysicsConfig defines per-tick integration constants.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`     // Added to vy every tick
	Friction    float64 `yaml:"friction"`    // vx multiplier while touching the floor
	Restitution float64 `yaml:"restitution"` // Bounce coefficient for walls and fruit pairs
}

// ContainerConfig defines the play field in world units.
type ContainerConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DangerLine float64 `yaml:"danger_line"` // Fraction of Height measured from the top
	SpawnY     float64 `yaml:"spawn_y"`
}

// DropConfig defines the rules for releasing new pieces.
type DropConfig struct {
	CooldownMS int     `yaml:"cooldown_ms"`
	SpawnTiers int     `yaml:"spawn_tiers"` // Pending pieces are drawn from the first N tiers
	Step       float64 `yaml:"step"`        // Keyboard nudge distance
	Margin     float64 `yaml:"margin"`      // Drop cursor is kept this far from the walls
}

// FruitConfig defines one catalog tier.
type FruitConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Points int     `yaml:"points"`
	Glyph  string  `yaml:"glyph"`
	Color  string  `yaml:"color"`
}

// DangerY returns the danger line y-coordinate in world units.
func (c ContainerConfig) DangerY() float64 {
	return c.Height * c.DangerLine
}

// Validate checks the configuration for values the simulation cannot run with.
func Validate(cfg FruitMergeConfig) error {
	c := cfg.Container
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: container must have positive size, got %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.DangerLine <= 0 || c.DangerLine >= 1:
		return fmt.Errorf("%w: danger_line must be in (0, 1), got %g", ErrInvalidConfig, c.DangerLine)
	case c.SpawnY < 0 || c.SpawnY >= c.Height:
		return fmt.Errorf("%w: spawn_y %g outside container", ErrInvalidConfig, c.SpawnY)
	}

	p := cfg.Physics
	switch {
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative", ErrInvalidConfig)
	case p.Friction < 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction must be in [0, 1], got %g", ErrInvalidConfig, p.Friction)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("%w: restitution must be in [0, 1], got %g", ErrInvalidConfig, p.Restitution)
	}

	d := cfg.Drop
	switch {
	case d.CooldownMS < 0:
		return fmt.Errorf("%w: cooldown_ms must not be negative", ErrInvalidConfig)
	case d.SpawnTiers < 1:
		return fmt.Errorf("%w: spawn_tiers must be at least 1", ErrInvalidConfig)
	case d.Step <= 0:
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfig)
	case d.Margin < 0 || 2*d.Margin > c.Width:
		return fmt.Errorf("%w: margin %g does not fit container width %g", ErrInvalidConfig, d.Margin, c.Width)
	}

	return ValidateFruits(cfg.Fruits)
}

// ValidateFruits checks the catalog invariant: non-empty and strictly
// increasing in both radius and points.
func ValidateFruits(fruits []FruitConfig) error {
	if len(fruits) == 0 {
		return fmt.Errorf("%w: fruit catalog is empty", ErrInvalidConfig)
	}
	for i, f := range fruits {
		if f.Radius <= 0 {
			return fmt.Errorf("%w: fruit %d (%s) has non-positive radius", ErrInvalidConfig, i, f.Name)
		}
		if f.Points < 0 {
			return fmt.Errorf("%w: fruit %d (%s) has negative points", ErrInvalidConfig, i, f.Name)
		}
		if f.Glyph != "" && utf8.RuneCountInString(f.Glyph) != 1 {
			return fmt.Errorf("%w: fruit %d (%s) glyph must be a single character", ErrInvalidConfig, i, f.Name)
		}
		if i == 0 {
			continue
		}
		prev := fruits[i-1]
		if f.Radius <= prev.Radius {
			return fmt.Errorf("%w: fruit %d (%s) radius %g not larger than %s", ErrInvalidConfig, i, f.Name, f.Radius, prev.Name)
		}
		if f.Points <= prev.Points {
			return fmt.Errorf("%w: fruit %d (%s) points %d not larger than %s", ErrInvalidConfig, i, f.Name, f.Points, prev.Name)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal and unknown presets leave the config untouched.
func ApplyPreset(cfg *FruitMergeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Container.DangerLine = 0.10
		cfg.Drop.CooldownMS = 700
	case DifficultyHard:
		cfg.Drop.CooldownMS = 1300
	}
}
