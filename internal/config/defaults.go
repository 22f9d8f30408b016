package config

import (
	_ "embed"
)

//go:embed defaults/fruitmerge.yaml
var defaultClassicYAML []byte

//go:embed defaults/fruitmerge_mini.yaml
var defaultMiniYAML []byte

// DefaultFruitMergeConfig returns the hard-coded classic configuration.
// Used only when the embedded YAML cannot be parsed.
func DefaultFruitMergeConfig() FruitMergeConfig {
	return FruitMergeConfig{
		Physics: PhysicsConfig{
			Gravity:     0.3,
			Friction:    0.99,
			Restitution: 0.3,
		},
		Container: ContainerConfig{
			Width:      400,
			Height:     600,
			DangerLine: 0.15,
			SpawnY:     50,
		},
		Drop: DropConfig{
			CooldownMS: 1000,
			SpawnTiers: 5,
			Step:       10,
			Margin:     30,
		},
		Fruits: []FruitConfig{
			{Name: "cherry", Radius: 15, Points: 10, Glyph: "c", Color: "bright_red"},
			{Name: "strawberry", Radius: 20, Points: 20, Glyph: "s", Color: "red"},
			{Name: "grape", Radius: 25, Points: 40, Glyph: "g", Color: "purple"},
			{Name: "orange", Radius: 30, Points: 80, Glyph: "o", Color: "orange"},
			{Name: "persimmon", Radius: 35, Points: 160, Glyph: "p", Color: "bright_yellow"},
			{Name: "apple", Radius: 40, Points: 320, Glyph: "a", Color: "bright_magenta"},
			{Name: "pear", Radius: 45, Points: 640, Glyph: "e", Color: "bright_green"},
			{Name: "peach", Radius: 50, Points: 1280, Glyph: "h", Color: "peach"},
			{Name: "pineapple", Radius: 55, Points: 2560, Glyph: "n", Color: "yellow"},
			{Name: "melon", Radius: 60, Points: 5120, Glyph: "m", Color: "green"},
			{Name: "watermelon", Radius: 70, Points: 10240, Glyph: "W", Color: "dark_green"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantClassic:
		return defaultClassicYAML
	case VariantMini:
		return defaultMiniYAML
	default:
		return nil
	}
}
