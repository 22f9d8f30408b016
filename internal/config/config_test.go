package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	for _, variant := range []string{VariantClassic, VariantMini} {
		t.Run(variant, func(t *testing.T) {
			data := GetDefaultYAML(variant)
			if data == nil {
				t.Fatal("embedded default missing")
			}
			if _, err := Parse(data); err != nil {
				t.Fatalf("embedded default invalid: %v", err)
			}
		})
	}

	if GetDefaultYAML("nope") != nil {
		t.Error("unknown variant should have no embedded default")
	}
}

func TestEmbeddedClassicMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(GetDefaultYAML(VariantClassic))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFruitMergeConfig()) {
		t.Errorf("embedded classic config drifted from DefaultFruitMergeConfig:\n%+v\n%+v", cfg, DefaultFruitMergeConfig())
	}
}

func TestDefaultConstants(t *testing.T) {
	cfg := DefaultFruitMergeConfig()

	if cfg.Physics.Gravity != 0.3 || cfg.Physics.Friction != 0.99 || cfg.Physics.Restitution != 0.3 {
		t.Errorf("unexpected physics: %+v", cfg.Physics)
	}
	if cfg.Container.Width != 400 || cfg.Container.Height != 600 || cfg.Container.SpawnY != 50 {
		t.Errorf("unexpected container: %+v", cfg.Container)
	}
	if cfg.Drop.CooldownMS != 1000 || cfg.Drop.SpawnTiers != 5 {
		t.Errorf("unexpected drop rules: %+v", cfg.Drop)
	}
	if len(cfg.Fruits) != 11 {
		t.Errorf("catalog has %d tiers, want 11", len(cfg.Fruits))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FruitMergeConfig)
	}{
		{"zero width", func(c *FruitMergeConfig) { c.Container.Width = 0 }},
		{"danger line at top", func(c *FruitMergeConfig) { c.Container.DangerLine = 0 }},
		{"danger line past floor", func(c *FruitMergeConfig) { c.Container.DangerLine = 1.5 }},
		{"spawn below floor", func(c *FruitMergeConfig) { c.Container.SpawnY = 700 }},
		{"negative gravity", func(c *FruitMergeConfig) { c.Physics.Gravity = -1 }},
		{"restitution above one", func(c *FruitMergeConfig) { c.Physics.Restitution = 1.2 }},
		{"no spawn tiers", func(c *FruitMergeConfig) { c.Drop.SpawnTiers = 0 }},
		{"zero step", func(c *FruitMergeConfig) { c.Drop.Step = 0 }},
		{"margin too wide", func(c *FruitMergeConfig) { c.Drop.Margin = 300 }},
		{"empty catalog", func(c *FruitMergeConfig) { c.Fruits = nil }},
		{"radius not increasing", func(c *FruitMergeConfig) { c.Fruits[1].Radius = c.Fruits[0].Radius }},
		{"points not increasing", func(c *FruitMergeConfig) { c.Fruits[2].Points = 1 }},
		{"long glyph", func(c *FruitMergeConfig) { c.Fruits[0].Glyph = "ch" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultFruitMergeConfig()
			tt.mutate(&cfg)
			if err := Validate(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := Validate(DefaultFruitMergeConfig()); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	data := []byte(`
physics: {gravity: 0.5, friction: 0.9, restitution: 0.2}
container: {width: 200, height: 300, danger_line: 0.2, spawn_y: 30}
drop: {cooldown_ms: 500, spawn_tiers: 2, step: 5, margin: 20}
fruits:
  - {name: a, radius: 10, points: 1}
  - {name: b, radius: 12, points: 2}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(VariantClassic, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 || cfg.Container.Width != 200 || len(cfg.Fruits) != 2 {
		t.Errorf("custom config not applied: %+v", cfg)
	}
	if d := cfg.Container.DangerY(); d < 59.999 || d > 60.001 {
		t.Errorf("DangerY = %f, want 60", cfg.Container.DangerY())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(VariantClassic, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(VariantClassic, bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("fruits: []\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(VariantClassic, invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadUnknownVariantFallsBack(t *testing.T) {
	cfg, err := Load("no_such_variant", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFruitMergeConfig()) {
		t.Error("unknown variant should fall back to the hard-coded defaults")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"normal", DifficultyNormal},
		{"hard", DifficultyHard},
		{"insane", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePreset(tt.in); got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultFruitMergeConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultFruitMergeConfig()) {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultFruitMergeConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Container.DangerLine != 0.10 || easy.Drop.CooldownMS != 700 {
		t.Errorf("easy preset not applied: %+v %+v", easy.Container, easy.Drop)
	}

	hard := DefaultFruitMergeConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Drop.CooldownMS != 1300 || hard.Container.DangerLine != 0.15 {
		t.Errorf("hard preset not applied: %+v %+v", hard.Container, hard.Drop)
	}
	if hard.Drop.SpawnTiers != 5 {
		t.Error("presets should not change the spawn pool")
	}
}
