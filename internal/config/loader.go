package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a variant.
// Search order: customPath -> ~/.fruitmerge/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped silently when unusable.
func Load(variant, customPath string) (FruitMergeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FruitMergeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FruitMergeConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	if data := GetDefaultYAML(variant); data != nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Fallback to hardcoded if the embed is missing or broken
	return DefaultFruitMergeConfig(), nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (FruitMergeConfig, error) {
	var cfg FruitMergeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitmerge", "configs", filename)
}
