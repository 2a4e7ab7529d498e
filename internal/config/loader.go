package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTrickshot loads trick-shot configuration. Files may be partial; keys
// they omit keep their default values.
// Search order: customPath -> ~/.mayhem/configs/trickshot.yaml -> ./configs/trickshot.yaml -> embedded default
func LoadTrickshot(customPath string) (TrickshotConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TrickshotConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTrickshot(data)
		if err != nil {
			return TrickshotConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("trickshot.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTrickshot(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "trickshot.yaml")); err == nil {
		if cfg, err := parseTrickshot(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTrickshot(defaultTrickshotYAML)
	if err != nil {
		return DefaultTrickshotConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTrickshot decodes data over the hardcoded defaults and validates the
// result.
func parseTrickshot(data []byte) (TrickshotConfig, error) {
	cfg := DefaultTrickshotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TrickshotConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TrickshotConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mayhem", "configs", filename)
}

// ApplyTrickshotPreset modifies the config based on a difficulty preset.
// The fixed preset leaves progression as configured; games started for it
// switch progression off through the DifficultyManager.
func ApplyTrickshotPreset(cfg *TrickshotConfig, preset DifficultyPreset) {
	if !IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the shot based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Shot.AimStepDegrees = 2
		cfg.Shot.PowerStep = 25
	case DifficultyHard:
		cfg.Shot.AimStepDegrees = 10
		cfg.Shot.PowerStep = 100
	}
}
