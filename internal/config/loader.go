package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadBounce loads the bounce configuration.
// Search order: customPath -> ~/.bounce/configs/bounce.yaml -> ./configs/bounce.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadBounce(customPath string) (BounceConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBounceConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBounce(data)
		if err != nil {
			return DefaultBounceConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bounce.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBounce(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bounce.yaml")); err == nil {
		if cfg, err := parseBounce(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBounce(defaultBounceYAML)
	if err != nil {
		return DefaultBounceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBounce decodes YAML over the hardcoded defaults and validates the result.
func parseBounce(data []byte) (BounceConfig, error) {
	cfg := DefaultBounceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
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
	return filepath.Join(home, ".bounce", "configs", filename)
}

// DifficultyPreset represents predefined difficulty settings.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists all presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a string into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalid, s)
	}
}

// Description returns a one-line summary for menus.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Slower ball, wider paddle, 5 lives"
	case DifficultyHard:
		return "Faster ball, narrow paddle, 2 lives"
	default:
		return "The classic challenge"
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *BounceConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		scaleBallSpeed(cfg, 0.75)
		cfg.Paddle.Width *= 1.2
		cfg.Session.Lives = 5
		cfg.PowerUps.SpawnChance = clampChance(cfg.PowerUps.SpawnChance * 1.5)
		cfg.PowerUps.Duration += 5 * time.Second
	case DifficultyHard:
		scaleBallSpeed(cfg, 1.25)
		cfg.Paddle.Width *= 0.8
		cfg.Session.Lives = 2
		cfg.PowerUps.SpawnChance = clampChance(cfg.PowerUps.SpawnChance * 0.6)
		if cfg.PowerUps.Duration > 6*time.Second {
			cfg.PowerUps.Duration -= 3 * time.Second
		}
	}
}

// scaleBallSpeed scales every ball speed together so slow-ball expiry
// restores the preset's own speed.
func scaleBallSpeed(cfg *BounceConfig, f float64) {
	cfg.Ball.LaunchDX *= f
	cfg.Ball.LaunchDY *= f
	cfg.PowerUps.SlowSpeed *= f
	cfg.PowerUps.NormalSpeed *= f
}

func clampChance(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
