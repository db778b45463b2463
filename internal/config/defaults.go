package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bounce.yaml
var defaultBounceYAML []byte

// DefaultBounceConfig returns the default bounce configuration.
// Values match the embedded defaults/bounce.yaml.
func DefaultBounceConfig() BounceConfig {
	return BounceConfig{
		Field: FieldConfig{
			Width:  600,
			Height: 402,
		},
		Ball: BallConfig{
			Radius:         10,
			LaunchDX:       3,
			LaunchDY:       -4,
			RelaunchOffset: 50,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       10,
			Speed:        8,
			BottomOffset: 20,
		},
		Targets: TargetConfig{
			BaseCount:       5,
			PerLevel:        2,
			MaxRows:         4,
			LevelsPerRow:    2,
			Height:          30,
			Top:             50,
			RowGap:          10,
			SideMargin:      50,
			Gap:             10,
			MaxHealth:       3,
			LevelsPerHealth: 3,
			PointsPerHealth: 10,
		},
		PowerUps: PowerUpConfig{
			SpawnChance:    0.3,
			Radius:         8,
			FallSpeed:      2,
			Duration:       10 * time.Second,
			EnlargedRadius: 15,
			WidenedWidth:   150,
			SlowSpeed:      2,
			NormalSpeed:    5,
		},
		Particles: ParticleConfig{
			Count:     10,
			Spread:    8,
			MinRadius: 1,
			MaxRadius: 4,
			Decay:     0.96,
			MinAlpha:  0.1,
		},
		Session: SessionConfig{
			Lives:      3,
			LevelBonus: 50,
		},
		Timing: TimingConfig{
			ReferenceFrame: time.Second / 60,
			MaxTimeScale:   3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBounceYAML
}
