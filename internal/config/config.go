// Package config provides YAML-based game configuration loading and
// difficulty presets for the bounce game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// BounceConfig contains all tunable parameters of the bounce game.
// Every constant the physics step uses lives here so tests can change it.
type BounceConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Ball      BallConfig     `yaml:"ball"`
	Paddle    PaddleConfig   `yaml:"paddle"`
	Targets   TargetConfig   `yaml:"targets"`
	PowerUps  PowerUpConfig  `yaml:"powerups"`
	Particles ParticleConfig `yaml:"particles"`
	Session   SessionConfig  `yaml:"session"`
	Timing    TimingConfig   `yaml:"timing"`
}

// FieldConfig defines the playfield size in playfield units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines the ball's launch parameters.
type BallConfig struct {
	Radius         float64 `yaml:"radius"`
	LaunchDX       float64 `yaml:"launch_dx"`       // Horizontal launch speed (sign is randomized on relaunch)
	LaunchDY       float64 `yaml:"launch_dy"`       // Vertical launch speed (negative = up)
	RelaunchOffset float64 `yaml:"relaunch_offset"` // Distance from the bottom where the ball relaunches
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // Units per reference frame
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the bottom to the paddle's top edge
}

// TargetConfig defines how target batches are generated per level.
type TargetConfig struct {
	BaseCount       int     `yaml:"base_count"`        // Targets at level 0
	PerLevel        int     `yaml:"per_level"`         // Extra targets per level
	MaxRows         int     `yaml:"max_rows"`          // Row cap
	LevelsPerRow    int     `yaml:"levels_per_row"`    // A new row every N levels
	Height          float64 `yaml:"height"`            // Target height
	Top             float64 `yaml:"top"`               // Center y of the first row
	RowGap          float64 `yaml:"row_gap"`           // Vertical gap between rows
	SideMargin      float64 `yaml:"side_margin"`       // Empty margin on both sides of the batch
	Gap             float64 `yaml:"gap"`               // Horizontal gap between targets
	MaxHealth       int     `yaml:"max_health"`        // Health cap
	LevelsPerHealth int     `yaml:"levels_per_health"` // +1 health every N levels
	PointsPerHealth int     `yaml:"points_per_health"` // Points = max health * this
}

// PowerUpConfig defines power-up spawning and effects.
type PowerUpConfig struct {
	SpawnChance    float64       `yaml:"spawn_chance"`    // Probability (0-1) of a drop when a target is destroyed
	Radius         float64       `yaml:"radius"`
	FallSpeed      float64       `yaml:"fall_speed"`      // Units per reference frame
	Duration       time.Duration `yaml:"duration"`        // Real-time length of timed effects
	EnlargedRadius float64       `yaml:"enlarged_radius"` // Ball radius while enlarged
	WidenedWidth   float64       `yaml:"widened_width"`   // Paddle width while widened
	SlowSpeed      float64       `yaml:"slow_speed"`      // Ball speed while slowed
	NormalSpeed    float64       `yaml:"normal_speed"`    // Ball speed restored when slow-ball expires
}

// ParticleConfig defines the impact particle bursts.
type ParticleConfig struct {
	Count     int     `yaml:"count"`      // Particles per burst
	Spread    float64 `yaml:"spread"`     // Max speed spread per axis
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Decay     float64 `yaml:"decay"`     // Alpha multiplier per reference frame
	MinAlpha  float64 `yaml:"min_alpha"` // Removed below this alpha
}

// SessionConfig defines session-level rules.
type SessionConfig struct {
	Lives      int `yaml:"lives"`       // Lives at start
	LevelBonus int `yaml:"level_bonus"` // Bonus = level * this on level clear
}

// TimingConfig defines how elapsed time maps to simulation steps.
type TimingConfig struct {
	ReferenceFrame time.Duration `yaml:"reference_frame"` // Elapsed time that equals a time scale of 1.0
	MaxTimeScale   float64       `yaml:"max_time_scale"`  // Upper bound for one step's time scale
}

// TimeScale converts elapsed time into the normalized step scale.
func (t TimingConfig) TimeScale(elapsed time.Duration) float64 {
	if elapsed <= 0 || t.ReferenceFrame <= 0 {
		return 0
	}
	scale := float64(elapsed) / float64(t.ReferenceFrame)
	if t.MaxTimeScale > 0 && scale > t.MaxTimeScale {
		scale = t.MaxTimeScale
	}
	return scale
}

// Validate checks that the configuration describes a playable game.
func (c BounceConfig) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{c.Field.Width > 0 && c.Field.Height > 0, "field size must be positive"},
		{c.Ball.Radius > 0, "ball.radius must be positive"},
		{c.Ball.LaunchDY < 0, "ball.launch_dy must point up (negative)"},
		{c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive"},
		{c.Paddle.Width < c.Field.Width, "paddle.width must be smaller than field.width"},
		{c.Paddle.Speed >= 0, "paddle.speed must not be negative"},
		{c.Targets.BaseCount+c.Targets.PerLevel > 0, "targets must produce at least one target"},
		{c.Targets.MaxRows > 0, "targets.max_rows must be positive"},
		{c.Targets.LevelsPerRow > 0, "targets.levels_per_row must be positive"},
		{c.Targets.MaxHealth > 0, "targets.max_health must be positive"},
		{c.Targets.LevelsPerHealth > 0, "targets.levels_per_health must be positive"},
		{c.Targets.Height > 0, "targets.height must be positive"},
		{c.Field.Width > 2*c.Targets.SideMargin, "targets.side_margin leaves no room"},
		{c.PowerUps.SpawnChance >= 0 && c.PowerUps.SpawnChance <= 1, "powerups.spawn_chance must be within [0, 1]"},
		{c.PowerUps.Radius > 0, "powerups.radius must be positive"},
		{c.PowerUps.Duration > 0, "powerups.duration must be positive"},
		{c.PowerUps.EnlargedRadius > 0, "powerups.enlarged_radius must be positive"},
		{c.PowerUps.WidenedWidth > 0 && c.PowerUps.WidenedWidth < c.Field.Width, "powerups.widened_width must fit the field"},
		{c.PowerUps.SlowSpeed > 0 && c.PowerUps.NormalSpeed > 0, "powerups speeds must be positive"},
		{c.Particles.Decay > 0 && c.Particles.Decay < 1, "particles.decay must be within (0, 1)"},
		{c.Particles.Count >= 0, "particles.count must not be negative"},
		{c.Session.Lives > 0, "session.lives must be positive"},
		{c.Timing.ReferenceFrame > 0, "timing.reference_frame must be positive"},
	}

	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, check.name)
		}
	}
	return nil
}
