// Package bounce implements the bounce challenge: a ball-and-paddle game where
// the player clears batches of multi-hit targets while catching power-ups.
//
// The package is split into a pure physics World (entities + Step) and a
// Session state machine that drives it, applies its events and persists the
// high score through an injected KeyValueStore.
package bounce

import (
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Ball is the bouncing ball.
type Ball struct {
	Pos    core.Vec
	Vel    core.Vec // Units per reference frame
	Radius float64
}

// Circle returns the ball as a collision circle.
func (b Ball) Circle() core.Circle {
	return core.Circle{Center: b.Pos, R: b.Radius}
}

// Paddle is the player's paddle. Y is the top edge and never changes.
type Paddle struct {
	X      float64 // Left edge
	Y      float64 // Top edge
	Width  float64
	Height float64
	Speed  float64
}

// Rect returns the paddle's bounding box.
func (p Paddle) Rect() core.Rect {
	return core.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Right returns the x-coordinate of the right edge.
func (p Paddle) Right() float64 {
	return p.X + p.Width
}

// clampTo keeps the paddle inside [0, fieldW - width].
func (p *Paddle) clampTo(fieldW float64) {
	p.X = core.ClampF(p.X, 0, max(fieldW-p.Width, 0))
}

// Target is a brick. Destroyed targets stay in the batch with zero health.
type Target struct {
	Center    core.Vec
	Width     float64
	Height    float64
	Health    int
	MaxHealth int
	Points    int
	Color     core.Color
}

// Active reports whether the target is still in play.
func (t Target) Active() bool {
	return t.Health > 0
}

// Rect returns the target's bounding box.
func (t Target) Rect() core.Rect {
	return core.RectFromCenter(t.Center, t.Width, t.Height)
}

// HealthColor returns the display color for a health value.
func HealthColor(health int) core.Color {
	switch health {
	case 1:
		return core.ColorRed
	case 2:
		return core.ColorOrange
	case 3:
		return core.ColorGreen
	default:
		return core.ColorBlue
	}
}

// PowerUpKind enumerates the power-up types.
type PowerUpKind int

const (
	PowerUpExtraLife   PowerUpKind = iota // +1 life, immediate
	PowerUpEnlargeBall                    // Bigger ball for a while
	PowerUpWidenPaddle                    // Wider paddle for a while
	PowerUpSlowBall                       // Slower ball for a while
	powerUpKindCount                      // Sentinel for counting types
)

// PowerUpKinds lists every kind in spawn order.
var PowerUpKinds = []PowerUpKind{PowerUpExtraLife, PowerUpEnlargeBall, PowerUpWidenPaddle, PowerUpSlowBall}

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraLife:
		return "extra-life"
	case PowerUpEnlargeBall:
		return "enlarge-ball"
	case PowerUpWidenPaddle:
		return "widen-paddle"
	case PowerUpSlowBall:
		return "slow-ball"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a power-up kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpExtraLife:
		return '♥'
	case PowerUpEnlargeBall:
		return 'O'
	case PowerUpWidenPaddle:
		return 'W'
	case PowerUpSlowBall:
		return 'S'
	default:
		return '?'
	}
}

// Color returns the display color for a power-up kind.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpExtraLife:
		return core.ColorRed
	case PowerUpEnlargeBall:
		return core.ColorBlue
	case PowerUpWidenPaddle:
		return core.ColorOrange
	case PowerUpSlowBall:
		return core.ColorGreen
	default:
		return core.ColorMagenta
	}
}

// timed reports whether the kind has a timed effect.
func (k PowerUpKind) timed() bool {
	return k == PowerUpEnlargeBall || k == PowerUpWidenPaddle || k == PowerUpSlowBall
}

// PowerUp is a falling pickup.
type PowerUp struct {
	Pos    core.Vec
	VY     float64 // Fall speed per reference frame (positive = down)
	Radius float64
	Kind   PowerUpKind
	Color  core.Color
}

// Particle is a fading impact spark.
type Particle struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Alpha  float64
	Color  core.Color
}
