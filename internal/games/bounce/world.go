package bounce

import (
	"time"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// World holds the entity state of one game: a single ball and paddle, the
// current target batch, falling power-ups and particles.
// It knows nothing about score, lives or status; Step reports events instead.
type World struct {
	cfg config.BounceConfig

	ball      Ball
	paddle    Paddle
	targets   []Target
	powerUps  []PowerUp
	particles []Particle

	effects effectTimers
	clock   time.Duration // Real time accumulated by Step
	rng     *SimpleRNG
}

// NewWorld creates a world for the given configuration, laid out for level 1.
func NewWorld(cfg config.BounceConfig, seed int64) *World {
	w := &World{cfg: cfg}
	w.Reset(seed, 1)
	return w
}

// Reset restores the start layout for the given level: ball at the launch
// position, centered default paddle, a fresh batch, no power-ups and no
// effects.
func (w *World) Reset(seed int64, level int) {
	w.rng = NewSimpleRNG(seed)
	w.clock = 0
	w.effects = effectTimers{}
	w.powerUps = nil
	w.particles = nil

	w.paddle = Paddle{
		X:      (w.cfg.Field.Width - w.cfg.Paddle.Width) / 2,
		Y:      w.cfg.Field.Height - w.cfg.Paddle.BottomOffset,
		Width:  w.cfg.Paddle.Width,
		Height: w.cfg.Paddle.Height,
		Speed:  w.cfg.Paddle.Speed,
	}
	w.paddle.clampTo(w.cfg.Field.Width)

	w.ball = Ball{
		Pos:    w.launchPos(),
		Vel:    core.Vec{X: w.cfg.Ball.LaunchDX, Y: w.cfg.Ball.LaunchDY},
		Radius: w.cfg.Ball.Radius,
	}

	w.targets = GenerateTargets(w.cfg, level)
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.BounceConfig {
	return w.cfg
}

// Ball returns the current ball.
func (w *World) Ball() Ball {
	return w.ball
}

// Paddle returns the current paddle.
func (w *World) Paddle() Paddle {
	return w.paddle
}

// Targets returns a copy of the target batch.
func (w *World) Targets() []Target {
	return append([]Target(nil), w.targets...)
}

// ActiveTargets counts targets with health left.
func (w *World) ActiveTargets() int {
	n := 0
	for _, t := range w.targets {
		if t.Active() {
			n++
		}
	}
	return n
}

// Clock returns the real time simulated so far.
func (w *World) Clock() time.Duration {
	return w.clock
}

// launchPos is the fixed start and relaunch point.
func (w *World) launchPos() core.Vec {
	return core.Vec{X: w.cfg.Field.Width / 2, Y: w.cfg.Field.Height - w.cfg.Ball.RelaunchOffset}
}

// relaunch puts the ball back at the launch point with a random horizontal
// direction and the fixed upward component.
func (w *World) relaunch() {
	w.ball.Pos = w.launchPos()
	w.ball.Vel = core.Vec{
		X: w.cfg.Ball.LaunchDX * w.rng.Sign(),
		Y: w.cfg.Ball.LaunchDY,
	}
}
