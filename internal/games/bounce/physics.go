package bounce

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// Controls are the input flags read at the start of a step.
type Controls struct {
	Left   bool
	Right  bool
	DragDX float64 // Pointer/touch paddle delta in playfield units
}

// StepInput is everything Step needs besides the world itself.
// Level and Lives are read-only session values: Step reports changes to them
// as events and never modifies them.
type StepInput struct {
	Elapsed  time.Duration
	Controls Controls
	Level    int
	Lives    int
}

// Step advances the world by one tick and returns the events it produced, in
// order. The phases run in a fixed sequence:
//
//  0. effect clock advances by real elapsed time, expired effects revert
//  1. paddle moves (keys, then drag), clamped to the field
//  2. ball moves
//  3. side and top walls reflect
//  4. bottom crossing loses a life (and ends the step if none remain)
//  5. paddle bounce
//  6. target hits
//  7. power-ups fall and are caught or dropped
//  8. level clear
//  9. particles drift and fade
func (w *World) Step(in StepInput) []Event {
	var events []Event

	if in.Elapsed > 0 {
		w.clock += in.Elapsed
	}
	w.expireEffects()

	ts := w.cfg.Timing.TimeScale(in.Elapsed)

	w.movePaddle(in.Controls, ts)

	w.ball.Pos = w.ball.Pos.Add(w.ball.Vel.Scale(ts))

	w.bounceWalls()

	if w.ball.Pos.Y+w.ball.Radius > w.cfg.Field.Height {
		remaining := max(in.Lives-1, 0)
		events = append(events, LifeLost{Remaining: remaining})
		if remaining == 0 {
			return events
		}
		w.relaunch()
	}

	w.bouncePaddle()

	events = w.hitTargets(events)

	events = w.updatePowerUps(events, ts)

	if w.ActiveTargets() == 0 {
		events = append(events, LevelCleared{
			Level: in.Level,
			Bonus: in.Level * w.cfg.Session.LevelBonus,
		})
		w.targets = GenerateTargets(w.cfg, in.Level+1)
		w.powerUps = nil
		w.relaunch()
	}

	w.updateParticles(ts)

	return events
}

func (w *World) movePaddle(c Controls, ts float64) {
	if c.Left {
		w.paddle.X -= w.paddle.Speed * ts
	}
	if c.Right {
		w.paddle.X += w.paddle.Speed * ts
	}
	w.paddle.X += c.DragDX
	w.paddle.clampTo(w.cfg.Field.Width)
}

// bounceWalls reflects the ball off the left, right and top walls. A component
// is only flipped while the ball still moves into the wall, so a ball that
// overshoots does not oscillate.
func (w *World) bounceWalls() {
	b := &w.ball
	if (b.Pos.X-b.Radius < 0 && b.Vel.X < 0) || (b.Pos.X+b.Radius > w.cfg.Field.Width && b.Vel.X > 0) {
		b.Vel = core.Reflect(b.Vel, core.AxisHorizontal)
	}
	if b.Pos.Y-b.Radius < 0 && b.Vel.Y < 0 {
		b.Vel = core.Reflect(b.Vel, core.AxisVertical)
	}
}

// bouncePaddle sends a descending ball back up when it reaches the paddle's
// top edge within the paddle's x-span. The hit position across the paddle
// maps linearly to an angle in [-90°, +90°] from vertical; speed is kept and
// the vertical component always points up.
func (w *World) bouncePaddle() {
	b := &w.ball
	p := w.paddle

	if b.Vel.Y <= 0 {
		return
	}
	if b.Pos.Y+b.Radius <= p.Y || b.Pos.Y > p.Y+p.Height {
		return
	}
	if b.Pos.X <= p.X || b.Pos.X >= p.Right() {
		return
	}

	hitPos := (b.Pos.X - p.X) / p.Width
	angle := (hitPos - 0.5) * math.Pi
	speed := b.Vel.Len()

	b.Vel = core.Vec{
		X: speed * math.Sin(angle),
		Y: -math.Abs(speed * math.Cos(angle)),
	}
}

// hitTargets damages every active target the ball overlaps. Each hit reflects
// the ball on the axis with the larger center offset; there is no swept test.
func (w *World) hitTargets(events []Event) []Event {
	for i := range w.targets {
		t := &w.targets[i]
		if !t.Active() || !core.CircleIntersectsRect(w.ball.Circle(), t.Rect()) {
			continue
		}

		t.Health--
		events = append(events, TargetHit{Index: i, Health: t.Health})
		w.burst(w.ball.Pos, t.Color)

		if t.Health == 0 {
			events = append(events, TargetDestroyed{Index: i, Points: t.MaxHealth * w.cfg.Targets.PointsPerHealth})
			w.maybeSpawnPowerUp(t.Center)
		} else {
			t.Color = HealthColor(t.Health)
		}

		w.ball.Vel = core.Reflect(w.ball.Vel, core.ImpactAxis(w.ball.Pos, t.Center))
	}
	return events
}

func (w *World) maybeSpawnPowerUp(at core.Vec) {
	if w.rng.Float64() >= w.cfg.PowerUps.SpawnChance {
		return
	}
	kind := PowerUpKinds[w.rng.Intn(len(PowerUpKinds))]
	w.powerUps = append(w.powerUps, PowerUp{
		Pos:    at,
		VY:     w.cfg.PowerUps.FallSpeed,
		Radius: w.cfg.PowerUps.Radius,
		Kind:   kind,
		Color:  kind.Color(),
	})
}

// updatePowerUps moves falling power-ups, applies the ones the paddle catches
// and drops the ones that left the field.
func (w *World) updatePowerUps(events []Event, ts float64) []Event {
	p := w.paddle
	kept := w.powerUps[:0]

	for _, pu := range w.powerUps {
		pu.Pos.Y += pu.VY * ts

		caught := pu.Pos.Y+pu.Radius > p.Y &&
			pu.Pos.Y-pu.Radius < p.Y+p.Height &&
			pu.Pos.X > p.X && pu.Pos.X < p.Right()
		if caught {
			w.applyPowerUp(pu.Kind)
			events = append(events, PowerUpCollected{Kind: pu.Kind})
			continue
		}
		if pu.Pos.Y-pu.Radius > w.cfg.Field.Height {
			continue
		}
		kept = append(kept, pu)
	}

	w.powerUps = kept
	return events
}

// burst emits a ring of particles at the impact point.
func (w *World) burst(at core.Vec, color core.Color) {
	pc := w.cfg.Particles
	for range pc.Count {
		w.particles = append(w.particles, Particle{
			Pos: at,
			Vel: core.Vec{
				X: (w.rng.Float64() - 0.5) * pc.Spread,
				Y: (w.rng.Float64() - 0.5) * pc.Spread,
			},
			Radius: pc.MinRadius + w.rng.Float64()*(pc.MaxRadius-pc.MinRadius),
			Alpha:  1,
			Color:  color,
		})
	}
}

func (w *World) updateParticles(ts float64) {
	pc := w.cfg.Particles
	decay := math.Pow(pc.Decay, ts)
	kept := w.particles[:0]

	for _, p := range w.particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(ts))
		p.Alpha *= decay
		if p.Alpha > pc.MinAlpha {
			kept = append(kept, p)
		}
	}
	w.particles = kept
}
