package bounce

import (
	"math"
	"time"
)

// Snapshot is a read-only copy of everything the renderer draws.
// Slices are copied, so a snapshot never changes after it is taken.
type Snapshot struct {
	FieldW, FieldH float64

	Ball      Ball
	Paddle    Paddle
	Targets   []Target
	PowerUps  []PowerUp
	Particles []Particle

	Effects map[PowerUpKind]time.Duration // Remaining time of active timed effects

	Score     int
	Level     int
	Lives     int
	HighScore int
	Status    Status
	Stats     Stats

	Clock    time.Duration
	RNGState uint64
}

// Snapshot returns a deep copy of the session and world state.
func (s *Session) Snapshot() Snapshot {
	w := s.world

	effects := make(map[PowerUpKind]time.Duration)
	for _, k := range PowerUpKinds {
		if k.timed() && w.effects.active(k) {
			effects[k] = w.EffectRemaining(k)
		}
	}

	return Snapshot{
		FieldW:    w.cfg.Field.Width,
		FieldH:    w.cfg.Field.Height,
		Ball:      w.ball,
		Paddle:    w.paddle,
		Targets:   append([]Target(nil), w.targets...),
		PowerUps:  append([]PowerUp(nil), w.powerUps...),
		Particles: append([]Particle(nil), w.particles...),
		Effects:   effects,
		Score:     s.score,
		Level:     s.level,
		Lives:     s.lives,
		HighScore: s.highScore,
		Status:    s.status,
		Stats:     s.stats,
		Clock:     w.clock,
		RNGState:  w.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(17)
	mixF := func(f float64) { h = h*31 + math.Float64bits(f) }
	mixI := func(i int) { h = h*31 + uint64(i) } //#nosec G115 -- hash computation

	mixF(snap.Ball.Pos.X)
	mixF(snap.Ball.Pos.Y)
	mixF(snap.Ball.Vel.X)
	mixF(snap.Ball.Vel.Y)
	mixF(snap.Ball.Radius)
	mixF(snap.Paddle.X)
	mixF(snap.Paddle.Width)

	for _, t := range snap.Targets {
		mixF(t.Center.X)
		mixF(t.Center.Y)
		mixI(t.Health)
	}
	for _, p := range snap.PowerUps {
		mixF(p.Pos.X)
		mixF(p.Pos.Y)
		mixI(int(p.Kind))
	}
	for _, p := range snap.Particles {
		mixF(p.Pos.X)
		mixF(p.Pos.Y)
		mixF(p.Alpha)
	}
	for _, k := range PowerUpKinds {
		mixI(int(snap.Effects[k]))
	}

	mixI(snap.Score)
	mixI(snap.Level)
	mixI(snap.Lives)
	mixI(int(snap.Status))
	mixI(snap.Stats.TotalHits)
	mixI(snap.Stats.PowerUpsCollected)
	mixI(int(snap.Clock))

	return h*31 + snap.RNGState
}
