package bounce

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/core"
)

// quietConfig returns defaults without random drops or particles so tests
// only see the entities they place.
func quietConfig() config.BounceConfig {
	cfg := config.DefaultBounceConfig()
	cfg.PowerUps.SpawnChance = 0
	cfg.Particles.Count = 0
	return cfg
}

func frame(cfg config.BounceConfig) time.Duration {
	return cfg.Timing.ReferenceFrame
}

func stepOnce(w *World, c Controls) []Event {
	return w.Step(StepInput{Elapsed: frame(w.cfg), Controls: c, Level: 1, Lives: 3})
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func TestBallAdvancesByVelocity(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.ball = Ball{Pos: core.Vec{X: 100, Y: 100}, Vel: core.Vec{X: 3, Y: -4}, Radius: 10}

	events := stepOnce(w, Controls{})

	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
	if w.ball.Pos.X != 103 || w.ball.Pos.Y != 96 {
		t.Errorf("ball position = %+v, expected {103 96}", w.ball.Pos)
	}
}

func TestTimeScaleScalesMotion(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.ball = Ball{Pos: core.Vec{X: 100, Y: 150}, Vel: core.Vec{X: 3, Y: -4}, Radius: 10}

	w.Step(StepInput{Elapsed: 2 * frame(w.cfg), Level: 1, Lives: 3})

	if math.Abs(w.ball.Pos.X-106) > 1e-6 || math.Abs(w.ball.Pos.Y-142) > 1e-6 {
		t.Errorf("ball position = %+v, expected {106 142}", w.ball.Pos)
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	for _, width := range []float64{150, 240, 600, 1000} {
		cfg := quietConfig()
		cfg.Field.Width = width
		w := NewWorld(cfg, 3)
		rng := NewSimpleRNG(int64(width))

		for i := range 500 {
			c := Controls{Left: rng.Intn(2) == 0, Right: rng.Intn(3) == 0}
			if i%7 == 0 {
				c.DragDX = (rng.Float64() - 0.5) * 400
			}
			w.Step(StepInput{Elapsed: time.Duration(rng.Intn(50)) * time.Millisecond, Controls: c, Level: 1, Lives: 1000})

			p := w.paddle
			if p.X < 0 || p.X > width-p.Width {
				t.Fatalf("width %v tick %d: paddle x %v outside [0, %v]", width, i, p.X, width-p.Width)
			}
		}
	}
}

func TestPaddleMovement(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	start := w.paddle.X

	stepOnce(w, Controls{Left: true})
	if w.paddle.X != start-w.paddle.Speed {
		t.Errorf("left: paddle x = %v, expected %v", w.paddle.X, start-w.paddle.Speed)
	}

	stepOnce(w, Controls{Right: true})
	stepOnce(w, Controls{Right: true})
	if w.paddle.X != start+w.paddle.Speed {
		t.Errorf("right: paddle x = %v, expected %v", w.paddle.X, start+w.paddle.Speed)
	}

	stepOnce(w, Controls{DragDX: -10000})
	if w.paddle.X != 0 {
		t.Errorf("drag should clamp to 0, got %v", w.paddle.X)
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name     string
		ball     Ball
		expected core.Vec
	}{
		{"left wall", Ball{Pos: core.Vec{X: 8, Y: 200}, Vel: core.Vec{X: -3, Y: 1}, Radius: 10}, core.Vec{X: 3, Y: 1}},
		{"right wall", Ball{Pos: core.Vec{X: 592, Y: 200}, Vel: core.Vec{X: 3, Y: 1}, Radius: 10}, core.Vec{X: -3, Y: 1}},
		{"top wall", Ball{Pos: core.Vec{X: 20, Y: 12}, Vel: core.Vec{X: 1, Y: -4}, Radius: 10}, core.Vec{X: 1, Y: 4}},
		{"already leaving", Ball{Pos: core.Vec{X: 4, Y: 200}, Vel: core.Vec{X: 3, Y: 1}, Radius: 10}, core.Vec{X: 3, Y: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(quietConfig(), 1)
			w.ball = tc.ball

			stepOnce(w, Controls{})

			if w.ball.Vel != tc.expected {
				t.Errorf("velocity = %+v, expected %+v", w.ball.Vel, tc.expected)
			}
		})
	}
}

func TestBottomCrossingRelaunches(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.ball = Ball{Pos: core.Vec{X: 100, Y: 395}, Vel: core.Vec{X: 0, Y: 4}, Radius: 10}

	events := w.Step(StepInput{Elapsed: frame(w.cfg), Level: 1, Lives: 3})

	if len(events) != 1 {
		t.Fatalf("expected one event, got %v", events)
	}
	lost, ok := events[0].(LifeLost)
	if !ok || lost.Remaining != 2 {
		t.Fatalf("expected LifeLost{2}, got %v", events[0])
	}

	if w.ball.Pos != (core.Vec{X: 300, Y: 352}) {
		t.Errorf("relaunch position = %+v, expected {300 352}", w.ball.Pos)
	}
	if math.Abs(w.ball.Vel.X) != 3 || w.ball.Vel.Y != -4 {
		t.Errorf("relaunch velocity = %+v, expected {±3 -4}", w.ball.Vel)
	}
}

func TestLastLifeEndsStep(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.ball = Ball{Pos: core.Vec{X: 100, Y: 395}, Vel: core.Vec{X: 0, Y: 4}, Radius: 10}

	events := w.Step(StepInput{Elapsed: frame(w.cfg), Level: 1, Lives: 1})

	if len(events) != 1 || events[0] != (LifeLost{Remaining: 0}) {
		t.Fatalf("expected only LifeLost{0}, got %v", events)
	}
	if w.ball.Pos.Y != 399 {
		t.Errorf("ball should not be relaunched, y = %v", w.ball.Pos.Y)
	}
}

func TestPaddleBounce(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		wantVX float64
	}{
		{"center goes straight up", 300, 0},
		{"left quarter goes left", 275, -5 * math.Sin(math.Pi/4)},
		{"right quarter goes right", 325, 5 * math.Sin(math.Pi/4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(quietConfig(), 1)
			// Paddle spans x 250..350 with its top edge at y 382.
			w.ball = Ball{Pos: core.Vec{X: tc.x, Y: 369}, Vel: core.Vec{X: 0, Y: 5}, Radius: 10}

			stepOnce(w, Controls{})

			if w.ball.Vel.Y >= 0 {
				t.Fatalf("vertical velocity should point up, got %v", w.ball.Vel.Y)
			}
			if math.Abs(w.ball.Vel.X-tc.wantVX) > 1e-9 {
				t.Errorf("vx = %v, expected %v", w.ball.Vel.X, tc.wantVX)
			}
			if math.Abs(w.ball.Vel.Len()-5) > 1e-9 {
				t.Errorf("speed = %v, expected 5", w.ball.Vel.Len())
			}
		})
	}
}

func TestPaddleMissOutsideSpan(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.ball = Ball{Pos: core.Vec{X: 100, Y: 369}, Vel: core.Vec{X: 0, Y: 5}, Radius: 10}

	stepOnce(w, Controls{})

	if w.ball.Vel.Y != 5 {
		t.Errorf("ball outside the paddle span should keep falling, vel %+v", w.ball.Vel)
	}
}

func singleTarget(health int) Target {
	return Target{
		Center:    core.Vec{X: 300, Y: 200},
		Width:     60,
		Height:    20,
		Health:    health,
		MaxHealth: health,
		Points:    health * 10,
		Color:     HealthColor(health),
	}
}

// aimBelow places the ball just under the target, moving up into it.
func aimBelow(w *World, t Target) {
	w.ball.Pos = core.Vec{X: t.Center.X, Y: t.Center.Y + t.Height/2 + w.ball.Radius + 2}
	w.ball.Vel = core.Vec{X: 0, Y: -4}
}

func TestMultiHitTarget(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.targets = []Target{singleTarget(3)}

	var all []Event
	for hit := 1; hit <= 3; hit++ {
		aimBelow(w, w.targets[0])
		events := stepOnce(w, Controls{})
		all = append(all, events...)

		destroyed := countEvents[TargetDestroyed](events)
		if hit < 3 && destroyed != 0 {
			t.Fatalf("hit %d: target destroyed too early", hit)
		}
		if countEvents[TargetHit](events) != 1 {
			t.Fatalf("hit %d: expected one TargetHit, got %v", hit, events)
		}
		if hit < 3 && w.ball.Vel.Y != 4 {
			t.Errorf("hit %d: ball should reflect vertically, vel %+v", hit, w.ball.Vel)
		}
	}

	if n := countEvents[TargetDestroyed](all); n != 1 {
		t.Fatalf("expected exactly one TargetDestroyed, got %d", n)
	}
	for _, ev := range all {
		if d, ok := ev.(TargetDestroyed); ok && d.Points != 30 {
			t.Errorf("destroyed points = %d, expected 30", d.Points)
		}
	}
}

func TestTargetHitTieBreak(t *testing.T) {
	tests := []struct {
		name     string
		pos      core.Vec
		vel      core.Vec
		expected core.Vec
	}{
		{"side hit reflects horizontally", core.Vec{X: 262, Y: 200}, core.Vec{X: 4, Y: 1}, core.Vec{X: -4, Y: 1}},
		{"bottom hit reflects vertically", core.Vec{X: 300, Y: 222}, core.Vec{X: 1, Y: -4}, core.Vec{X: 1, Y: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(quietConfig(), 1)
			w.targets = []Target{singleTarget(2)}
			w.ball = Ball{Pos: tc.pos, Vel: tc.vel, Radius: 10}

			stepOnce(w, Controls{})

			if w.ball.Vel != tc.expected {
				t.Errorf("velocity = %+v, expected %+v", w.ball.Vel, tc.expected)
			}
		})
	}
}

func TestLevelClearedOnceForAnyOrder(t *testing.T) {
	orders := [][]int{
		{0, 1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1, 0},
		{3, 0, 6, 1, 5, 2, 4},
	}

	for _, order := range orders {
		w := NewWorld(quietConfig(), 1)
		if len(w.targets) != len(order) {
			t.Fatalf("expected %d targets at level 1, got %d", len(order), len(w.targets))
		}

		cleared := 0
		for _, i := range order {
			aimBelow(w, w.targets[i])
			for _, ev := range stepOnce(w, Controls{}) {
				if lc, ok := ev.(LevelCleared); ok {
					cleared++
					if lc.Level != 1 || lc.Bonus != 50 {
						t.Errorf("LevelCleared = %+v, expected level 1 bonus 50", lc)
					}
				}
			}
		}

		if cleared != 1 {
			t.Errorf("order %v: expected one LevelCleared, got %d", order, cleared)
		}
		if got, want := len(w.targets), LayoutForLevel(w.cfg.Targets, 2).Count; got != want {
			t.Errorf("order %v: new batch has %d targets, expected %d", order, got, want)
		}
	}
}

func TestLevelClearResetsBallAndPowerUps(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.targets = []Target{singleTarget(1)}
	w.powerUps = []PowerUp{{Pos: core.Vec{X: 50, Y: 50}, VY: 2, Radius: 8, Kind: PowerUpSlowBall}}
	aimBelow(w, w.targets[0])

	events := stepOnce(w, Controls{})

	if countEvents[LevelCleared](events) != 1 {
		t.Fatalf("expected LevelCleared, got %v", events)
	}
	if len(w.powerUps) != 0 {
		t.Errorf("power-ups should be cleared, got %d", len(w.powerUps))
	}
	if w.ball.Pos != w.launchPos() {
		t.Errorf("ball should relaunch, at %+v", w.ball.Pos)
	}
}

func TestPowerUpSpawnChance(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.SpawnChance = 1
	w := NewWorld(cfg, 9)
	w.targets = []Target{singleTarget(1), singleTarget(1)}
	w.targets[1].Center = core.Vec{X: 100, Y: 60}

	aimBelow(w, w.targets[0])
	stepOnce(w, Controls{})

	if len(w.powerUps) != 1 {
		t.Fatalf("expected a spawned power-up, got %d", len(w.powerUps))
	}
	pu := w.powerUps[0]
	if pu.Pos.X != 300 || pu.Radius != cfg.PowerUps.Radius || pu.Color != pu.Kind.Color() {
		t.Errorf("unexpected power-up %+v", pu)
	}
}

func TestPowerUpFallsOut(t *testing.T) {
	w := NewWorld(quietConfig(), 1)
	w.powerUps = []PowerUp{{Pos: core.Vec{X: 20, Y: 409}, VY: 2, Radius: 8, Kind: PowerUpExtraLife}}

	events := stepOnce(w, Controls{})

	if len(w.powerUps) != 0 {
		t.Error("power-up below the field should be removed")
	}
	if countEvents[PowerUpCollected](events) != 0 {
		t.Error("dropped power-up must not be collected")
	}
}

func TestParticlesFade(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	cfg.PowerUps.SpawnChance = 0
	w := NewWorld(cfg, 5)
	w.targets = []Target{singleTarget(2)}
	aimBelow(w, w.targets[0])

	stepOnce(w, Controls{})
	if len(w.particles) != cfg.Particles.Count {
		t.Fatalf("expected %d particles, got %d", cfg.Particles.Count, len(w.particles))
	}

	// Park the ball so no new bursts happen.
	w.ball.Pos = core.Vec{X: 300, Y: 250}
	w.ball.Vel = core.Vec{}

	for i := range 200 {
		stepOnce(w, Controls{})
		for _, p := range w.particles {
			if p.Alpha <= cfg.Particles.MinAlpha {
				t.Fatalf("tick %d: faded particle kept: %+v", i, p)
			}
		}
	}
	if len(w.particles) != 0 {
		t.Errorf("all particles should have faded, %d left", len(w.particles))
	}
}
