package bounce

import "time"

// effectTimers stores the expiry time of each timed effect on the world clock.
// Zero means the effect is inactive.
type effectTimers struct {
	until [powerUpKindCount]time.Duration
}

func (e *effectTimers) active(kind PowerUpKind) bool {
	return kind >= 0 && kind < powerUpKindCount && e.until[kind] > 0
}

// applyPowerUp applies a caught power-up to the ball or paddle.
// Extra life only affects the session and is handled there. Catching a kind
// that is already active restarts its timer.
func (w *World) applyPowerUp(kind PowerUpKind) {
	pc := w.cfg.PowerUps

	switch kind {
	case PowerUpEnlargeBall:
		w.ball.Radius = pc.EnlargedRadius
	case PowerUpWidenPaddle:
		w.paddle.Width = pc.WidenedWidth
		w.paddle.clampTo(w.cfg.Field.Width)
	case PowerUpSlowBall:
		w.ball.Vel = w.ball.Vel.WithLen(pc.SlowSpeed)
	default:
		return
	}

	w.effects.until[kind] = w.clock + pc.Duration
}

// expireEffects reverts every timed effect whose time is up.
func (w *World) expireEffects() {
	for kind := range powerUpKindCount {
		until := w.effects.until[kind]
		if until == 0 || until > w.clock {
			continue
		}
		w.effects.until[kind] = 0

		switch kind {
		case PowerUpEnlargeBall:
			w.ball.Radius = w.cfg.Ball.Radius
		case PowerUpWidenPaddle:
			w.paddle.Width = w.cfg.Paddle.Width
			w.paddle.clampTo(w.cfg.Field.Width)
		case PowerUpSlowBall:
			// Direction at expiry time is kept.
			w.ball.Vel = w.ball.Vel.WithLen(w.cfg.PowerUps.NormalSpeed)
		}
	}
}

// EffectRemaining returns how long a timed effect still lasts, or 0.
func (w *World) EffectRemaining(kind PowerUpKind) time.Duration {
	if !w.effects.active(kind) {
		return 0
	}
	return max(w.effects.until[kind]-w.clock, 0)
}
