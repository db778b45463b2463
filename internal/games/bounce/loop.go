package bounce

import (
	"context"
	"time"
)

// Controller supplies the controls for the next tick.
type Controller func(*Session) Controls

// Loop drives one session from a stream of ticks without a UI.
// Ticks are handled strictly one after another; a tick's step and its event
// handling finish before the next tick is read.
type Loop struct {
	Session *Session

	// Controller picks the controls for each tick. Nil means no input.
	Controller Controller

	// FixedStep, when set, is used as the elapsed time of every tick instead
	// of the wall-clock distance between ticks. Keeps simulations reproducible.
	FixedStep time.Duration

	// OnEvents is called after every tick that produced events.
	OnEvents func([]Event)
}

// Run ticks the session at the given interval until the context is cancelled
// or the game ends.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	return l.RunTicks(ctx, ticker.C)
}

// RunTicks consumes ticks from the channel. It returns nil once the session
// is over or closed or the channel is closed, and ctx.Err() on cancellation.
// Cancellation only stops further ticks from being consumed.
func (l *Loop) RunTicks(ctx context.Context, ticks <-chan time.Time) error {
	var last time.Time

	for {
		if l.done() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			// A cancellation racing with a ready tick wins.
			if ctx.Err() != nil {
				return ctx.Err()
			}

			elapsed := l.elapsed(last, now)
			last = now

			var controls Controls
			if l.Controller != nil {
				controls = l.Controller(l.Session)
			}

			events := l.Session.Tick(elapsed, controls)
			if len(events) > 0 && l.OnEvents != nil {
				l.OnEvents(events)
			}
		}
	}
}

func (l *Loop) done() bool {
	return l.Session.Closed() || l.Session.Status() == StatusOver
}

func (l *Loop) elapsed(last, now time.Time) time.Duration {
	if l.FixedStep > 0 {
		return l.FixedStep
	}
	if last.IsZero() {
		return l.Session.cfg.Timing.ReferenceFrame
	}
	return now.Sub(last)
}

// Autopilot is a simple controller that keeps the paddle under the ball.
// It plays well enough to exercise every part of the game in simulations.
func Autopilot(s *Session) Controls {
	ball := s.world.ball
	p := s.world.paddle
	center := p.X + p.Width/2

	// Aim slightly off-center depending on direction to vary bounce angles.
	aim := ball.Pos.X
	if ball.Vel.X > 0 {
		aim -= p.Width / 6
	} else {
		aim += p.Width / 6
	}

	const deadZone = 4
	switch {
	case aim < center-deadZone:
		return Controls{Left: true}
	case aim > center+deadZone:
		return Controls{Right: true}
	default:
		return Controls{}
	}
}
