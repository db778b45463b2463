package bounce

import "fmt"

// Event is something the physics step reports back to the session.
// The set is closed: LifeLost, TargetHit, TargetDestroyed, PowerUpCollected
// and LevelCleared.
type Event interface {
	fmt.Stringer
	event()
}

// LifeLost is emitted when the ball crosses the bottom bound.
// Remaining is the number of lives left after the loss.
type LifeLost struct {
	Remaining int
}

// TargetHit is emitted for every ball impact on an active target.
type TargetHit struct {
	Index  int // Position of the target in the batch
	Health int // Health left after the hit
}

// TargetDestroyed is emitted when a target's health reaches zero.
type TargetDestroyed struct {
	Index  int
	Points int
}

// PowerUpCollected is emitted when the paddle catches a power-up.
type PowerUpCollected struct {
	Kind PowerUpKind
}

// LevelCleared is emitted once when every target of the batch is destroyed.
// Level is the level that was cleared; Bonus is the awarded score.
type LevelCleared struct {
	Level int
	Bonus int
}

func (LifeLost) event()         {}
func (TargetHit) event()        {}
func (TargetDestroyed) event()  {}
func (PowerUpCollected) event() {}
func (LevelCleared) event()     {}

func (e LifeLost) String() string {
	return fmt.Sprintf("life-lost remaining=%d", e.Remaining)
}

func (e TargetHit) String() string {
	return fmt.Sprintf("target-hit index=%d health=%d", e.Index, e.Health)
}

func (e TargetDestroyed) String() string {
	return fmt.Sprintf("target-destroyed index=%d points=%d", e.Index, e.Points)
}

func (e PowerUpCollected) String() string {
	return fmt.Sprintf("powerup-collected kind=%s", e.Kind)
}

func (e LevelCleared) String() string {
	return fmt.Sprintf("level-cleared level=%d bonus=%d", e.Level, e.Bonus)
}
