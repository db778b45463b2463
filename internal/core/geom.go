// Package core provides fundamental types and utilities for the bounce game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec is a 2D vector in playfield units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the magnitude of the vector.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// WithLen returns a vector with the same direction and the given magnitude.
// A zero vector stays zero.
func (v Vec) WithLen(length float64) Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(length / l)
}

// Circle is a circle given by its center and radius.
type Circle struct {
	Center Vec
	R      float64
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// RectFromCenter builds a rectangle around a center point.
func RectFromCenter(c Vec, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// CircleIntersectsRect reports whether the circle touches the rectangle.
// The point of the rectangle nearest to the circle center is found by
// clamping, then compared against the radius.
func CircleIntersectsRect(c Circle, r Rect) bool {
	nx := ClampF(c.Center.X, r.X, r.Right())
	ny := ClampF(c.Center.Y, r.Y, r.Bottom())
	dx := c.Center.X - nx
	dy := c.Center.Y - ny
	return dx*dx+dy*dy <= c.R*c.R
}

// CircleIntersectsCircle reports whether two circles overlap or touch.
func CircleIntersectsCircle(a, b Circle) bool {
	d := a.Center.Sub(b.Center)
	rr := a.R + b.R
	return d.X*d.X+d.Y*d.Y <= rr*rr
}

// Axis selects a velocity component for reflection.
type Axis int

const (
	AxisHorizontal Axis = iota // Negates X (left/right bounce)
	AxisVertical               // Negates Y (top/bottom bounce)
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Reflect negates the velocity component along the given axis.
func Reflect(v Vec, axis Axis) Vec {
	switch axis {
	case AxisHorizontal:
		v.X = -v.X
	case AxisVertical:
		v.Y = -v.Y
	}
	return v
}

// ImpactAxis picks the bounce axis for a ball hitting a block by comparing
// the center-to-center offsets: horizontal when |dx| > |dy|, vertical otherwise.
// This is not a swept test; fast balls can pass through thin blocks.
func ImpactAxis(ball, block Vec) Axis {
	dx := ball.X - block.X
	dy := ball.Y - block.Y
	if math.Abs(dx) > math.Abs(dy) {
		return AxisHorizontal
	}
	return AxisVertical
}

// CellRect is an integer rectangle on the character screen.
type CellRect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewCellRect creates a new cell rectangle with the given position and dimensions.
func NewCellRect(x, y, w, h int) CellRect {
	return CellRect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r CellRect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r CellRect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
