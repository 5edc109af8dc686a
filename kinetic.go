package kinetic

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for positions, offsets, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the vector length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate returns v rotated by rad radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Rect is an axis-aligned rectangle as reported by an element sink. The
// coordinate system has its origin at the top-left, with Y increasing
// downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Priority orders competing animations on the same property. Higher values
// preempt lower ones.
type Priority int

const (
	PriorityAnimate Priority = 0 // reactive animate targets
	PriorityHover   Priority = 1 // while_hover
	PriorityInView  Priority = 1 // while_in_view
	PriorityTap     Priority = 2 // while_tap
	PriorityFocus   Priority = 2 // while_focus
	PriorityDrag    Priority = 3 // while_drag and the drag position hold
)

// Axis restricts drag movement.
type Axis uint8

const (
	AxisBoth Axis = iota // free movement
	AxisX                // horizontal only
	AxisY                // vertical only
)

// Default timing values.
const (
	DefaultDuration = 300 * time.Millisecond

	// Instant is a negative duration; negative durations clamp to zero,
	// which completes the animation on its first tick.
	Instant time.Duration = -1

	// maxFrameDelta caps the time step of a single tick.
	maxFrameDelta = 0.1
)

// seconds converts a duration to float seconds.
func seconds(d time.Duration) float64 {
	return d.Seconds()
}
