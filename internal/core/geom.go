// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box in world units.
// World space has y growing upward from the ground line, so Y is the bottom
// edge and Top() is Y+H.
type Rect struct {
	X, Y float64 // Left and bottom edges
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// Inset shrinks the rectangle by d on every side.
// A negative d grows it. Width and height never go below zero.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.X += out.W / 2
		out.W = 0
	}
	if out.H < 0 {
		out.Y += out.H / 2
		out.H = 0
	}
	return out
}

// OverlapsX reports whether the horizontal extents of both rectangles overlap.
// Touching edges count as overlap.
func (r Rect) OverlapsX(other Rect) bool {
	return r.X <= other.Right() && other.X <= r.Right()
}

// OverlapsY reports whether the vertical extents of both rectangles overlap.
// Touching edges count as overlap.
func (r Rect) OverlapsY(other Rect) bool {
	return r.Y <= other.Top() && other.Y <= r.Top()
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection: no overlap if one rect is
// completely to the left, right, above, or below the other.
func (r Rect) Intersects(other Rect) bool {
	return r.OverlapsX(other) && r.OverlapsY(other)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Top()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
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
