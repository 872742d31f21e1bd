// Package core provides fundamental types shared by the simulation and the
// frontends. It has no dependency on any UI library so the game logic stays
// pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used for drawing into a Screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world pixels.
// Collision detection works exclusively on boxes built from tracked state.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box with the given position and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 { return b.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// OverlapsX reports whether the horizontal spans of two boxes overlap.
// Touching edges do not count as overlap.
func (b Box) OverlapsX(other Box) bool {
	return b.Right() > other.Left() && b.Left() < other.Right()
}

// Cells converts a world box to the screen cells it covers, given the size
// of one cell in world pixels. Partially covered cells are included.
func (b Box) Cells(cellW, cellH float64) Rect {
	x0 := int(math.Floor(b.X / cellW))
	y0 := int(math.Floor(b.Y / cellH))
	x1 := int(math.Ceil(b.Right() / cellW))
	y1 := int(math.Ceil(b.Bottom() / cellH))
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
