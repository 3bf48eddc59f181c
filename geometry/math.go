// Package geometry contains the fundamental coordinate types and scalar
// helpers used throughout the slidewire connection engine. All coordinates
// are float64 values in the slide's logical unit space.
package geometry

import "math"

// Point represents a 2D coordinate in slide space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the point translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// AngleTo returns the angle in radians of the vector from p to q.
func (p Point) AngleTo(q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Rect represents an axis-aligned rectangle as origin plus dimensions.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Abs returns the absolute value of x.
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp restricts v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsHorizontal returns true if the line from a to b is more horizontal
// than vertical.
func IsHorizontal(a, b Point) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}
