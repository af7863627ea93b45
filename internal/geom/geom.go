// Package geom provides the float64 pixel-space geometry primitives used by
// the overlay windowing core: points, vectors, sizes, rectangles and a small
// 2D affine transform. Unconstrained measure axes are represented with
// positive infinity.
package geom

import "math"

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vector is a 2D displacement in pixels.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{x, y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Infinite reports whether either axis is unconstrained.
func (s Size) Infinite() bool {
	return math.IsInf(s.Width, 1) || math.IsInf(s.Height, 1)
}

// Constrain clamps s into the given maximum size.
func (s Size) Constrain(max Size) Size {
	return Size{
		Width:  math.Min(s.Width, max.Width),
		Height: math.Min(s.Height, max.Height),
	}
}

// Inf returns a size that is unconstrained on both axes.
func Inf() Size {
	return Size{Width: math.Inf(1), Height: math.Inf(1)}
}

// Rect is an axis-aligned rectangle with origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// NewRect builds a rectangle from origin and size components.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Position returns the top-left corner.
func (r Rect) Position() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's extent.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns r shifted by v.
func (r Rect) Translate(v Vector) Rect {
	return Rect{X: r.X + v.X, Y: r.Y + v.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Transform is a 2D affine transform in row-major order:
//
//	| M11 M12 Dx |
//	| M21 M22 Dy |
//
// It is applied to render output only; layout positions are unaffected.
type Transform struct {
	M11, M12 float64
	M21, M22 float64
	Dx, Dy   float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{M11: 1, M22: 1}
}

// Translation returns a pure translation transform.
func Translation(v Vector) Transform {
	t := Identity()
	t.Dx, t.Dy = v.X, v.Y
	return t
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.M11*p.X + t.M12*p.Y + t.Dx,
		Y: t.M21*p.X + t.M22*p.Y + t.Dy,
	}
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
