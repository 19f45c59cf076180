// Package entity defines domain entities for the browser chrome.
package entity

// Point is a position in window-server coordinates.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is a window frame: origin plus size.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a rect from its four scalar components.
func NewRect(x, y, width, height float64) Rect {
	return Rect{
		Origin: Point{X: x, Y: y},
		Size:   Size{Width: width, Height: height},
	}
}

// WithSize returns a copy of r with its size replaced and its origin kept.
func (r Rect) WithSize(width, height float64) Rect {
	return Rect{Origin: r.Origin, Size: Size{Width: width, Height: height}}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: r.Origin.X + r.Size.Width/2,
		Y: r.Origin.Y + r.Size.Height/2,
	}
}
