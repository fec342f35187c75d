package model

import (
	"errors"
	"fmt"
)

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect represents an axis-aligned rectangle as its minimum and maximum
// corners, both inclusive.
type Rect struct {
	XMin, YMin, XMax, YMax int
}

// NewRect creates a rectangle from two opposite corners, normalizing so
// that (XMin, YMin) is top-left and (XMax, YMax) is bottom-right.
func NewRect(x0, y0, x1, y1 int) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{XMin: x0, YMin: y0, XMax: x1, YMax: y1}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.XMin, Y: r.YMin}
}

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Point {
	return Point{X: r.XMax, Y: r.YMax}
}

// Center returns the midpoint, using floor division.
func (r Rect) Center() Point {
	return Point{
		X: (r.XMin + r.XMax) / 2,
		Y: (r.YMin + r.YMax) / 2,
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() int {
	return r.XMax - r.XMin
}

// Height returns the vertical extent.
func (r Rect) Height() int {
	return r.YMax - r.YMin
}

// SharesSpace reports whether the two rectangles overlap on both axes.
// The comparison is inclusive: rectangles that only touch on a boundary
// still share space.
func (r Rect) SharesSpace(other Rect) bool {
	return !(r.XMax < other.XMin ||
		r.XMin > other.XMax ||
		r.YMax < other.YMin ||
		r.YMin > other.YMax)
}

// StrictlyContains reports whether inner lies fully inside r with no
// shared boundary. All four inequalities are strict, so a box touching
// r's edge is not contained. This is deliberately asymmetric with
// SharesSpace's inclusive boundary.
func (r Rect) StrictlyContains(inner Rect) bool {
	return inner.XMax < r.XMax &&
		inner.XMin > r.XMin &&
		inner.YMax < r.YMax &&
		inner.YMin > r.YMin
}

// Side identifies one of the four directional relations.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideUp    Side = "up"
	SideDown  Side = "down"
)

// ErrInvalidSide is returned when a directional predicate receives an
// unrecognized side token.
var ErrInvalidSide = errors.New("invalid side")

// Beside reports whether candidate lies on the given side of anchor.
//
// Left and right require true horizontal separation plus the anchor's
// vertical center falling strictly inside the candidate's vertical span.
// Up and down use a one-sided vertical inequality that does not prove
// true vertical separation; this matches the established relation
// semantics and queries depend on it, so it must not be tightened into
// a symmetric above/below test.
func Beside(anchor, candidate Element, side Side) (bool, error) {
	a := anchor.Rect()
	c := candidate.Rect()
	center := anchor.Center

	switch side {
	case SideRight:
		return c.XMin > a.XMax &&
			c.YMin < center.Y && center.Y < c.YMax, nil
	case SideLeft:
		return a.XMin > c.XMax &&
			c.YMin < center.Y && center.Y < c.YMax, nil
	case SideUp:
		return a.YMin < c.YMax &&
			c.XMin < center.X && center.X < c.XMax, nil
	case SideDown:
		return a.YMax > c.YMin &&
			c.XMin < center.X && center.X < c.XMax, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
}
