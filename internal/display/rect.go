// Package display models monitors and rectangles in the virtual desktop
// coordinate space.
package display

import "fmt"

// Rect is a rectangle in virtual desktop coordinates. Edges can be negative
// (a secondary monitor left of or above the primary).
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the rectangle's width.
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the rectangle's height.
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int32) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Intersect returns the overlap of r and other. The result is empty when the
// rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max32(r.Left, other.Left),
		Top:    max32(r.Top, other.Top),
		Right:  min32(r.Right, other.Right),
		Bottom: min32(r.Bottom, other.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Clamp returns the point (x, y) moved to the nearest point inside the
// rectangle. Used by backends that enforce confinement by warping.
func (r Rect) Clamp(x, y int32) (int32, int32) {
	if x < r.Left {
		x = r.Left
	}
	if x >= r.Right {
		x = r.Right - 1
	}
	if y < r.Top {
		y = r.Top
	}
	if y >= r.Bottom {
		y = r.Bottom - 1
	}
	return x, y
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
