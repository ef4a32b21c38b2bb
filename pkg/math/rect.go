package math

import "fmt"

// Rect is an axis-aligned integer rectangle. Width and Height are never
// negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle from its origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromCorners creates a rectangle from its top-left and bottom-right corners.
// Corners must be given in non-decreasing order.
func RectFromCorners(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Right returns X + Width.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns Y + Height.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return RectFromCorners(
		min(r.X, other.X),
		min(r.Y, other.Y),
		max(r.Right(), other.Right()),
		max(r.Bottom(), other.Bottom()),
	)
}

// String returns the rectangle as "(x, y) WxH".
func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d) %dx%d", r.X, r.Y, r.Width, r.Height)
}
