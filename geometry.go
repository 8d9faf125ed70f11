package lumen

// Rect is an axis-aligned rectangle in root coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the rectangle's area, zero for empty rectangles.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlapping region of r and other. The result is
// empty when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.W, other.X+other.W)
	y2 := min(r.Y+r.H, other.Y+other.H)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Expand grows the rectangle by the given margin on each side. Negative
// margin values shrink it.
func (r Rect) Expand(m Margin) Rect {
	return Rect{
		X: r.X - m.Left,
		Y: r.Y - m.Top,
		W: r.W + m.Left + m.Right,
		H: r.H + m.Top + m.Bottom,
	}
}

// ratioOf returns the fraction of target covered by root, in [0,1].
func ratioOf(target, root Rect) float64 {
	area := target.Area()
	if area == 0 {
		return 0
	}
	return target.Intersect(root).Area() / area
}
