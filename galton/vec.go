package galton

import "math"

// Vec2 is a 2D vector in board pixels (x right, y down).
type Vec2 struct {
	X float64 `yaml:"x" env:"X"`
	Y float64 `yaml:"y" env:"Y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

func (v Vec2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Circle is a disc; pins are reported to renderers as circles.
type Circle struct {
	Center Vec2
	Radius float64
}

// Overlaps reports whether the two discs interpenetrate. Touching is not overlap.
func (c Circle) Overlaps(o Circle) bool {
	r := c.Radius + o.Radius
	return c.Center.Sub(o.Center).LenSqr() < r*r
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// OverlapsCircle is the usual circle vs AABB test: distance from the
// circle centre to the rectangle, with the corner case handled separately.
func (r Rect) OverlapsCircle(c Circle) bool {
	halfW, halfH := r.W/2, r.H/2
	dx := math.Abs(c.Center.X - (r.X + halfW))
	dy := math.Abs(c.Center.Y - (r.Y + halfH))

	if dx > halfW+c.Radius || dy > halfH+c.Radius {
		return false
	}
	if dx <= halfW || dy <= halfH {
		return true
	}

	cx, cy := dx-halfW, dy-halfH
	return cx*cx+cy*cy <= c.Radius*c.Radius
}

