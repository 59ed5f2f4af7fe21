package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// BBox represents an axis-aligned bounding box
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates the smallest bounding box containing all points
func NewBBoxFromPoints(points ...Point) BBox {
	if len(points) == 0 {
		return BBox{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Contains checks if a point is inside the bounding box, edges included
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Bottom() && p.Y <= b.Top()
}

// Union returns the union of two bounding boxes. An empty box (zero value)
// is treated as the identity element.
func (b BBox) Union(other BBox) BBox {
	if b == (BBox{}) {
		return other
	}
	if other == (BBox{}) {
		return b
	}
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Quad is a page-space quadrilateral. For text it is the image of an
// axis-aligned text-space box, so it is a parallelogram whose corners run
// lower-left, lower-right, upper-right, upper-left in text space order.
type Quad [4]Point

// NewQuadFromBBox returns the quad with the same corners as b.
func NewQuadFromBBox(b BBox) Quad {
	return Quad{
		{b.Left(), b.Bottom()},
		{b.Right(), b.Bottom()},
		{b.Right(), b.Top()},
		{b.Left(), b.Top()},
	}
}

// TransformRect maps every corner of the box [x0,x1]x[y0,y1] through m.
func (m Matrix) TransformRect(x0, y0, x1, y1 float64) Quad {
	return Quad{
		m.Transform(Point{x0, y0}),
		m.Transform(Point{x1, y0}),
		m.Transform(Point{x1, y1}),
		m.Transform(Point{x0, y1}),
	}
}

// BBox returns the axis-aligned bounds of the quad.
func (q Quad) BBox() BBox {
	return NewBBoxFromPoints(q[0], q[1], q[2], q[3])
}

// quadEpsilon absorbs rounding error from matrix products so that points on
// an edge stay inside.
const quadEpsilon = 1e-9

// Contains reports whether p lies inside the quad or on its boundary. The
// quad may be rotated, skewed or mirrored; corners may be in either winding
// order. A degenerate quad (zero area) contains only points on its segments.
func (q Quad) Contains(p Point) bool {
	var pos, neg bool
	for i := 0; i < 4; i++ {
		a := q[i]
		b := q[(i+1)%4]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		switch {
		case cross > quadEpsilon:
			pos = true
		case cross < -quadEpsilon:
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	if !pos && !neg {
		// every edge is collinear with p; fall back to the bounds
		return q.BBox().Contains(p)
	}
	return true
}

// Matrix represents a 2D affine transformation matrix [a b c d e f].
// Points are row vectors: p' = p × M.
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m × other, the transform that applies m first and then
// other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
