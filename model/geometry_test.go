package model

import (
	"math"
	"testing"
)

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBoxFromPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   BBox
	}{
		{"normal", []Point{{10, 20}, {50, 70}}, BBox{10, 20, 40, 50}},
		{"reversed", []Point{{50, 70}, {10, 20}}, BBox{10, 20, 40, 50}},
		{"same point", []Point{{10, 10}, {10, 10}}, BBox{10, 10, 0, 0}},
		{"four corners", []Point{{0, 5}, {5, 0}, {10, 5}, {5, 10}}, BBox{0, 0, 10, 10}},
		{"none", nil, BBox{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromPoints(tt.points...)
			if got != tt.want {
				t.Errorf("NewBBoxFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxContains(t *testing.T) {
	bbox := NewBBox(10, 10, 40, 10)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center", Point{30, 15}, true},
		{"corner", Point{10, 10}, true},
		{"edge", Point{50, 15}, true},
		{"right of box", Point{60, 15}, false},
		{"below box", Point{30, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bbox.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 10, 10)

	got := a.Union(b)
	want := BBox{0, 0, 15, 15}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}

	if got := (BBox{}).Union(b); got != b {
		t.Errorf("zero.Union(b) = %+v, want %+v", got, b)
	}
}

// ============================================================================
// Quad Tests
// ============================================================================

func TestQuadContainsAxisAligned(t *testing.T) {
	q := NewQuadFromBBox(NewBBox(10, 10, 40, 10))

	if !q.Contains(Point{30, 15}) {
		t.Error("expected (30,15) inside (10,10)-(50,20)")
	}
	if q.Contains(Point{60, 15}) {
		t.Error("expected (60,15) outside (10,10)-(50,20)")
	}
	if !q.Contains(Point{10, 20}) {
		t.Error("expected corner to be inside")
	}
}

func TestQuadContainsRotated(t *testing.T) {
	// unit box scaled to 40x10 then rotated 45 degrees about the origin
	m := Scale(40, 10).Multiply(Rotate(math.Pi / 4))
	q := m.TransformRect(0, 0, 1, 1)

	inside := m.Transform(Point{0.5, 0.5})
	if !q.Contains(inside) {
		t.Errorf("expected %v inside rotated quad %v", inside, q)
	}

	// inside the axis-aligned bounds but outside the rotated box
	bounds := q.BBox()
	corner := Point{bounds.Right() - 0.5, bounds.Bottom() + 0.5}
	if !bounds.Contains(corner) {
		t.Fatalf("test point %v not in bounds %+v", corner, bounds)
	}
	if q.Contains(corner) {
		t.Errorf("expected %v outside rotated quad %v", corner, q)
	}
}

func TestQuadContainsMirrored(t *testing.T) {
	// negative x scale reverses the winding order
	q := Scale(-1, 1).TransformRect(0, 0, 10, 10)
	if !q.Contains(Point{-5, 5}) {
		t.Error("expected point inside mirrored quad")
	}
	if q.Contains(Point{5, 5}) {
		t.Error("expected point outside mirrored quad")
	}
}

func TestQuadContainsDegenerate(t *testing.T) {
	q := Quad{{0, 0}, {10, 0}, {10, 0}, {0, 0}}
	if !q.Contains(Point{5, 0}) {
		t.Error("expected point on a zero-height quad's segment to be inside")
	}
	if q.Contains(Point{15, 0}) {
		t.Error("expected point beyond the segment to be outside")
	}
}

// ============================================================================
// Matrix Tests
// ============================================================================

func TestMatrixTransform(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		p := Point{10, 20}
		if result := Identity().Transform(p); result != p {
			t.Errorf("Identity.Transform(%v) = %v, want %v", p, result, p)
		}
	})

	t.Run("translation", func(t *testing.T) {
		result := Translate(100, 50).Transform(Point{10, 20})
		expected := Point{110, 70}
		if result != expected {
			t.Errorf("Translate.Transform = %v, want %v", result, expected)
		}
	})

	t.Run("scale", func(t *testing.T) {
		result := Scale(2, 3).Transform(Point{10, 20})
		expected := Point{20, 60}
		if result != expected {
			t.Errorf("Scale.Transform = %v, want %v", result, expected)
		}
	})
}

func TestMatrixMultiply(t *testing.T) {
	// translate.Multiply(scale) applies translate first, then scale
	combined := Translate(10, 20).Multiply(Scale(2, 2))

	result := combined.Transform(Point{5, 5})
	expected := Point{30, 50}
	if result != expected {
		t.Errorf("Combined transform = %v, want %v", result, expected)
	}
}

func TestMatrixMultiplyAssociative(t *testing.T) {
	a := Matrix{2, 0.5, -0.25, 1.5, 3, 4}
	b := Rotate(0.3)
	c := Matrix{1, 0, 0.2, 1, -7, 11}

	left := a.Multiply(b).Multiply(c)
	right := a.Multiply(b.Multiply(c))
	for i := range left {
		if math.Abs(left[i]-right[i]) > 1e-12 {
			t.Fatalf("(ab)c = %v, a(bc) = %v", left, right)
		}
	}
}

func TestRotate(t *testing.T) {
	result := Rotate(math.Pi / 2).Transform(Point{1, 0})
	if math.Abs(result.X) > 0.0001 || math.Abs(result.Y-1) > 0.0001 {
		t.Errorf("Rotate(Pi/2).Transform(1,0) = %v, want ~(0,1)", result)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	tests := []struct {
		name     string
		matrix   Matrix
		expected bool
	}{
		{"identity", Identity(), true},
		{"translated", Translate(1, 0), false},
		{"scaled", Scale(2, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.matrix.IsIdentity() != tt.expected {
				t.Errorf("IsIdentity() = %v, want %v", tt.matrix.IsIdentity(), tt.expected)
			}
		})
	}
}

// ============================================================================
// Selection Tests
// ============================================================================

func TestSelectionFromGlyphs(t *testing.T) {
	glyphs := []Glyph{
		{Text: "C", Quad: NewQuadFromBBox(NewBBox(0, 0, 5, 10))},
		{Text: "A", Quad: NewQuadFromBBox(NewBBox(5, 0, 5, 10))},
		{Text: "T", Quad: NewQuadFromBBox(NewBBox(20, 0, 5, 10))},
	}

	sel := SelectionFromGlyphs(KeywordMatch, 3, glyphs)
	if sel.Text != "CAT" {
		t.Errorf("Text = %q, want CAT", sel.Text)
	}
	if sel.Page != 3 || sel.Kind != KeywordMatch {
		t.Errorf("unexpected page/kind: %d/%v", sel.Page, sel.Kind)
	}
	if len(sel.Quads) != 3 {
		t.Fatalf("expected 3 quads, got %d", len(sel.Quads))
	}
	if got, want := sel.Bounds(), NewBBox(0, 0, 25, 10); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestSelectionKindString(t *testing.T) {
	if KeywordMatch.String() != "keyword" || HitTest.String() != "hit" {
		t.Errorf("unexpected kind names %q %q", KeywordMatch, HitTest)
	}
}
