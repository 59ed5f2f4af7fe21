package graphicsstate

import (
	"math"
	"testing"

	"github.com/tsawler/textscan/model"
)

// TestTextObjectBegin tests BT
func TestTextObjectBegin(t *testing.T) {
	var to TextObject
	to.SetMatrix(model.Translate(5, 5))
	to.Begin()

	if !to.Matrix.IsIdentity() || !to.LineMatrix.IsIdentity() {
		t.Error("expected identity matrices after BT")
	}
	if !to.Open() {
		t.Error("expected open text object")
	}
	to.End()
	if to.Open() {
		t.Error("expected closed text object after ET")
	}
}

// TestTextObjectTranslate tests Td in a scaled text matrix
func TestTextObjectTranslate(t *testing.T) {
	var to TextObject
	to.Begin()
	to.SetMatrix(model.Matrix{2, 0, 0, 2, 100, 700})
	to.Advance(30, 0)

	// Td is relative to the line start, not the advanced position
	to.Translate(0, -10)

	want := model.Matrix{2, 0, 0, 2, 100, 680}
	if to.Matrix != want || to.LineMatrix != want {
		t.Errorf("expected %v, got Tm=%v Tlm=%v", want, to.Matrix, to.LineMatrix)
	}
}

// TestTextObjectNextLine tests TD and T*
func TestTextObjectNextLine(t *testing.T) {
	s := NewStack()
	var to TextObject
	to.Begin()
	to.SetMatrix(model.Translate(72, 720))

	to.TranslateSetLeading(s.Top(), 0, -14)
	if s.Current().Text.Leading != 14 {
		t.Fatalf("expected leading 14, got %v", s.Current().Text.Leading)
	}

	to.NextLine(s.Current())
	if to.Matrix[5] != 692 || to.Matrix[4] != 72 {
		t.Errorf("expected (72, 692), got (%v, %v)", to.Matrix[4], to.Matrix[5])
	}
}

// TestTextObjectAdvance tests advancing under rotation
func TestTextObjectAdvance(t *testing.T) {
	var to TextObject
	to.Begin()
	to.SetMatrix(model.Rotate(math.Pi / 2))
	to.Advance(10, 0)

	// a 90° text matrix turns a horizontal advance into a vertical one
	if !nearlyEqual(to.Matrix[4], 0) || !nearlyEqual(to.Matrix[5], 10) {
		t.Errorf("expected (0, 10), got (%v, %v)", to.Matrix[4], to.Matrix[5])
	}
	if to.LineMatrix != model.Rotate(math.Pi/2) {
		t.Error("advance must not move the line matrix")
	}
}

// TestRenderingMatrix tests the glyph to page transform
func TestRenderingMatrix(t *testing.T) {
	gs := Default()
	gs.SetFont("F1", 10)
	gs.SetHorizontalScaling(50)
	gs.SetTextRise(2)
	gs.CTM = model.Translate(0, 100)

	rm := RenderingMatrix(gs, model.Translate(20, 30))

	// one em across and one em up from the glyph origin
	p := rm.Transform(model.Point{X: 1, Y: 1})
	if !nearlyEqual(p.X, 25) || !nearlyEqual(p.Y, 142) {
		t.Errorf("expected (25, 142), got (%v, %v)", p.X, p.Y)
	}

	origin := rm.Transform(model.Point{})
	if !nearlyEqual(origin.X, 20) || !nearlyEqual(origin.Y, 132) {
		t.Errorf("expected origin (20, 132), got (%v, %v)", origin.X, origin.Y)
	}
}
