package graphicsstate

import "github.com/tsawler/textscan/model"

// TextObject holds the text matrix and text line matrix of the current
// BT/ET block. They are not part of the saved graphics state.
type TextObject struct {
	Matrix     model.Matrix // Tm
	LineMatrix model.Matrix // Tlm
	open       bool
}

// Reset sets both matrices to identity with no text object open, the
// state at the start of a page.
func (t *TextObject) Reset() {
	t.Matrix = model.Identity()
	t.LineMatrix = model.Identity()
	t.open = false
}

// Begin starts a text object with identity matrices (BT operator)
func (t *TextObject) Begin() {
	t.Reset()
	t.open = true
}

// End closes the text object (ET operator)
func (t *TextObject) End() {
	t.open = false
}

// Open reports whether a BT has been seen without its ET.
func (t *TextObject) Open() bool {
	return t.open
}

// SetMatrix sets both matrices (Tm operator)
func (t *TextObject) SetMatrix(m model.Matrix) {
	t.Matrix = m
	t.LineMatrix = m
}

// Translate moves to the start of the next line offset by (tx, ty) from the
// start of the current line (Td operator).
func (t *TextObject) Translate(tx, ty float64) {
	t.LineMatrix = model.Translate(tx, ty).Multiply(t.LineMatrix)
	t.Matrix = t.LineMatrix
}

// TranslateSetLeading is Translate that also sets the leading to -ty
// (TD operator).
func (t *TextObject) TranslateSetLeading(gs *GraphicsState, tx, ty float64) {
	gs.SetLeading(-ty)
	t.Translate(tx, ty)
}

// NextLine moves down by the current leading (T* operator)
func (t *TextObject) NextLine(gs GraphicsState) {
	t.Translate(0, -gs.Text.Leading)
}

// Advance moves the text matrix by a displacement in text space after
// glyphs are painted.
func (t *TextObject) Advance(tx, ty float64) {
	t.Matrix = model.Translate(tx, ty).Multiply(t.Matrix)
}

// RenderingMatrix maps glyph space, scaled to 1 unit per em, into page
// space: [fs·th 0 0 fs 0 rise] × Tm × CTM.
func RenderingMatrix(gs GraphicsState, tm model.Matrix) model.Matrix {
	ts := gs.Text
	params := model.Matrix{ts.FontSize * ts.Scale(), 0, 0, ts.FontSize, 0, ts.Rise}
	return params.Multiply(tm).Multiply(gs.CTM)
}
