// Package graphicsstate tracks the parts of the PDF graphics state that
// decide where text lands on the page.
//
// A [Stack] holds the current [GraphicsState] (CTM and text state) and the
// states saved by q. States are values, so a restore gives back exactly
// what was saved:
//
//	s := graphicsstate.NewStack()
//	s.Push()                   // q
//	s.Compose(matrix)          // cm
//	s.Top().SetFont("F1", 12)  // Tf
//	if err := s.Pop(); err != nil {
//	    // ErrStateUnderflow: Q without q
//	}
//
// The text matrices belong to a [TextObject], which lives for one BT/ET
// block and is not affected by q/Q. [RenderingMatrix] combines both into
// the transform from glyph space to page space.
package graphicsstate
