// Package model provides the geometry and result types shared by the
// scanning packages.
//
// # Geometry
//
// Geometric primitives support position and hit-testing calculations:
//
//   - [Point] - 2D point in page or text space
//   - [BBox] - axis-aligned bounding box with union and containment
//   - [Quad] - page-space quadrilateral that follows rotation and skew
//   - [Matrix] - 2D affine transformation matrix (PDF row-vector convention)
//
// # Results
//
// The content-stream interpreter produces one [TextRun] per text-showing
// operator. Each run carries its decoded text, a [Glyph] per character code
// and the run's quadrilateral.
//
// Consumers turn runs into [Selection] values: keyword matches and hit-test
// results. A selection holds one quad per contributing glyph (keyword
// matches) or the run quad (hit tests):
//
//	sel := model.SelectionFromGlyphs(model.KeywordMatch, page, glyphs)
//	box := sel.Bounds()
package model
