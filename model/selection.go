package model

import "strings"

// Glyph is one decoded character code together with its page-space box.
// Text is usually a single rune but may be longer (ligatures mapped by a
// ToUnicode CMap) or empty (codes without a Unicode mapping).
type Glyph struct {
	Text string
	Code uint32
	Quad Quad
}

// TextRun is the decoded text and geometry produced by one text-showing
// operator (Tj, TJ, ' or ").
type TextRun struct {
	Text   string
	Glyphs []Glyph

	// Quad covers every glyph of the run. It is built in text space and
	// mapped to page space, so it follows rotation and skew.
	Quad   Quad
	Bounds BBox

	// Baseline start and end in page space.
	Start, End Point

	Page  int // 1-based page number
	Order int // position of the run within its page, starting at 0

	FontName string
	FontSize float64
}

// SelectionKind says which consumer produced a Selection.
type SelectionKind int

const (
	KeywordMatch SelectionKind = iota
	HitTest
)

// String returns the kind name
func (k SelectionKind) String() string {
	switch k {
	case KeywordMatch:
		return "keyword"
	case HitTest:
		return "hit"
	default:
		return "unknown"
	}
}

// Selection is a reported result: a keyword match or a hit-test result.
type Selection struct {
	Kind  SelectionKind
	Page  int
	Quads []Quad
	Text  string
}

// NewSelection builds a selection that owns a copy of quads.
func NewSelection(kind SelectionKind, page int, text string, quads []Quad) Selection {
	return Selection{
		Kind:  kind,
		Page:  page,
		Quads: append([]Quad(nil), quads...),
		Text:  text,
	}
}

// SelectionFromGlyphs builds a selection covering the given glyphs.
func SelectionFromGlyphs(kind SelectionKind, page int, glyphs []Glyph) Selection {
	var sb strings.Builder
	quads := make([]Quad, 0, len(glyphs))
	for _, g := range glyphs {
		sb.WriteString(g.Text)
		quads = append(quads, g.Quad)
	}
	return Selection{Kind: kind, Page: page, Quads: quads, Text: sb.String()}
}

// Bounds returns the union of the selection's quads.
func (s Selection) Bounds() BBox {
	var b BBox
	for _, q := range s.Quads {
		b = b.Union(q.BBox())
	}
	return b
}
