package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// embeddedFont reads advance widths from an embedded TrueType program
// (/FontFile2). It is only used while loading.
type embeddedFont struct {
	f          *sfnt.Font
	buf        sfnt.Buffer
	unitsPerEm sfnt.Units
	ppem       fixed.Int26_6
}

func parseEmbedded(data []byte) (*embeddedFont, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	upem := f.UnitsPerEm()
	if upem == 0 {
		return nil, fmt.Errorf("invalid unitsPerEm")
	}
	return &embeddedFont{
		f:          f,
		unitsPerEm: upem,
		ppem:       fixed.Int26_6(upem << 6),
	}, nil
}

// glyphWidth returns the advance of a glyph in thousandths of an em.
func (e *embeddedFont) glyphWidth(gi sfnt.GlyphIndex) (float64, bool) {
	adv, err := e.f.GlyphAdvance(&e.buf, gi, e.ppem, xfont.HintingNone)
	if err != nil {
		return 0, false
	}
	return scaleFixed(adv, e.unitsPerEm), true
}

// runeWidth returns the advance of the glyph the font's cmap assigns to r.
func (e *embeddedFont) runeWidth(r rune) (float64, bool) {
	gi, err := e.f.GlyphIndex(&e.buf, r)
	if err != nil || gi == 0 {
		return 0, false
	}
	return e.glyphWidth(gi)
}

func (e *embeddedFont) numGlyphs() int {
	return e.f.NumGlyphs()
}

// extent returns the ascent and descent in thousandths of an em.
func (e *embeddedFont) extent() (ascent, descent float64, ok bool) {
	m, err := e.f.Metrics(&e.buf, e.ppem, xfont.HintingNone)
	if err != nil || m.Ascent == 0 {
		return 0, 0, false
	}
	// sfnt reports descent as a positive distance below the baseline
	return scaleFixed(m.Ascent, e.unitsPerEm), -scaleFixed(m.Descent, e.unitsPerEm), true
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}
