package font

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"

	"github.com/tsawler/textscan/core"
)

// maxRange bounds how many codes a single /W range entry may cover.
const maxRange = 0x10000

// Load builds metrics from a font dictionary. Type1, MMType1, TrueType and
// Type3 fonts load as simple fonts, Type0 as a composite font.
func Load(dict core.Dict) (*Metrics, error) {
	if dict == nil {
		return nil, errors.New("nil font dictionary")
	}
	subtype, _ := dict.GetName("Subtype")
	switch subtype {
	case "Type1", "MMType1", "TrueType", "Type3", "":
		return loadSimple(dict, string(subtype))
	case "Type0":
		return loadComposite(dict)
	}
	return nil, fmt.Errorf("unsupported font subtype %q", subtype)
}

// descriptor holds the font descriptor entries that affect metrics.
type descriptor struct {
	flags        int
	ascent       float64
	descent      float64
	missingWidth float64
	fontFile2    *core.Stream
}

const flagSymbolic = 1 << 2

func parseDescriptor(dict core.Dict) descriptor {
	var d descriptor
	fd, ok := dict.GetDict("FontDescriptor")
	if !ok {
		return d
	}
	if v, ok := fd.GetNumber("Flags"); ok {
		d.flags = int(v)
	}
	d.ascent, _ = fd.GetNumber("Ascent")
	d.descent, _ = fd.GetNumber("Descent")
	d.missingWidth, _ = fd.GetNumber("MissingWidth")
	d.fontFile2, _ = fd.GetStream("FontFile2")
	return d
}

// applyExtent sets the glyph box extent from the descriptor, falling back
// to the embedded program and then the defaults.
func (m *Metrics) applyExtent(d descriptor, emb *embeddedFont) {
	m.Ascent, m.Descent = DefaultAscent, DefaultDescent
	switch {
	case d.ascent > 0:
		m.Ascent = d.ascent
		if d.descent < 0 {
			m.Descent = d.descent
		}
	case emb != nil:
		if a, dsc, ok := emb.extent(); ok {
			m.Ascent, m.Descent = a, dsc
		}
	}
}

func loadEmbedded(d descriptor) *embeddedFont {
	if d.fontFile2 == nil || len(d.fontFile2.Data) == 0 {
		return nil
	}
	emb, err := parseEmbedded(d.fontFile2.Data)
	if err != nil {
		return nil
	}
	return emb
}

func loadToUnicode(dict core.Dict) *CMap {
	s, ok := dict.GetStream("ToUnicode")
	if !ok {
		return nil
	}
	cm, err := ParseCMap(s.Data)
	if err != nil {
		return nil
	}
	return cm
}

// loadSimple loads a font with single-byte codes.
func loadSimple(dict core.Dict, subtype string) (*Metrics, error) {
	baseFont, _ := dict.GetName("BaseFont")
	if subtype == "" {
		subtype = "Type1"
	}
	m := &Metrics{
		BaseFont: string(baseFont),
		Subtype:  subtype,
		widths:   make(map[uint32]float64),
	}

	d := parseDescriptor(dict)
	m.encoding = parseEncoding(dict.Get("Encoding"), builtinEncoding(m.BaseFont, subtype))
	m.toUnicode = loadToUnicode(dict)

	// Type3 glyph space is mapped to text space by the FontMatrix
	scale := 1.0
	if subtype == "Type3" {
		fm, ok := dict.GetArray("FontMatrix")
		vals, numeric := fm.Floats()
		if !ok || !numeric || len(vals) != 6 {
			return nil, errors.New("type3 font without a valid FontMatrix")
		}
		scale = vals[0] * 1000
		m.type3Extent(dict, vals[3]*1000)
	}

	if ws, ok := dict.GetArray("Widths"); ok {
		first, _ := dict.GetNumber("FirstChar")
		for i, obj := range ws {
			if w, ok := core.Number(obj); ok {
				m.widths[uint32(int(first)+i)] = w * scale
			}
		}
	}

	var emb *embeddedFont
	if subtype == "TrueType" {
		emb = loadEmbedded(d)
	}

	if len(m.widths) == 0 {
		if std, ok := standardWidths(m.BaseFont); ok {
			m.fillFromRunes(func(r rune) (float64, bool) { return std.width(r) })
		} else if emb != nil {
			m.fillFromRunes(emb.runeWidth)
			if d.flags&flagSymbolic != 0 {
				m.fillSymbolic(emb)
			}
		}
	}

	m.missingWidth = DefaultWidth
	if d.missingWidth > 0 {
		m.missingWidth = d.missingWidth * scale
	}
	if subtype != "Type3" {
		m.applyExtent(d, emb)
	}
	return m, nil
}

// fillFromRunes sets the width of every encoded code from a lookup by the
// code's Unicode value.
func (m *Metrics) fillFromRunes(lookup func(rune) (float64, bool)) {
	for code := 0; code < 256; code++ {
		r := m.encoding[code]
		if r == 0 {
			continue
		}
		if w, ok := lookup(r); ok {
			m.widths[uint32(code)] = w
		}
	}
}

// fillSymbolic covers symbolic TrueType fonts whose cmap maps codes into
// the U+F000 private range.
func (m *Metrics) fillSymbolic(emb *embeddedFont) {
	for code := 0; code < 256; code++ {
		if _, ok := m.widths[uint32(code)]; ok {
			continue
		}
		if w, ok := emb.runeWidth(0xF000 + rune(code)); ok {
			m.widths[uint32(code)] = w
		}
	}
}

// type3Extent derives the glyph box from /FontBBox.
func (m *Metrics) type3Extent(dict core.Dict, yScale float64) {
	m.Ascent, m.Descent = DefaultAscent, DefaultDescent
	bbox, ok := dict.GetArray("FontBBox")
	vals, numeric := bbox.Floats()
	if !ok || !numeric || len(vals) != 4 {
		return
	}
	top, bottom := vals[3]*yScale, vals[1]*yScale
	if top > bottom {
		m.Ascent, m.Descent = top, bottom
	}
}

// loadComposite loads a Type0 font and its descendant CIDFont.
func loadComposite(dict core.Dict) (*Metrics, error) {
	baseFont, _ := dict.GetName("BaseFont")
	m := &Metrics{
		BaseFont:  string(baseFont),
		Subtype:   "Type0",
		widths:    make(map[uint32]float64),
		composite: true,
	}

	descendants, _ := dict.GetArray("DescendantFonts")
	cidFont, ok := descendants.Get(0).(core.Dict)
	if !ok {
		return nil, errors.New("type0 font without a descendant font")
	}

	switch enc := dict.Get("Encoding").(type) {
	case core.Name:
		if cm, ok := predefinedCMap(string(enc)); ok {
			m.cmap = cm
		} else {
			// other predefined CMaps are two-byte; CIDs stay unknown
			m.cmap, _ = predefinedCMap("Identity-H")
			m.cmap.Name = string(enc)
		}
	case *core.Stream:
		cm, err := ParseCMap(enc.Data)
		if err != nil {
			return nil, fmt.Errorf("encoding cmap: %w", err)
		}
		m.cmap = cm
	default:
		m.cmap, _ = predefinedCMap("Identity-H")
	}
	m.toUnicode = loadToUnicode(dict)

	m.missingWidth = 1000
	if dw, ok := cidFont.GetNumber("DW"); ok {
		m.missingWidth = dw
	}
	if w, ok := cidFont.GetArray("W"); ok {
		m.parseW(w)
	}

	d := parseDescriptor(cidFont)
	emb := loadEmbedded(d)
	if len(m.widths) == 0 && emb != nil && identityCIDToGID(cidFont) {
		for gi := 0; gi < emb.numGlyphs() && gi < maxRange; gi++ {
			if w, ok := emb.glyphWidth(sfnt.GlyphIndex(gi)); ok {
				m.widths[uint32(gi)] = w
			}
		}
	}
	m.applyExtent(d, emb)
	return m, nil
}

// parseW reads a CIDFont /W array: entries are either
// "c [w1 w2 ... wn]" or "cfirst clast w".
func (m *Metrics) parseW(w core.Array) {
	for i := 0; i < len(w); {
		start, ok := core.Number(w[i])
		if !ok || i+1 >= len(w) {
			return
		}
		i++

		if list, ok := w[i].(core.Array); ok {
			for j, obj := range list {
				if v, ok := core.Number(obj); ok {
					m.widths[uint32(start)+uint32(j)] = v
				}
			}
			i++
			continue
		}

		if i+1 >= len(w) {
			return
		}
		end, ok1 := core.Number(w[i])
		width, ok2 := core.Number(w[i+1])
		i += 2
		if !ok1 || !ok2 || end < start || end-start >= maxRange {
			continue
		}
		for cid := uint32(start); cid <= uint32(end); cid++ {
			m.widths[cid] = width
		}
	}
}

func identityCIDToGID(cidFont core.Dict) bool {
	switch v := cidFont.Get("CIDToGIDMap").(type) {
	case nil:
		return true
	case core.Name:
		return v == "Identity"
	}
	return false
}
