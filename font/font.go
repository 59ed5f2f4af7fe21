package font

import "strings"

// DefaultWidth is the advance width, in thousandths of a text space unit,
// used when a font supplies no width for a code.
const DefaultWidth = 500.0

// Default vertical extent of a glyph box when the font descriptor does
// not give one.
const (
	DefaultAscent  = 800.0
	DefaultDescent = -200.0
)

// Metrics is what text positioning needs from a font: advance widths by
// character code, how to split a string into codes, and how to decode codes
// to Unicode. Metrics are immutable once loaded.
type Metrics struct {
	BaseFont string
	Subtype  string

	// Widths are in thousandths of a text space unit. Type3 widths are
	// already scaled by the FontMatrix.
	widths       map[uint32]float64
	missingWidth float64

	// Glyph box extent in thousandths of a text space unit.
	Ascent  float64
	Descent float64

	composite bool
	encoding  *Encoding // simple fonts
	toUnicode *CMap
	cmap      *CMap // code splitting and CIDs for composite fonts
}

// Fallback returns the metrics substituted for a font that cannot be
// resolved: every code is one byte wide, DefaultWidth units wide, and
// decoded with WinAnsiEncoding.
func Fallback() *Metrics {
	return &Metrics{
		BaseFont:     "Helvetica",
		Subtype:      "Type1",
		widths:       map[uint32]float64{},
		missingWidth: DefaultWidth,
		Ascent:       DefaultAscent,
		Descent:      DefaultDescent,
		encoding:     winAnsiEncoding,
	}
}

// Composite reports whether this is a Type0 font.
func (m *Metrics) Composite() bool {
	return m.composite
}

// Vertical reports whether the font uses vertical writing mode.
func (m *Metrics) Vertical() bool {
	return m.cmap != nil && m.cmap.Vertical
}

// Width returns the advance width of a code in thousandths of a text
// space unit.
func (m *Metrics) Width(code uint32) float64 {
	key := code
	if m.composite {
		if cid, ok := m.cmap.CID(code); ok {
			key = cid
		}
	}
	if w, ok := m.widths[key]; ok {
		return w
	}
	return m.missingWidth
}

// Code is one character code read from a string operand.
type Code struct {
	Value uint32
	Len   int // bytes
}

// Codes splits a string operand into character codes. Simple fonts use one
// byte per code; composite fonts follow the codespace of their encoding
// CMap, or of the ToUnicode CMap when that is all there is, and default to
// two bytes.
func (m *Metrics) Codes(s []byte) []Code {
	codes := make([]Code, 0, len(s))
	if !m.composite {
		for _, b := range s {
			codes = append(codes, Code{Value: uint32(b), Len: 1})
		}
		return codes
	}

	var split *CMap
	switch {
	case m.cmap.HasCodespace():
		split = m.cmap
	case m.toUnicode.HasCodespace():
		split = m.toUnicode
	}
	for len(s) > 0 {
		var c Code
		if split != nil {
			v, n := split.NextCode(s)
			c = Code{Value: v, Len: n}
		} else if len(s) >= 2 {
			c = Code{Value: uint32(s[0])<<8 | uint32(s[1]), Len: 2}
		} else {
			c = Code{Value: uint32(s[0]), Len: 1}
		}
		codes = append(codes, c)
		s = s[c.Len:]
	}
	return codes
}

// Decode returns the Unicode text of a code. The ToUnicode CMap wins;
// simple fonts then use their encoding, composite fonts the code value
// itself. Codes with no mapping decode to "".
func (m *Metrics) Decode(code uint32) string {
	if s, ok := m.toUnicode.Lookup(code); ok {
		return s
	}
	if m.composite {
		if code >= 0x20 && code < 0xD800 || code >= 0xE000 && code <= 0x10FFFF {
			return string(rune(code))
		}
		return ""
	}
	if code < 256 && m.encoding != nil {
		if r := m.encoding[code]; r != 0 {
			return string(r)
		}
	}
	return ""
}

// IsWordSpace reports whether word spacing applies to the code: only the
// single-byte code 32.
func (c Code) IsWordSpace() bool {
	return c.Len == 1 && c.Value == 32
}

// IsStandard reports whether the font is one of the standard 14.
func (m *Metrics) IsStandard() bool {
	_, ok := standardWidths(m.BaseFont)
	return ok
}

func (m *Metrics) String() string {
	var sb strings.Builder
	sb.WriteString(m.Subtype)
	sb.WriteByte(' ')
	sb.WriteString(m.BaseFont)
	if m.composite {
		sb.WriteString(" (composite)")
	}
	return sb.String()
}
