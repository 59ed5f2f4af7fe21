// Package font loads the font metrics needed to place text: advance
// widths, how a string splits into character codes, and how codes decode
// to Unicode.
//
// [Load] builds [Metrics] from a font dictionary. Simple fonts (Type1,
// MMType1, TrueType, Type3) use one byte per code; Type0 composite fonts
// split strings using their encoding CMap.
//
// Widths come from, in order:
//   - /Widths and /FirstChar, or /W and /DW for composite fonts
//   - the built-in tables of the standard 14 fonts
//   - the embedded TrueType program (/FontFile2)
//   - /MissingWidth, then [DefaultWidth]
//
// Decoding uses the /ToUnicode CMap when present, then the font's
// encoding: WinAnsiEncoding, MacRomanEncoding, StandardEncoding, or a
// /Differences array resolved through glyph names.
//
// A [Table] caches metrics per page and substitutes [Fallback] metrics for
// fonts that cannot be resolved:
//
//	table := font.NewTable(page)
//	m, err := table.Resolve("F1")
//	if errors.Is(err, font.ErrMissingFont) {
//	    // m is the fallback; keep going
//	}
//	for _, c := range m.Codes(raw) {
//	    fmt.Println(m.Decode(c.Value), m.Width(c.Value))
//	}
package font
