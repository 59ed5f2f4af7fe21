package font

import "golang.org/x/text/encoding/charmap"

// glyphList maps glyph names to Unicode. It covers the Latin names of
// WinAnsiEncoding plus the ligatures, punctuation and symbols commonly
// found in /Differences arrays.
var glyphList = buildGlyphList()

// winAnsiNames lists the glyph names of WinAnsiEncoding codes 0x20-0xFF in
// order. Empty strings are unassigned codes.
var winAnsiNames = [224]string{
	"space", "exclam", "quotedbl", "numbersign", "dollar", "percent", "ampersand", "quotesingle",
	"parenleft", "parenright", "asterisk", "plus", "comma", "hyphen", "period", "slash",
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "colon", "semicolon", "less", "equal", "greater", "question",
	"at", "A", "B", "C", "D", "E", "F", "G",
	"H", "I", "J", "K", "L", "M", "N", "O",
	"P", "Q", "R", "S", "T", "U", "V", "W",
	"X", "Y", "Z", "bracketleft", "backslash", "bracketright", "asciicircum", "underscore",
	"grave", "a", "b", "c", "d", "e", "f", "g",
	"h", "i", "j", "k", "l", "m", "n", "o",
	"p", "q", "r", "s", "t", "u", "v", "w",
	"x", "y", "z", "braceleft", "bar", "braceright", "asciitilde", "",
	"Euro", "", "quotesinglbase", "florin", "quotedblbase", "ellipsis", "dagger", "daggerdbl",
	"circumflex", "perthousand", "Scaron", "guilsinglleft", "OE", "", "Zcaron", "",
	"", "quoteleft", "quoteright", "quotedblleft", "quotedblright", "bullet", "endash", "emdash",
	"tilde", "trademark", "scaron", "guilsinglright", "oe", "", "zcaron", "Ydieresis",
	"nbspace", "exclamdown", "cent", "sterling", "currency", "yen", "brokenbar", "section",
	"dieresis", "copyright", "ordfeminine", "guillemotleft", "logicalnot", "sfthyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu", "paragraph", "periodcentered",
	"cedilla", "onesuperior", "ordmasculine", "guillemotright", "onequarter", "onehalf", "threequarters", "questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adieresis", "Aring", "AE", "Ccedilla",
	"Egrave", "Eacute", "Ecircumflex", "Edieresis", "Igrave", "Iacute", "Icircumflex", "Idieresis",
	"Eth", "Ntilde", "Ograve", "Oacute", "Ocircumflex", "Otilde", "Odieresis", "multiply",
	"Oslash", "Ugrave", "Uacute", "Ucircumflex", "Udieresis", "Yacute", "Thorn", "germandbls",
	"agrave", "aacute", "acircumflex", "atilde", "adieresis", "aring", "ae", "ccedilla",
	"egrave", "eacute", "ecircumflex", "edieresis", "igrave", "iacute", "icircumflex", "idieresis",
	"eth", "ntilde", "ograve", "oacute", "ocircumflex", "otilde", "odieresis", "divide",
	"oslash", "ugrave", "uacute", "ucircumflex", "udieresis", "yacute", "thorn", "ydieresis",
}

var extraGlyphs = map[string]rune{
	"ff":               0xFB00,
	"fi":               0xFB01,
	"fl":               0xFB02,
	"ffi":              0xFB03,
	"ffl":              0xFB04,
	"dotlessi":         0x0131,
	"Lslash":           0x0141,
	"lslash":           0x0142,
	"fraction":         0x2044,
	"minus":            0x2212,
	"breve":            0x02D8,
	"caron":            0x02C7,
	"dotaccent":        0x02D9,
	"hungarumlaut":     0x02DD,
	"ogonek":           0x02DB,
	"ring":             0x02DA,
	"nonbreakingspace": 0x00A0,
	"middot":           0x00B7,
	"apostrophe":       0x0027,
	"arrowleft":        0x2190,
	"arrowup":          0x2191,
	"arrowright":       0x2192,
	"arrowdown":        0x2193,
	"arrowboth":        0x2194,
	"bulletoperator":   0x2219,
	"lozenge":          0x25CA,
	"infinity":         0x221E,
	"notequal":         0x2260,
	"lessequal":        0x2264,
	"greaterequal":     0x2265,
	"summation":        0x2211,
	"product":          0x220F,
	"radical":          0x221A,
	"approxequal":      0x2248,
	"partialdiff":      0x2202,
	"Delta":            0x0394,
	"Omega":            0x03A9,
	"pi":               0x03C0,
	"mu1":              0x00B5,
	"afii61289":        0x2113,
	"afii61352":        0x2116,
	"checkmark":        0x2713,
}

func buildGlyphList() map[string]rune {
	m := make(map[string]rune, len(winAnsiNames)+len(extraGlyphs))
	for i, name := range winAnsiNames {
		if name == "" {
			continue
		}
		m[name] = charmap.Windows1252.DecodeByte(byte(i + 0x20))
	}
	for name, r := range extraGlyphs {
		m[name] = r
	}
	return m
}
