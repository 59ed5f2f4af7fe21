package contentstream

// Variadic marks operators that take a variable number of operands.
const Variadic = -1

// arity lists the operand count of every operator defined by ISO 32000.
// BI carries its image dictionary as a single operand after parsing.
var arity = map[string]int{
	// general graphics state
	"w": 1, "J": 1, "j": 1, "M": 1, "d": 2, "ri": 1, "i": 1, "gs": 1,
	// special graphics state
	"q": 0, "Q": 0, "cm": 6,
	// path construction
	"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "h": 0, "re": 4,
	// path painting
	"S": 0, "s": 0, "f": 0, "F": 0, "f*": 0, "B": 0, "B*": 0, "b": 0, "b*": 0, "n": 0,
	// clipping
	"W": 0, "W*": 0,
	// text objects
	"BT": 0, "ET": 0,
	// text state
	"Tc": 1, "Tw": 1, "Tz": 1, "TL": 1, "Tf": 2, "Tr": 1, "Ts": 1,
	// text positioning
	"Td": 2, "TD": 2, "Tm": 6, "T*": 0,
	// text showing
	"Tj": 1, "TJ": 1, "'": 1, "\"": 3,
	// Type3 fonts
	"d0": 2, "d1": 6,
	// colour
	"CS": 1, "cs": 1, "SC": Variadic, "SCN": Variadic, "sc": Variadic, "scn": Variadic,
	"G": 1, "g": 1, "RG": 3, "rg": 3, "K": 4, "k": 4,
	// shading, images, XObjects
	"sh": 1, "BI": 1, "ID": 0, "EI": 0, "Do": 1,
	// marked content
	"MP": 1, "DP": 2, "BMC": 1, "BDC": 2, "EMC": 0,
	// compatibility
	"BX": 0, "EX": 0,
}

// Arity returns the number of operands op expects, or Variadic. known is
// false for operators outside the standard set.
func Arity(op string) (n int, known bool) {
	n, known = arity[op]
	return n, known
}

// Valid reports whether op is a known operator with an acceptable number of
// operands. Extra leading operands are tolerated, since some producers emit
// them; too few are not.
func (op Operation) Valid() bool {
	n, known := arity[op.Operator]
	if !known {
		return false
	}
	return n == Variadic || len(op.Operands) >= n
}

// IsTextShowing reports whether op paints text.
func IsTextShowing(op string) bool {
	switch op {
	case "Tj", "TJ", "'", "\"":
		return true
	}
	return false
}
