package font

import (
	"testing"

	"github.com/tsawler/textscan/core"
)

// TestNamedEncoding tests the predefined encodings
func TestNamedEncoding(t *testing.T) {
	tests := []struct {
		name string
		code byte
		want rune
	}{
		{"WinAnsiEncoding", 'A', 'A'},
		{"WinAnsiEncoding", 0x80, '€'},
		{"WinAnsiEncoding", 0x93, '“'},
		{"WinAnsiEncoding", 0xE9, 'é'},
		{"WinAnsiEncoding", 0x8D, '•'},
		{"MacRomanEncoding", 0x8E, 'é'},
		{"MacRomanEncoding", 0xD2, '“'},
		{"StandardEncoding", 0x27, '’'},
		{"StandardEncoding", 0xAE, 'ﬁ'},
		{"SymbolEncoding", 0x61, 'α'},
	}

	for _, tt := range tests {
		enc, ok := NamedEncoding(tt.name)
		if !ok {
			t.Fatalf("NamedEncoding(%q) not found", tt.name)
		}
		if got := enc[tt.code]; got != tt.want {
			t.Errorf("%s[%#x] = %q, want %q", tt.name, tt.code, got, tt.want)
		}
	}

	if _, ok := NamedEncoding("Bogus"); ok {
		t.Error("expected unknown encoding to fail")
	}
}

// TestDifferences tests /Differences over a base encoding
func TestDifferences(t *testing.T) {
	obj := core.Dict{
		"BaseEncoding": core.Name("WinAnsiEncoding"),
		"Differences": core.Array{
			core.Int(65), core.Name("fi"), core.Name("uni00E9"),
			core.Int(128), core.Name("u1F600"), core.Name("a.sc"), core.Name("nosuchglyph"),
		},
	}

	enc := parseEncoding(obj, standardEncoding)

	tests := []struct {
		code byte
		want rune
	}{
		{65, 'ﬁ'},
		{66, 'é'},
		{67, 'C'},
		{128, '😀'},
		{129, 'a'},
		{130, 0},
	}
	for _, tt := range tests {
		if got := enc[tt.code]; got != tt.want {
			t.Errorf("code %d = %q, want %q", tt.code, got, tt.want)
		}
	}

	// the shared base table must not change
	if winAnsiEncoding[65] != 'A' {
		t.Error("Differences modified the base encoding")
	}
}

// TestGlyphRune tests glyph name resolution
func TestGlyphRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"A", 'A', true},
		{"quoteright", '’', true},
		{"Eacute", 'É', true},
		{"germandbls", 'ß', true},
		{"ffl", 'ﬄ', true},
		{"uni20AC", '€', true},
		{"u20AC", '€', true},
		{"zero.oldstyle", '0', true},
		{"g123", 0, false},
	}
	for _, tt := range tests {
		got, ok := GlyphRune(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GlyphRune(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

// TestStripSubset tests subset tag removal
func TestStripSubset(t *testing.T) {
	tests := map[string]string{
		"ABCDEF+Helvetica": "Helvetica",
		"Helvetica":        "Helvetica",
		"abcdef+Arial":     "abcdef+Arial",
	}
	for in, want := range tests {
		if got := stripSubset(in); got != want {
			t.Errorf("stripSubset(%q) = %q, want %q", in, got, want)
		}
	}
}
