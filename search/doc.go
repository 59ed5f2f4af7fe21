// Package search finds a keyword in the text runs of a page as they are
// produced.
//
// A [Detector] consumes runs one at a time and keeps matching state between
// them, so a keyword split over several text-showing operators is still
// found. Matches are reported as [model.Selection] values that carry the
// quad of every glyph contributing to the match.
//
// The text of a match is the glyph text as drawn, except that a glyph cut
// by either end of the match contributes only its matched runes.
//
// Glyph text is normalized to NFKC before matching, which lets ligature
// glyphs such as U+FB01 match the letters they stand for. Matching is
// case-insensitive unless requested otherwise, using full Unicode case
// folding. A glyph that holds only combining marks is normalized together
// with the glyph before it, even across runs, so "e" followed by a U+0301
// glyph matches "é". The last glyph is therefore held back until the next
// one arrives; call [Detector.Flush] at the end of a page.
package search
