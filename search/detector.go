package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/textscan/model"
)

// ReportFunc receives each match.
type ReportFunc func(sel model.Selection)

// unit is a glyph together with any following glyphs that hold only
// combining marks. Units are normalized as a whole so a base letter and a
// mark drawn as separate glyphs compose.
type unit struct {
	glyphs []model.Glyph
	text   string
	size   int // slots produced
}

// slot is one normalized rune and the unit it came from.
type slot struct {
	r    rune
	src  string // NFKC text the rune stands for; "" past the first rune of a fold expansion
	unit *unit
}

// Detector is an incremental keyword matcher. It runs a KMP automaton over
// the normalized runes of every glyph and keeps the last len(keyword)
// runes so a match can be traced back to its glyphs. Overlapping matches
// are all reported.
//
// The runes of the most recent glyph are held back until the next glyph
// shows it is not followed by a combining mark, so callers must Flush at
// the end of a page. A Detector is not safe for concurrent use.
type Detector struct {
	keyword       string
	caseSensitive bool
	pattern       []rune
	failure       []int
	report        ReportFunc
	fold          cases.Caser

	state   int
	page    int
	pending *unit
	window  []slot // ring buffer of len(pattern)
	head    int
	filled  int
}

// NewDetector creates a detector for keyword. An empty keyword disables
// matching.
func NewDetector(keyword string, caseSensitive bool, report ReportFunc) *Detector {
	d := &Detector{
		report: report,
		fold:   cases.Fold(),
	}
	d.SetKeyword(keyword, caseSensitive)
	return d
}

// SetKeyword replaces the keyword and clears any partial match.
func (d *Detector) SetKeyword(keyword string, caseSensitive bool) {
	d.keyword = keyword
	d.caseSensitive = caseSensitive
	d.pattern = []rune(d.normalize(keyword))
	d.failure = buildFailure(d.pattern)
	d.window = make([]slot, len(d.pattern))
	d.Reset()
}

// Keyword returns the keyword as given.
func (d *Detector) Keyword() string {
	return d.keyword
}

// Enabled reports whether there is anything to match.
func (d *Detector) Enabled() bool {
	return len(d.pattern) > 0
}

// Reset forgets partial matches and any held-back glyph. It is called at
// every page start since matches never span pages.
func (d *Detector) Reset() {
	d.state = 0
	d.pending = nil
	d.head = 0
	d.filled = 0
	clear(d.window)
}

// Flush feeds the held-back glyph through the automaton.
func (d *Detector) Flush() {
	if d.pending == nil {
		return
	}
	u := d.pending
	d.pending = nil
	var slots []slot
	for _, r0 := range norm.NFKC.String(u.text) {
		src := string(r0)
		folded := src
		if !d.caseSensitive {
			folded = d.fold.String(src)
		}
		for i, r := range folded {
			s := slot{r: r, unit: u}
			if i == 0 {
				s.src = src
			}
			slots = append(slots, s)
		}
	}
	u.size = len(slots)
	for _, s := range slots {
		d.step(s)
	}
}

func (d *Detector) normalize(s string) string {
	s = norm.NFKC.String(s)
	if !d.caseSensitive {
		s = d.fold.String(s)
	}
	return s
}

// ConsumeRun feeds the glyphs of a run through the automaton.
func (d *Detector) ConsumeRun(run *model.TextRun) {
	if !d.Enabled() {
		return
	}
	if run.Page != d.page {
		d.Flush()
		d.Reset()
		d.page = run.Page
	}
	for _, g := range run.Glyphs {
		if g.Text == "" {
			continue
		}
		if d.pending != nil && !norm.NFKC.PropertiesString(g.Text).BoundaryBefore() {
			d.pending.glyphs = append(d.pending.glyphs, g)
			d.pending.text += g.Text
			continue
		}
		d.Flush()
		d.pending = &unit{glyphs: []model.Glyph{g}, text: g.Text}
	}
}

func (d *Detector) step(s slot) {
	n := len(d.pattern)
	d.window[d.head] = s
	d.head = (d.head + 1) % n
	if d.filled < n {
		d.filled++
	}

	for d.state > 0 && d.pattern[d.state] != s.r {
		d.state = d.failure[d.state-1]
	}
	if d.pattern[d.state] == s.r {
		d.state++
	}
	if d.state == n {
		d.emit()
		d.state = d.failure[n-1]
	}
}

// emit reports the glyphs behind the last len(pattern) runes. A unit that
// lies wholly inside the match contributes its glyph text as drawn; a unit
// cut by either end of the match contributes only its matched runes.
func (d *Detector) emit() {
	n := len(d.pattern)
	var (
		glyphs []model.Glyph
		text   strings.Builder
	)
	for i := 0; i < n; {
		first := d.window[(d.head+i)%n]
		j := i + 1
		for j < n && d.window[(d.head+j)%n].unit == first.unit {
			j++
		}
		u := first.unit
		glyphs = append(glyphs, u.glyphs...)
		if j-i == u.size {
			text.WriteString(u.text)
		} else {
			for k := i; k < j; k++ {
				s := d.window[(d.head+k)%n]
				switch {
				case s.src != "":
					text.WriteString(s.src)
				case k == i:
					text.WriteRune(s.r)
				}
			}
		}
		i = j
	}
	if d.report != nil {
		sel := model.SelectionFromGlyphs(model.KeywordMatch, d.page, glyphs)
		sel.Text = text.String()
		d.report(sel)
	}
}

// buildFailure computes the KMP failure function: failure[i] is the length
// of the longest proper prefix of pattern[:i+1] that is also its suffix.
func buildFailure(pattern []rune) []int {
	failure := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = failure[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}
