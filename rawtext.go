package textscan

import (
	"math"
	"strings"

	"github.com/tsawler/textscan/model"
)

// rawText accumulates run text in content stream order. A run whose
// baseline leaves the previous line starts a new line; a gap wider than a
// fraction of the run height becomes a space.
type rawText struct {
	sb    strings.Builder
	last  *model.TextRun
	pages int
}

func (r *rawText) startPage() {
	if r.pages > 0 {
		r.sb.WriteString("\n\n")
	}
	r.pages++
	r.last = nil
}

func (r *rawText) ConsumeRun(run *model.TextRun) {
	if r.last != nil {
		height := run.Bounds.Height
		switch {
		case math.Abs(run.Start.Y-r.last.End.Y) > height*0.5:
			r.sb.WriteByte('\n')
		case run.Start.X-r.last.End.X > height*0.3 && !spaced(r.last.Text, run.Text):
			r.sb.WriteByte(' ')
		}
	}
	r.sb.WriteString(run.Text)

	last := *run
	last.Glyphs = nil
	r.last = &last
}

func (r *rawText) String() string {
	return r.sb.String()
}

func (r *rawText) reset() {
	r.sb.Reset()
	r.last = nil
	r.pages = 0
}

// spaced reports whether the boundary between a and b already has a space.
func spaced(a, b string) bool {
	return strings.HasSuffix(a, " ") || strings.HasPrefix(b, " ")
}
