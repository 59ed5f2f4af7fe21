package text

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/tsawler/textscan/contentstream"
	"github.com/tsawler/textscan/core"
	"github.com/tsawler/textscan/font"
	"github.com/tsawler/textscan/graphicsstate"
	"github.com/tsawler/textscan/model"
)

type fontMap map[string]core.Dict

func (f fontMap) ResolveFont(name string) (core.Dict, error) {
	d, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", name, font.ErrMissingFont)
	}
	return d, nil
}

// courier has 600 unit advances and the default 800/-200 extent
var courier = fontMap{
	"F1": {"Type": core.Name("Font"), "Subtype": core.Name("Type1"), "BaseFont": core.Name("Courier")},
}

type collector struct {
	runs []model.TextRun
}

func (c *collector) ConsumeRun(run *model.TextRun) {
	c.runs = append(c.runs, *run)
}

type warning struct {
	op  string
	err error
}

func interpret(t *testing.T, content string, fonts font.Resolver) ([]model.TextRun, []warning, Stats) {
	t.Helper()
	var c collector
	var warnings []warning
	in := NewInterpreter(nil, &c)
	in.OnWarning(func(op string, err error) {
		warnings = append(warnings, warning{op, err})
	})
	if err := in.Run(1, contentstream.NewParser([]byte(content)), fonts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return c.runs, warnings, in.Stats()
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// TestInterpreterSimpleRun tests glyph quads and the run quad of a Tj
func TestInterpreterSimpleRun(t *testing.T) {
	runs, warnings, stats := interpret(t, "BT /F1 10 Tf 100 700 Td (AB) Tj ET", courier)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Text != "AB" {
		t.Errorf("expected text %q, got %q", "AB", run.Text)
	}
	if run.FontName != "F1" || run.FontSize != 10 || run.Page != 1 || run.Order != 0 {
		t.Errorf("unexpected run attributes: %+v", run)
	}

	wantGlyphs := []model.Glyph{
		{Text: "A", Code: 'A', Quad: model.Quad{{X: 100, Y: 698}, {X: 106, Y: 698}, {X: 106, Y: 708}, {X: 100, Y: 708}}},
		{Text: "B", Code: 'B', Quad: model.Quad{{X: 106, Y: 698}, {X: 112, Y: 698}, {X: 112, Y: 708}, {X: 106, Y: 708}}},
	}
	if diff := cmp.Diff(wantGlyphs, run.Glyphs, approx); diff != "" {
		t.Errorf("glyphs mismatch (-want +got):\n%s", diff)
	}

	wantQuad := model.Quad{{X: 100, Y: 698}, {X: 112, Y: 698}, {X: 112, Y: 708}, {X: 100, Y: 708}}
	if diff := cmp.Diff(wantQuad, run.Quad, approx); diff != "" {
		t.Errorf("run quad mismatch (-want +got):\n%s", diff)
	}
	wantBounds := model.BBox{X: 100, Y: 698, Width: 12, Height: 10}
	if diff := cmp.Diff(wantBounds, run.Bounds, approx); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
	if run.Start != (model.Point{X: 100, Y: 700}) || run.End != (model.Point{X: 112, Y: 700}) {
		t.Errorf("unexpected baseline %v to %v", run.Start, run.End)
	}

	if stats.Runs != 1 || stats.Glyphs != 2 || stats.Operators != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

// TestInterpreterAdvance tests that each run starts where the previous one
// ended, including spacing and scaling
func TestInterpreterAdvance(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64 // x of the second run
	}{
		{"plain", "BT /F1 10 Tf (AB) Tj (C) Tj ET", 12},
		{"char spacing", "BT /F1 10 Tf 1 Tc (AB) Tj (C) Tj ET", 14},
		{"word spacing", "BT /F1 10 Tf 5 Tw (A B) Tj (C) Tj ET", 23},
		{"word spacing ignored", "BT /F1 10 Tf 5 Tw (AB) Tj (C) Tj ET", 12},
		{"horizontal scaling", "BT /F1 10 Tf 50 Tz (AB) Tj (C) Tj ET", 6},
		{"TJ adjustment", "BT /F1 10 Tf [(A) -400 (B)] TJ (C) Tj ET", 16},
		{"TJ negative kern", "BT /F1 10 Tf [(A) 600 (B)] TJ (C) Tj ET", 6},
		{"scaled text matrix", "BT /F1 10 Tf 2 0 0 2 0 0 Tm (AB) Tj (C) Tj ET", 24},
		{"scaled CTM", "2 0 0 2 0 0 cm BT /F1 10 Tf (AB) Tj (C) Tj ET", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, _, _ := interpret(t, tt.content, courier)
			if len(runs) != 2 {
				t.Fatalf("expected 2 runs, got %d", len(runs))
			}
			if got := runs[1].Start.X; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected second run at x=%v, got %v", tt.want, got)
			}
			if math.Abs(runs[0].End.X-runs[1].Start.X) > 1e-9 {
				t.Errorf("first run ends at %v, second starts at %v", runs[0].End.X, runs[1].Start.X)
			}
		})
	}
}

// TestInterpreterLinePositioning tests T*, ' and "
func TestInterpreterLinePositioning(t *testing.T) {
	content := `BT /F1 10 Tf 14 TL 50 500 Td (A) Tj T* (B) Tj (C) ' 3 1 (D) " ET`
	runs, _, _ := interpret(t, content, courier)
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	want := []model.Point{{X: 50, Y: 500}, {X: 50, Y: 486}, {X: 50, Y: 472}, {X: 50, Y: 458}}
	for i, run := range runs {
		if run.Start != want[i] {
			t.Errorf("run %d (%q): expected start %v, got %v", i, run.Text, want[i], run.Start)
		}
		if run.Order != i {
			t.Errorf("run %d: expected order %d, got %d", i, i, run.Order)
		}
	}
}

// TestInterpreterRotation tests that a rotated text matrix gives a rotated
// quad rather than its bounding box
func TestInterpreterRotation(t *testing.T) {
	// 90 degrees counter-clockwise
	runs, _, _ := interpret(t, "BT /F1 10 Tf 0 1 -1 0 200 100 Tm (AB) Tj ET", courier)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	want := model.Quad{{X: 202, Y: 100}, {X: 202, Y: 112}, {X: 192, Y: 112}, {X: 192, Y: 100}}
	if diff := cmp.Diff(want, runs[0].Quad, approx); diff != "" {
		t.Errorf("quad mismatch (-want +got):\n%s", diff)
	}
	if !runs[0].Quad.Contains(model.Point{X: 197, Y: 106}) {
		t.Error("expected the rotated quad to contain its centre")
	}
}

// TestInterpreterRise tests that Ts lifts the glyph boxes
func TestInterpreterRise(t *testing.T) {
	runs, _, _ := interpret(t, "BT /F1 10 Tf 5 Ts (A) Tj ET", courier)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	b := runs[0].Bounds
	if math.Abs(b.Bottom()-3) > 1e-9 || math.Abs(b.Top()-13) > 1e-9 {
		t.Errorf("expected y range [3, 13], got [%v, %v]", b.Bottom(), b.Top())
	}
}

// TestInterpreterSaveRestore tests that q/Q restore the CTM and text state
// but leave the text matrix alone
func TestInterpreterSaveRestore(t *testing.T) {
	content := "BT /F1 10 Tf q 2 0 0 2 0 0 cm /F1 20 Tf (A) Tj Q (B) Tj ET"
	runs, _, _ := interpret(t, content, courier)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].FontSize != 20 || runs[1].FontSize != 10 {
		t.Errorf("expected sizes 20 and 10, got %v and %v", runs[0].FontSize, runs[1].FontSize)
	}
	// A advanced the text matrix by 12 in text space
	if math.Abs(runs[1].Start.X-12) > 1e-9 {
		t.Errorf("expected B at x=12, got %v", runs[1].Start.X)
	}
	if math.Abs(runs[1].Bounds.Height-10) > 1e-9 {
		t.Errorf("expected unscaled height 10, got %v", runs[1].Bounds.Height)
	}
}

// TestInterpreterMissingFont tests fallback metrics and a single warning
// per font
func TestInterpreterMissingFont(t *testing.T) {
	content := "BT /F9 10 Tf (Hi) Tj /F9 12 Tf (there) Tj ET"
	runs, warnings, _ := interpret(t, content, courier)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Text != "Hi" || runs[1].Text != "there" {
		t.Errorf("unexpected text %q %q", runs[0].Text, runs[1].Text)
	}
	// fallback advance is 500 units
	if math.Abs(runs[0].End.X-10) > 1e-9 {
		t.Errorf("expected fallback advance to x=10, got %v", runs[0].End.X)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].op != "Tf" || !errors.Is(warnings[0].err, font.ErrMissingFont) {
		t.Errorf("unexpected warning %v", warnings[0])
	}
}

// TestInterpreterUnbalancedRestore tests that a lone Q is reported and
// ignored
func TestInterpreterUnbalancedRestore(t *testing.T) {
	content := "Q 1 0 0 1 10 0 cm BT /F1 10 Tf (A) Tj ET"
	runs, warnings, _ := interpret(t, content, courier)
	if len(warnings) != 1 || !errors.Is(warnings[0].err, graphicsstate.ErrStateUnderflow) {
		t.Fatalf("expected one underflow warning, got %v", warnings)
	}
	if len(runs) != 1 || runs[0].Start.X != 10 {
		t.Fatalf("expected one run at x=10, got %+v", runs)
	}
}

// TestInterpreterBadOperands tests that operators with the wrong operands
// are skipped
func TestInterpreterBadOperands(t *testing.T) {
	content := "BT /F1 10 Tf 5 Td (x) Td (A) Tj ET"
	runs, warnings, stats := interpret(t, content, courier)
	if stats.Skipped != 2 {
		t.Errorf("expected 2 skipped operators, got %d", stats.Skipped)
	}
	for _, w := range warnings {
		if !errors.Is(w.err, ErrOperands) {
			t.Errorf("unexpected warning %v", w)
		}
	}
	if len(runs) != 1 || runs[0].Start != (model.Point{}) {
		t.Errorf("expected one run at the origin, got %+v", runs)
	}
}

// TestInterpreterSkipsNonText tests that painting, images and empty
// strings produce no runs
func TestInterpreterSkipsNonText(t *testing.T) {
	content := "0 0 100 100 re f /Im1 Do BI /W 1 /H 1 ID \x00 EI BT /F1 10 Tf () Tj [-200] TJ (A) Tj ET"
	runs, warnings, _ := interpret(t, content, courier)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(runs) != 1 || runs[0].Text != "A" {
		t.Fatalf("expected only run A, got %+v", runs)
	}
	// the empty TJ still moved the pen
	if math.Abs(runs[0].Start.X-2) > 1e-9 {
		t.Errorf("expected A at x=2, got %v", runs[0].Start.X)
	}
	if runs[0].Order != 0 {
		t.Errorf("expected order 0, got %d", runs[0].Order)
	}
}

// TestInterpreterConsumerOrder tests that every consumer sees each run
// before the next run is produced
func TestInterpreterConsumerOrder(t *testing.T) {
	var log []string
	record := func(tag string) RunConsumer {
		return RunConsumerFunc(func(run *model.TextRun) {
			log = append(log, tag+":"+run.Text)
		})
	}
	in := NewInterpreter(nil, record("a"))
	in.AddConsumer(record("b"))
	err := in.Run(3, contentstream.NewParser([]byte("BT /F1 10 Tf (x) Tj (y) Tj ET")), courier)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []string{"a:x", "b:x", "a:y", "b:y"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("consumer order mismatch (-want +got):\n%s", diff)
	}
}

// TestInterpreterDeterminism tests that a second run over the same page
// gives identical results
func TestInterpreterDeterminism(t *testing.T) {
	content := "q 0.5 0.2 -0.2 0.5 30 40 cm BT /F1 12 Tf 2 Tc [(Hello) 120 ( world)] TJ ET Q"
	var c collector
	in := NewInterpreter(nil, &c)
	for i := 0; i < 2; i++ {
		if err := in.Run(1, contentstream.NewParser([]byte(content)), courier); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
	}
	if len(c.runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(c.runs))
	}
	if diff := cmp.Diff(c.runs[0], c.runs[1]); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

type failingSource struct{ err error }

func (f failingSource) Next() (contentstream.Operation, error) {
	return contentstream.Operation{}, f.err
}

// TestInterpreterSourceError tests that a broken source ends the page
func TestInterpreterSourceError(t *testing.T) {
	in := NewInterpreter(nil)
	boom := errors.New("boom")
	err := in.Run(1, failingSource{boom}, courier)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}

	err = in.Run(1, failingSource{io.EOF}, courier)
	if err != nil {
		t.Fatalf("expected nil at EOF, got %v", err)
	}
}
