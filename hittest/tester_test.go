package hittest

import (
	"math"
	"testing"

	"github.com/tsawler/textscan/model"
)

func boxRun(page int, text string, x0, y0, x1, y1 float64) *model.TextRun {
	q := model.NewQuadFromBBox(model.NewBBox(x0, y0, x1-x0, y1-y0))
	return &model.TextRun{Text: text, Page: page, Quad: q, Bounds: q.BBox()}
}

// TestTesterContainment tests points inside, outside and on the edge
func TestTesterContainment(t *testing.T) {
	tests := []struct {
		name  string
		point model.Point
		hit   bool
	}{
		{"inside", model.Point{X: 30, Y: 15}, true},
		{"right of run", model.Point{X: 60, Y: 15}, false},
		{"below run", model.Point{X: 30, Y: 5}, false},
		{"left edge", model.Point{X: 10, Y: 15}, true},
		{"corner", model.Point{X: 50, Y: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits []model.Selection
			tester := NewTester(func(sel model.Selection) { hits = append(hits, sel) })
			tester.Arm(tt.point)
			tester.ConsumeRun(boxRun(1, "Hello", 10, 10, 50, 20))

			if got := len(hits) == 1; got != tt.hit {
				t.Fatalf("expected hit=%v, got %d hits", tt.hit, len(hits))
			}
			if tt.hit {
				sel := hits[0]
				if sel.Kind != model.HitTest || sel.Text != "Hello" || sel.Page != 1 || len(sel.Quads) != 1 {
					t.Errorf("unexpected selection %+v", sel)
				}
			}
		})
	}
}

// TestTesterFiresOnce tests that only the first containing run is reported
// until Reset
func TestTesterFiresOnce(t *testing.T) {
	var hits []string
	tester := NewTester(func(sel model.Selection) { hits = append(hits, sel.Text) })
	tester.Arm(model.Point{X: 30, Y: 15})

	tester.ConsumeRun(boxRun(1, "miss", 100, 100, 200, 110))
	tester.ConsumeRun(boxRun(1, "first", 10, 10, 50, 20))
	tester.ConsumeRun(boxRun(1, "second", 0, 0, 100, 100))
	if len(hits) != 1 || hits[0] != "first" {
		t.Fatalf("expected only the first hit, got %v", hits)
	}
	if sel, ok := tester.Result(); !ok || sel.Text != "first" {
		t.Errorf("unexpected result %+v", sel)
	}

	tester.Reset()
	tester.ConsumeRun(boxRun(2, "second", 0, 0, 100, 100))
	if len(hits) != 2 || hits[1] != "second" {
		t.Errorf("expected a second hit after Reset, got %v", hits)
	}
}

// TestTesterUnarmed tests that an unarmed tester never fires
func TestTesterUnarmed(t *testing.T) {
	called := false
	tester := NewTester(func(model.Selection) { called = true })
	tester.ConsumeRun(boxRun(1, "x", 0, 0, 100, 100))

	tester.Arm(model.Point{X: 1, Y: 1})
	tester.Disarm()
	tester.ConsumeRun(boxRun(1, "x", 0, 0, 100, 100))

	if called {
		t.Error("expected no callback while unarmed")
	}
	if _, ok := tester.Result(); ok {
		t.Error("expected no result while unarmed")
	}
}

// TestTesterRotatedRun tests containment against a rotated quad where the
// bounding box would give a false hit
func TestTesterRotatedRun(t *testing.T) {
	m := model.Rotate(math.Pi / 4)
	q := m.TransformRect(0, 0, 100, 10)
	run := &model.TextRun{Text: "slanted", Page: 1, Quad: q, Bounds: q.BBox()}

	tester := NewTester(nil)
	// inside the bounds but off the diagonal strip
	tester.Arm(model.Point{X: 60, Y: 5})
	tester.ConsumeRun(run)
	if _, ok := tester.Result(); ok {
		t.Error("expected a miss off the rotated quad")
	}

	// along the baseline's midpoint, lifted into the glyph box
	tester.Arm(m.Transform(model.Point{X: 50, Y: 5}))
	tester.ConsumeRun(run)
	if _, ok := tester.Result(); !ok {
		t.Error("expected a hit inside the rotated quad")
	}
}
