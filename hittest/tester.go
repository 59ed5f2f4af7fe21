package hittest

import (
	"github.com/tsawler/textscan/model"
)

// HitFunc receives the hit.
type HitFunc func(sel model.Selection)

// Tester tests runs against a query point. The zero value is unarmed.
type Tester struct {
	point  model.Point
	armed  bool
	fired  bool
	onHit  HitFunc
	result *model.Selection
}

// NewTester creates an unarmed tester that calls onHit for the hit.
func NewTester(onHit HitFunc) *Tester {
	return &Tester{onHit: onHit}
}

// OnHit replaces the callback.
func (t *Tester) OnHit(fn HitFunc) {
	t.onHit = fn
}

// Arm sets the query point and clears any previous hit.
func (t *Tester) Arm(p model.Point) {
	t.point = p
	t.armed = true
	t.Reset()
}

// Disarm stops testing.
func (t *Tester) Disarm() {
	t.armed = false
	t.Reset()
}

// Reset makes the tester ready to fire again.
func (t *Tester) Reset() {
	t.fired = false
	t.result = nil
}

// Result returns the hit of the current scan, if any.
func (t *Tester) Result() (model.Selection, bool) {
	if t.result == nil {
		return model.Selection{}, false
	}
	return *t.result, true
}

// ConsumeRun tests one run. Points on the edge of the quad count as inside.
func (t *Tester) ConsumeRun(run *model.TextRun) {
	if !t.armed || t.fired {
		return
	}
	if !run.Quad.Contains(t.point) {
		return
	}
	t.fired = true
	sel := model.NewSelection(model.HitTest, run.Page, run.Text, []model.Quad{run.Quad})
	t.result = &sel
	if t.onHit != nil {
		t.onHit(sel)
	}
}
