package text

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/tsawler/textscan/contentstream"
	"github.com/tsawler/textscan/core"
	"github.com/tsawler/textscan/font"
	"github.com/tsawler/textscan/graphicsstate"
	"github.com/tsawler/textscan/model"
)

// RunConsumer receives every text run in content stream order. The run is
// only valid for the duration of the call; consumers that keep it must
// copy what they need.
type RunConsumer interface {
	ConsumeRun(run *model.TextRun)
}

// RunConsumerFunc adapts a function to RunConsumer.
type RunConsumerFunc func(run *model.TextRun)

func (f RunConsumerFunc) ConsumeRun(run *model.TextRun) {
	f(run)
}

// WarningFunc is called for anomalies that interpretation recovers from:
// unresolved fonts, unbalanced Q, malformed tokens and operators with the
// wrong number of operands.
type WarningFunc func(operator string, err error)

// ErrOperands is reported for operators whose operands have the wrong
// count or type. The operator is skipped.
var ErrOperands = errors.New("bad operands")

var errNoFont = errors.New("text shown before any Tf")

// Stats counts what the interpreter did on the last page.
type Stats struct {
	Operators int
	Runs      int
	Glyphs    int
	Warnings  int
	Skipped   int
}

// Interpreter runs the operators of one page at a time and produces a
// TextRun for every text-showing operator.
type Interpreter struct {
	logger    *slog.Logger
	consumers []RunConsumer
	onWarning WarningFunc

	fonts  *font.Table
	stack  *graphicsstate.Stack
	text   graphicsstate.TextObject
	warned map[string]bool

	page  int
	order int
	stats Stats
}

// NewInterpreter creates an interpreter that sends runs to consumers. A nil
// logger discards log output.
func NewInterpreter(logger *slog.Logger, consumers ...RunConsumer) *Interpreter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		logger:    logger,
		consumers: consumers,
		fonts:     font.NewTable(nil),
		stack:     graphicsstate.NewStack(),
		warned:    make(map[string]bool),
	}
}

// AddConsumer registers another consumer for subsequent runs.
func (in *Interpreter) AddConsumer(c RunConsumer) {
	in.consumers = append(in.consumers, c)
}

// OnWarning sets the handler for recovered anomalies.
func (in *Interpreter) OnWarning(fn WarningFunc) {
	in.onWarning = fn
}

// Stats returns the counters of the most recent Run.
func (in *Interpreter) Stats() Stats {
	return in.stats
}

// Run interprets one page. Graphics state, text matrices and the font
// cache start fresh. Anomalies inside the page are reported through the
// warning handler and never stop the scan; only a failing source ends it
// early with an error.
func (in *Interpreter) Run(page int, src contentstream.Source, fonts font.Resolver) error {
	in.page = page
	in.order = 0
	in.stats = Stats{}
	in.stack.Reset()
	in.text.Reset()
	in.fonts.Reset(fonts)
	clear(in.warned)

	for {
		op, err := src.Next()
		if err == io.EOF {
			break
		}
		var syn *contentstream.SyntaxError
		if errors.As(err, &syn) {
			in.warn("", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}
		in.stats.Operators++
		in.process(op)
	}

	in.logger.Debug("page interpreted",
		"page", page,
		"operators", in.stats.Operators,
		"runs", in.stats.Runs,
		"glyphs", in.stats.Glyphs,
		"warnings", in.stats.Warnings)
	return nil
}

func (in *Interpreter) warn(operator string, err error) {
	in.stats.Warnings++
	in.logger.Warn("content stream anomaly", "page", in.page, "operator", operator, "error", err)
	if in.onWarning != nil {
		in.onWarning(operator, err)
	}
}

// skip records an operator that cannot be applied.
func (in *Interpreter) skip(op contentstream.Operation) {
	in.stats.Skipped++
	in.logger.Debug("skipping operator", "page", in.page, "operator", op.Operator, "operands", len(op.Operands))
	if in.onWarning != nil {
		in.onWarning(op.Operator, fmt.Errorf("%s with %d operands: %w", op.Operator, len(op.Operands), ErrOperands))
	}
}

// process applies a single content stream operation
func (in *Interpreter) process(op contentstream.Operation) {
	if _, known := contentstream.Arity(op.Operator); !known {
		// unknown operators are allowed between BX and EX, and harmless elsewhere
		return
	}
	if !op.Valid() {
		in.skip(op)
		return
	}

	// operands at the tail are the ones that count when extras are present
	args := op.Operands
	if n, _ := contentstream.Arity(op.Operator); n > 0 && len(args) > n {
		args = args[len(args)-n:]
	}
	gs := in.stack.Top()

	switch op.Operator {
	// Graphics state
	case "q":
		in.stack.Push()
	case "Q":
		if err := in.stack.Pop(); err != nil {
			in.warn(op.Operator, err)
		}
	case "cm":
		m, ok := toMatrix(args)
		if !ok {
			in.skip(op)
			return
		}
		in.stack.Compose(m)

	// Text objects
	case "BT":
		in.text.Begin()
	case "ET":
		in.text.End()

	// Text state
	case "Tf":
		name, ok1 := args[0].(core.Name)
		size, ok2 := core.Number(args[1])
		if !ok1 || !ok2 {
			in.skip(op)
			return
		}
		gs.SetFont(string(name), size)
		in.metrics(string(name), op.Operator)
	case "Tc", "Tw", "Tz", "TL", "Ts", "Tr":
		v, ok := core.Number(args[0])
		if !ok {
			in.skip(op)
			return
		}
		switch op.Operator {
		case "Tc":
			gs.SetCharSpacing(v)
		case "Tw":
			gs.SetWordSpacing(v)
		case "Tz":
			gs.SetHorizontalScaling(v)
		case "TL":
			gs.SetLeading(v)
		case "Ts":
			gs.SetTextRise(v)
		case "Tr":
			gs.SetRenderingMode(int(v))
		}

	// Text positioning
	case "Tm":
		m, ok := toMatrix(args)
		if !ok {
			in.skip(op)
			return
		}
		in.text.SetMatrix(m)
	case "Td", "TD":
		tx, ok1 := core.Number(args[0])
		ty, ok2 := core.Number(args[1])
		if !ok1 || !ok2 {
			in.skip(op)
			return
		}
		if op.Operator == "TD" {
			in.text.TranslateSetLeading(gs, tx, ty)
		} else {
			in.text.Translate(tx, ty)
		}
	case "T*":
		in.text.NextLine(*gs)

	// Text showing
	case "Tj":
		s, ok := args[0].(core.String)
		if !ok {
			in.skip(op)
			return
		}
		in.show(op.Operator, core.Array{s})
	case "TJ":
		arr, ok := args[0].(core.Array)
		if !ok {
			in.skip(op)
			return
		}
		in.show(op.Operator, arr)
	case "'":
		s, ok := args[0].(core.String)
		if !ok {
			in.skip(op)
			return
		}
		in.text.NextLine(*gs)
		in.show(op.Operator, core.Array{s})
	case "\"":
		aw, ok1 := core.Number(args[0])
		ac, ok2 := core.Number(args[1])
		s, ok3 := args[2].(core.String)
		if !ok1 || !ok2 || !ok3 {
			in.skip(op)
			return
		}
		gs.SetWordSpacing(aw)
		gs.SetCharSpacing(ac)
		in.text.NextLine(*gs)
		in.show(op.Operator, core.Array{s})
	}
	// painting, colour, images, XObjects and marked content do not move text
}

// metrics resolves a font, warning once per name and page when it falls
// back.
func (in *Interpreter) metrics(name, operator string) *font.Metrics {
	if name == "" {
		if !in.warned[""] {
			in.warned[""] = true
			in.warn(operator, errNoFont)
		}
		return font.Fallback()
	}
	m, err := in.fonts.Resolve(name)
	if err != nil && !in.warned[name] {
		in.warned[name] = true
		in.warn(operator, err)
	}
	return m
}

// show lays out the strings and adjustments of one text-showing operator
// as a single run, then advances the text matrix past it.
func (in *Interpreter) show(operator string, items core.Array) {
	gs := in.stack.Current()
	ts := gs.Text
	m := in.metrics(ts.FontName, operator)

	fs := ts.FontSize
	th := ts.Scale()
	bottom := ts.Rise + m.Descent/1000*fs
	top := ts.Rise + m.Ascent/1000*fs

	// Text space at the start of the run; every glyph sits at an offset x
	// along its baseline.
	tm := in.text.Matrix
	base := tm.Multiply(gs.CTM)

	run := &model.TextRun{
		Page:     in.page,
		Order:    in.order,
		FontName: ts.FontName,
		FontSize: fs,
	}
	var sb strings.Builder
	x := 0.0
	minX, maxX := math.Inf(1), math.Inf(-1)

	for _, item := range items {
		if n, ok := core.Number(item); ok {
			x -= n / 1000 * fs * th
			continue
		}
		s, ok := item.(core.String)
		if !ok {
			continue
		}
		for _, code := range m.Codes([]byte(s)) {
			w0 := m.Width(code.Value)
			glyphW := w0 / 1000 * fs * th

			trm := graphicsstate.RenderingMatrix(gs, model.Translate(x, 0).Multiply(tm))
			g := model.Glyph{
				Text: m.Decode(code.Value),
				Code: code.Value,
				Quad: trm.TransformRect(0, m.Descent/1000, w0/1000, m.Ascent/1000),
			}
			run.Glyphs = append(run.Glyphs, g)
			sb.WriteString(g.Text)

			minX = math.Min(minX, math.Min(x, x+glyphW))
			maxX = math.Max(maxX, math.Max(x, x+glyphW))

			tx := w0/1000*fs + ts.CharSpacing
			if code.IsWordSpace() {
				tx += ts.WordSpacing
			}
			x += tx * th
		}
	}

	in.text.Advance(x, 0)
	if len(run.Glyphs) == 0 {
		return
	}

	run.Text = sb.String()
	run.Quad = base.TransformRect(minX, bottom, maxX, top)
	run.Bounds = run.Quad.BBox()
	run.Start = base.Transform(model.Point{X: 0, Y: ts.Rise})
	run.End = base.Transform(model.Point{X: x, Y: ts.Rise})

	in.order++
	in.stats.Runs++
	in.stats.Glyphs += len(run.Glyphs)
	for _, c := range in.consumers {
		c.ConsumeRun(run)
	}
}

// toMatrix converts six numeric operands.
func toMatrix(operands []core.Object) (model.Matrix, bool) {
	var m model.Matrix
	if len(operands) != 6 {
		return m, false
	}
	for i, obj := range operands {
		v, ok := core.Number(obj)
		if !ok {
			return m, false
		}
		m[i] = v
	}
	return m, true
}
