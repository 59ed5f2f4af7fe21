package graphicsstate

import (
	"errors"

	"github.com/tsawler/textscan/model"
)

// ErrStateUnderflow is returned by Pop when there is no saved state, i.e.
// a Q operator without a matching q.
var ErrStateUnderflow = errors.New("graphics state stack underflow")

// GraphicsState is the part of the PDF graphics state that affects text
// geometry. It is a plain value: copying it copies everything.
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Text state
	Text TextState
}

// TextState represents text-specific state. Unlike the text matrices it is
// saved and restored by q/Q.
type TextState struct {
	// Font resource name and size
	FontName string
	FontSize float64

	// Character and word spacing, in unscaled text space units
	CharSpacing float64
	WordSpacing float64

	// Horizontal scaling (percentage)
	HorizontalScaling float64

	// Leading (line spacing)
	Leading float64

	// Text rendering mode
	RenderingMode int

	// Text rise
	Rise float64
}

// Default returns the state at the start of a page: identity CTM, no font,
// zero spacing and 100% horizontal scaling.
func Default() GraphicsState {
	return GraphicsState{
		CTM: model.Identity(),
		Text: TextState{
			HorizontalScaling: 100,
		},
	}
}

// Scale returns the horizontal scaling as a factor.
func (ts TextState) Scale() float64 {
	return ts.HorizontalScaling / 100
}

// SetFont sets the current font (Tf operator)
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName = name
	gs.Text.FontSize = size
}

// SetCharSpacing sets character spacing (Tc operator)
func (gs *GraphicsState) SetCharSpacing(spacing float64) {
	gs.Text.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator)
func (gs *GraphicsState) SetWordSpacing(spacing float64) {
	gs.Text.WordSpacing = spacing
}

// SetHorizontalScaling sets horizontal scaling (Tz operator)
func (gs *GraphicsState) SetHorizontalScaling(scale float64) {
	gs.Text.HorizontalScaling = scale
}

// SetLeading sets text leading (TL operator)
func (gs *GraphicsState) SetLeading(leading float64) {
	gs.Text.Leading = leading
}

// SetRenderingMode sets text rendering mode (Tr operator)
func (gs *GraphicsState) SetRenderingMode(mode int) {
	gs.Text.RenderingMode = mode
}

// SetTextRise sets text rise (Ts operator)
func (gs *GraphicsState) SetTextRise(rise float64) {
	gs.Text.Rise = rise
}

// Stack holds the current graphics state and the states saved by q.
// The zero value is not ready for use; call NewStack.
type Stack struct {
	current GraphicsState
	saved   []GraphicsState
}

// NewStack returns a stack whose current state is Default().
func NewStack() *Stack {
	return &Stack{current: Default()}
}

// Push saves a copy of the current state (q operator)
func (s *Stack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the most recently saved state (Q operator). With nothing
// saved it returns ErrStateUnderflow and leaves the current state as is.
func (s *Stack) Pop() error {
	n := len(s.saved)
	if n == 0 {
		return ErrStateUnderflow
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return nil
}

// Compose concatenates m into the CTM (cm operator). m applies first:
// CTM' = m × CTM.
func (s *Stack) Compose(m model.Matrix) {
	s.current.CTM = m.Multiply(s.current.CTM)
}

// Current returns a copy of the current state.
func (s *Stack) Current() GraphicsState {
	return s.current
}

// Top returns the current state for modification by the text state
// operators.
func (s *Stack) Top() *GraphicsState {
	return &s.current
}

// Depth returns the number of saved states.
func (s *Stack) Depth() int {
	return len(s.saved)
}

// Reset discards all saved states and returns to Default().
func (s *Stack) Reset() {
	s.current = Default()
	s.saved = s.saved[:0]
}
