package textscan

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/textscan/hittest"
	"github.com/tsawler/textscan/model"
	"github.com/tsawler/textscan/search"
	"github.com/tsawler/textscan/text"
)

// Scanner runs pages through the content stream interpreter and collects
// keyword matches and hit-test results. Selections accumulate across scans
// until Reset. A Scanner is not safe for concurrent use.
type Scanner struct {
	doc    Document
	closer io.Closer
	opts   Options
	logger *slog.Logger

	interp   *text.Interpreter
	detector *search.Detector
	tester   *hittest.Tester
	raw      *rawText

	selections []model.Selection
	warnings   []Warning
	page       int
}

// New creates a Scanner over doc. It fails with ErrDocumentUnavailable when
// doc is nil or has no pages.
func New(doc Document, opts ...Option) (*Scanner, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrDocumentUnavailable)
	}
	if doc.PageCount() < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrDocumentUnavailable)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Scanner{
		doc:    doc,
		opts:   o,
		logger: o.logger,
	}
	s.detector = search.NewDetector(o.keyword, o.caseSensitive, s.add)
	s.tester = hittest.NewTester(s.hit)
	if o.hitPoint != nil {
		s.tester.Arm(*o.hitPoint)
	}
	s.interp = text.NewInterpreter(o.logger, s.detector, s.tester)
	if o.rawText {
		s.raw = &rawText{}
		s.interp.AddConsumer(s.raw)
	}
	s.interp.OnWarning(s.warn)
	return s, nil
}

// PageCount returns the number of pages in the document.
func (s *Scanner) PageCount() int {
	return s.doc.PageCount()
}

// SetKeyword sets the keyword for subsequent scans. An empty keyword turns
// keyword search off.
func (s *Scanner) SetKeyword(keyword string, caseSensitive bool) {
	s.detector.SetKeyword(keyword, caseSensitive)
}

// SetHitTestPoint arms the hit tester for subsequent scans.
func (s *Scanner) SetHitTestPoint(p model.Point) {
	s.tester.Arm(p)
}

// ClearHitTestPoint disarms the hit tester.
func (s *Scanner) ClearHitTestPoint() {
	s.tester.Disarm()
}

// OnHit sets the function called with the hit of each scan.
func (s *Scanner) OnHit(fn func(model.Selection)) {
	s.opts.onHit = fn
}

// ScanDocument scans a page by its 1-based number.
func (s *Scanner) ScanDocument(number int) error {
	if number < 1 || number > s.doc.PageCount() {
		return fmt.Errorf("page %d of %d: %w", number, s.doc.PageCount(), ErrInvalidPage)
	}
	p, err := s.doc.Page(number)
	if err != nil {
		return fmt.Errorf("page %d: %w", number, err)
	}
	return s.ScanPage(p)
}

// ScanAll scans every page in order and stops at the first page that
// cannot be read.
func (s *Scanner) ScanAll() error {
	for n := 1; n <= s.doc.PageCount(); n++ {
		if err := s.ScanDocument(n); err != nil {
			return err
		}
	}
	return nil
}

// ScanPage scans one page. Matches are appended to the selections; the
// hit, if any, is appended and passed to the hit callback.
func (s *Scanner) ScanPage(p Page) error {
	if p == nil {
		return fmt.Errorf("nil page: %w", ErrInvalidPage)
	}
	number := p.Number()
	if number < 1 || number > s.doc.PageCount() {
		return fmt.Errorf("page %d of %d: %w", number, s.doc.PageCount(), ErrInvalidPage)
	}
	src, err := p.Operations()
	if err != nil {
		return fmt.Errorf("page %d: %w", number, err)
	}

	s.page = number
	s.detector.Reset()
	s.tester.Reset()
	if s.raw != nil {
		s.raw.startPage()
	}

	before := len(s.selections)
	err = s.interp.Run(number, src, p)
	s.detector.Flush()
	if err != nil {
		return err
	}

	stats := s.interp.Stats()
	s.logger.Info("page scanned",
		"page", number,
		"runs", stats.Runs,
		"selections", len(s.selections)-before)
	return nil
}

// Selections returns the selections found so far in discovery order.
func (s *Scanner) Selections() []model.Selection {
	return append([]model.Selection(nil), s.selections...)
}

// Warnings returns the anomalies absorbed so far.
func (s *Scanner) Warnings() []Warning {
	return append([]Warning(nil), s.warnings...)
}

// RawText returns the text of the scanned pages when raw capture is
// enabled, and "" otherwise.
func (s *Scanner) RawText() string {
	if s.raw == nil {
		return ""
	}
	return s.raw.String()
}

// Reset discards selections, warnings and captured text.
func (s *Scanner) Reset() {
	s.selections = nil
	s.warnings = nil
	if s.raw != nil {
		s.raw.reset()
	}
}

// Close releases the document if the scanner opened it. It is safe to call
// Close multiple times.
func (s *Scanner) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

func (s *Scanner) add(sel model.Selection) {
	s.selections = append(s.selections, sel)
}

func (s *Scanner) hit(sel model.Selection) {
	s.add(sel)
	s.logger.Debug("hit", "page", sel.Page, "text", sel.Text)
	if s.opts.onHit != nil {
		s.opts.onHit(sel)
	}
}

func (s *Scanner) warn(operator string, err error) {
	s.warnings = append(s.warnings, Warning{Page: s.page, Operator: operator, Err: err})
}
