package textscan

import (
	"io"
	"log/slog"

	"github.com/tsawler/textscan/model"
)

// Options holds the scanner configuration.
type Options struct {
	keyword       string
	caseSensitive bool

	hitPoint *model.Point
	onHit    func(model.Selection)

	rawText bool
	logger  *slog.Logger
}

// Option configures a Scanner.
type Option func(*Options)

// defaultOptions returns the default configuration: no keyword, no hit
// point, no raw text and a logger that discards everything.
func defaultOptions() Options {
	return Options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithKeyword sets the keyword to search for.
func WithKeyword(keyword string, caseSensitive bool) Option {
	return func(o *Options) {
		o.keyword = keyword
		o.caseSensitive = caseSensitive
	}
}

// WithHitPoint arms the hit tester with a page-space point.
func WithHitPoint(p model.Point) Option {
	return func(o *Options) {
		o.hitPoint = &p
	}
}

// WithHitCallback sets the function called when the hit point is found.
func WithHitCallback(fn func(model.Selection)) Option {
	return func(o *Options) {
		o.onHit = fn
	}
}

// WithRawText enables capture of the scanned pages' text.
func WithRawText() Option {
	return func(o *Options) {
		o.rawText = true
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
