package textscan

import (
	"errors"

	"github.com/tsawler/textscan/font"
	"github.com/tsawler/textscan/graphicsstate"
)

var (
	// ErrDocumentUnavailable is returned when a document cannot be opened
	// or has no pages.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrInvalidPage is returned for page numbers outside the document.
	ErrInvalidPage = errors.New("invalid page")

	// ErrMissingFont is reported in warnings for font resources a page
	// refers to but does not define.
	ErrMissingFont = font.ErrMissingFont

	// ErrStateUnderflow is reported in warnings for a Q without a matching q.
	ErrStateUnderflow = graphicsstate.ErrStateUnderflow
)
