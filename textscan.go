// Package textscan finds text in PDF pages: keyword occurrences and the
// text under a point, reported as page-space selections.
//
// Basic usage:
//
//	s, err := textscan.Open("document.pdf", textscan.WithKeyword("invoice", false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.ScanAll(); err != nil {
//	    log.Fatal(err)
//	}
//	for _, sel := range s.Selections() {
//	    fmt.Println(sel.Page, sel.Text, sel.Bounds())
//	}
//
// A hit query reports the run covering a point:
//
//	s, err := textscan.Open("document.pdf",
//	    textscan.WithHitPoint(model.Point{X: 72, Y: 700}),
//	    textscan.WithHitCallback(func(sel model.Selection) {
//	        fmt.Println("hit:", sel.Text)
//	    }))
//
// Keyword matching and hit testing share one pass over each page's content
// stream. Malformed content never aborts a page; see [Scanner.Warnings].
// Documents other than files can be scanned through [New] by implementing
// [Document].
package textscan

import (
	"fmt"

	"github.com/tsawler/textscan/contentstream"
	"github.com/tsawler/textscan/font"
	"github.com/tsawler/textscan/reader"
)

// Document is a source of pages.
type Document interface {
	PageCount() int
	Page(number int) (Page, error) // 1-based
}

// Page provides one page's content stream and font resources.
type Page interface {
	Number() int
	Operations() (contentstream.Source, error)
	font.Resolver
}

// fileDocument serves pages from a PDF file.
type fileDocument struct {
	r *reader.Reader
}

func (d fileDocument) PageCount() int {
	return d.r.PageCount()
}

func (d fileDocument) Page(number int) (Page, error) {
	p, err := d.r.Page(number)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open opens a PDF file and returns a Scanner that owns it. Close the
// scanner to release the file.
func Open(path string, opts ...Option) (*Scanner, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocumentUnavailable, err)
	}
	s, err := New(fileDocument{r}, opts...)
	if err != nil {
		r.Close()
		return nil, err
	}
	s.closer = r
	return s, nil
}
