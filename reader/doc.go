// Package reader opens PDF files and exposes the two things text scanning
// needs from a page: its decoded content stream and its font resources.
//
// File structure, cross-reference tables, object resolution and stream
// filters are handled by github.com/ledongthuc/pdf. This package adapts its
// values to the core object model:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	page, err := r.Page(1) // 1-based
//	src, err := page.Operations()
//	dict, err := page.ResolveFont("F1")
//
// The underlying parser panics on some malformed input. Every entry point
// here recovers and returns an error instead.
package reader
