package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// ErrNoPage is returned for page numbers outside the document.
var ErrNoPage = errors.New("no such page")

// Reader gives page access to a PDF file.
type Reader struct {
	file  *os.File // nil when the reader does not own its input
	pdf   *pdf.Reader
	pages int
}

// NewReader reads the cross-reference data of a PDF held in r. The caller
// keeps ownership of r.
func NewReader(r io.ReaderAt, size int64) (reader *Reader, err error) {
	defer recoverError(&err, "failed to read PDF")

	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return &Reader{pdf: pr, pages: pr.NumPage()}, nil
}

// Open opens a PDF file and returns a Reader that owns it.
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	reader, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file
	return reader, nil
}

// Close closes the PDF file if the reader opened it.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages.
func (r *Reader) PageCount() int {
	return r.pages
}

// Page returns a page by its 1-based number.
func (r *Reader) Page(number int) (page *Page, err error) {
	if number < 1 || number > r.pages {
		return nil, fmt.Errorf("page %d of %d: %w", number, r.pages, ErrNoPage)
	}
	defer recoverError(&err, fmt.Sprintf("page %d", number))

	p := r.pdf.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w", number, ErrNoPage)
	}
	return &Page{number: number, page: p}, nil
}

// recoverError turns a panic raised by the PDF parser on malformed input
// into an error.
func recoverError(err *error, context string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: malformed PDF: %v", context, r)
	}
}
