package reader

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/textscan/contentstream"
	"github.com/tsawler/textscan/core"
	"github.com/tsawler/textscan/font"
)

// Page is one page of a document. It provides the decoded content stream
// and the font resources the content refers to.
type Page struct {
	number int
	page   pdf.Page
}

// Number returns the 1-based page number.
func (p *Page) Number() int {
	return p.number
}

// Content returns the page's decoded content. When /Contents is an array
// the streams are joined with a newline so tokens never run together.
func (p *Page) Content() (data []byte, err error) {
	defer recoverError(&err, fmt.Sprintf("page %d contents", p.number))

	contents := p.page.V.Key("Contents")
	var buf bytes.Buffer
	switch contents.Kind() {
	case pdf.Stream:
		if err := readStream(&buf, contents); err != nil {
			return nil, fmt.Errorf("page %d contents: %w", p.number, err)
		}
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			if i > 0 {
				buf.WriteByte('\n')
			}
			if err := readStream(&buf, contents.Index(i)); err != nil {
				return nil, fmt.Errorf("page %d contents[%d]: %w", p.number, i, err)
			}
		}
	case pdf.Null:
		// a page without contents is blank
	default:
		return nil, fmt.Errorf("page %d: unexpected /Contents of kind %d", p.number, contents.Kind())
	}
	return buf.Bytes(), nil
}

// Operations returns a streaming tokenizer over the page content.
func (p *Page) Operations() (contentstream.Source, error) {
	data, err := p.Content()
	if err != nil {
		return nil, err
	}
	return contentstream.NewParser(data), nil
}

// ResolveFont returns the font dictionary named in the page's /Font
// resources, inherited resources included.
func (p *Page) ResolveFont(name string) (dict core.Dict, err error) {
	defer recoverError(&err, fmt.Sprintf("font %q", name))

	fv := p.page.Resources().Key("Font").Key(name)
	if fv.Kind() != pdf.Dict {
		return nil, fmt.Errorf("page %d resource %q: %w", p.number, name, font.ErrMissingFont)
	}
	obj, err := convert(fv, 0)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	return obj.(core.Dict), nil
}

// FontNames lists the names in the page's /Font resources.
func (p *Page) FontNames() []string {
	return p.page.Resources().Key("Font").Keys()
}

// readStream appends the decoded data of a stream value.
func readStream(w io.Writer, v pdf.Value) error {
	if v.Kind() != pdf.Stream {
		return fmt.Errorf("expected stream, got kind %d", v.Kind())
	}
	if err := checkFilters(v.Key("Filter")); err != nil {
		return err
	}
	rc := v.Reader()
	defer rc.Close()
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to decode stream: %w", err)
	}
	return nil
}
