// Package pdftest assembles small PDF files for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Page describes one page of a test document. Every page has a Helvetica
// font resource named F1.
type Page struct {
	Content  string
	More     []string // further content streams; /Contents becomes an array
	Compress bool     // FlateDecode the content streams
}

// Build returns a complete PDF with a valid cross-reference table.
func Build(pages ...Page) []byte {
	b := &builder{}
	b.buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 page tree, 3 font, then a page object and its streams
	// per page
	next := 4
	var kids []int
	type pending struct {
		page    Page
		obj     int
		streams []int
	}
	var plan []pending
	for _, p := range pages {
		pp := pending{page: p, obj: next}
		next++
		for range 1 + len(p.More) {
			pp.streams = append(pp.streams, next)
			next++
		}
		kids = append(kids, pp.obj)
		plan = append(plan, pp)
	}

	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", refs(kids), len(kids)))
	b.object(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for _, pp := range plan {
		contents := refs(pp.streams)
		if len(pp.streams) > 1 {
			contents = "[" + contents + "]"
		}
		b.object(pp.obj, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %s >>", contents))

		parts := append([]string{pp.page.Content}, pp.page.More...)
		for i, obj := range pp.streams {
			b.stream(obj, []byte(parts[i]), pp.page.Compress)
		}
	}

	return b.finish(next)
}

type builder struct {
	buf     bytes.Buffer
	offsets map[int]int
}

func (b *builder) begin(num int) {
	if b.offsets == nil {
		b.offsets = make(map[int]int)
	}
	b.offsets[num] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n", num)
}

func (b *builder) object(num int, body string) {
	b.begin(num)
	b.buf.WriteString(body)
	b.buf.WriteString("\nendobj\n")
}

func (b *builder) stream(num int, data []byte, compress bool) {
	filter := ""
	if compress {
		var z bytes.Buffer
		w := zlib.NewWriter(&z)
		w.Write(data)
		w.Close()
		data = z.Bytes()
		filter = " /Filter /FlateDecode"
	}
	b.begin(num)
	fmt.Fprintf(&b.buf, "<< /Length %d%s >>\nstream\n", len(data), filter)
	b.buf.Write(data)
	b.buf.WriteString("\nendstream\nendobj\n")
}

func (b *builder) finish(size int) []byte {
	xref := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", size)
	b.buf.WriteString("0000000000 65535 f \n")
	for num := 1; num < size; num++ {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", b.offsets[num])
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xref)
	return b.buf.Bytes()
}

func refs(nums []int) string {
	var sb strings.Builder
	for i, n := range nums {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d 0 R", n)
	}
	return sb.String()
}
