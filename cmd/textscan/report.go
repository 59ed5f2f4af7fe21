package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/textscan"
	"github.com/tsawler/textscan/model"
)

type report struct {
	File       string          `json:"file"`
	Pages      int             `json:"pages,omitempty"`
	Selections []selectionJSON `json:"selections"`
	Warnings   []string        `json:"warnings,omitempty"`
	RawText    string          `json:"rawText,omitempty"`
}

type selectionJSON struct {
	Kind   string       `json:"kind"`
	Page   int          `json:"page"`
	Text   string       `json:"text"`
	Bounds [4]float64   `json:"bounds"` // x0 y0 x1 y1
	Quads  [][8]float64 `json:"quads"`
}

func (r *report) fill(sels []model.Selection, warnings []textscan.Warning, raw string) {
	r.Selections = make([]selectionJSON, 0, len(sels))
	for _, sel := range sels {
		b := sel.Bounds()
		sj := selectionJSON{
			Kind:   sel.Kind.String(),
			Page:   sel.Page,
			Text:   sel.Text,
			Bounds: [4]float64{b.Left(), b.Bottom(), b.Right(), b.Top()},
		}
		for _, q := range sel.Quads {
			sj.Quads = append(sj.Quads, [8]float64{
				q[0].X, q[0].Y, q[1].X, q[1].Y, q[2].X, q[2].Y, q[3].X, q[3].Y,
			})
		}
		r.Selections = append(r.Selections, sj)
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
	r.RawText = raw
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "html":
		return html.Render(w, r.document())
	default:
		return writeText(w, r)
	}
}

func writeText(w io.Writer, r report) error {
	for _, s := range r.Selections {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%q\n", s.Page, s.Kind, formatBounds(s.Bounds), s.Text)
		if err != nil {
			return err
		}
	}
	if r.RawText != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", r.RawText); err != nil {
			return err
		}
	}
	return nil
}

func formatBounds(b [4]float64) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f,%.2f", b[0], b[1], b[2], b[3])
}

// document builds the HTML report.
func (r report) document() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element(atom.Title), r.File))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), r.File))

	table := element(atom.Table)
	header := element(atom.Tr)
	for _, h := range []string{"Page", "Kind", "Bounds", "Text"} {
		header.AppendChild(withText(element(atom.Th), h))
	}
	table.AppendChild(header)
	for _, s := range r.Selections {
		row := element(atom.Tr, html.Attribute{Key: "class", Val: s.Kind})
		row.AppendChild(withText(element(atom.Td), strconv.Itoa(s.Page)))
		row.AppendChild(withText(element(atom.Td), s.Kind))
		row.AppendChild(withText(element(atom.Td), formatBounds(s.Bounds)))
		row.AppendChild(withText(element(atom.Td), s.Text))
		table.AppendChild(row)
	}
	body.AppendChild(table)

	if len(r.Warnings) > 0 {
		list := element(atom.Ul, html.Attribute{Key: "class", Val: "warnings"})
		for _, w := range r.Warnings {
			list.AppendChild(withText(element(atom.Li), w))
		}
		body.AppendChild(list)
	}
	if r.RawText != "" {
		body.AppendChild(withText(element(atom.Pre), r.RawText))
	}

	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
