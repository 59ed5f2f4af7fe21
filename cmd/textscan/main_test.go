package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/tsawler/textscan/internal/pdftest"
	"github.com/tsawler/textscan/model"
)

// TestParseFlags tests flag parsing and validation
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "keyword",
			args: []string{"-keyword", "total", "doc.pdf"},
			want: options{pdfPath: "doc.pdf", keyword: "total", format: "text", workers: 1},
		},
		{
			name: "hit point",
			args: []string{"-hit", "72.5, 700", "-page", "2", "-format", "json", "doc.pdf"},
			want: options{pdfPath: "doc.pdf", hit: &model.Point{X: 72.5, Y: 700}, page: 2, format: "json", workers: 1},
		},
		{
			name: "raw only",
			args: []string{"-raw", "-workers", "4", "-case-sensitive", "-v", "doc.pdf"},
			want: options{pdfPath: "doc.pdf", raw: true, caseSensitive: true, verbose: true, format: "text", workers: 4},
		},
		{name: "missing path", args: []string{"-keyword", "x"}, wantErr: true},
		{name: "nothing to do", args: []string{"doc.pdf"}, wantErr: true},
		{name: "bad format", args: []string{"-raw", "-format", "xml", "doc.pdf"}, wantErr: true},
		{name: "bad point", args: []string{"-hit", "12", "doc.pdf"}, wantErr: true},
		{name: "bad page", args: []string{"-raw", "-page", "-1", "doc.pdf"}, wantErr: true},
		{name: "unknown flag", args: []string{"-nope", "doc.pdf"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFlags failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(options{})); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pdf")
	data := pdftest.Build(
		pdftest.Page{Content: "BT /F1 12 Tf 72 720 Td (Total due) Tj ET"},
		pdftest.Page{Content: "BT /F1 12 Tf 72 720 Td (Grand total) Tj ET"},
	)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// TestRunJSON tests the JSON report, sequential and parallel
func TestRunJSON(t *testing.T) {
	path := writePDF(t)

	for _, workers := range []int{1, 2} {
		var out bytes.Buffer
		opts := options{pdfPath: path, keyword: "total", format: "json", workers: workers}
		if err := run(context.Background(), opts, &out, io.Discard); err != nil {
			t.Fatalf("workers=%d: run failed: %v", workers, err)
		}

		var rep report
		if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
			t.Fatalf("workers=%d: invalid JSON: %v", workers, err)
		}
		if rep.Pages != 2 {
			t.Errorf("workers=%d: expected 2 pages, got %d", workers, rep.Pages)
		}
		var got []string
		for _, s := range rep.Selections {
			got = append(got, s.Kind+":"+s.Text)
			if s.Bounds[2] <= s.Bounds[0] || len(s.Quads) != 5 {
				t.Errorf("workers=%d: unexpected geometry %+v", workers, s)
			}
		}
		if diff := cmp.Diff([]string{"keyword:Total", "keyword:total"}, got); diff != "" {
			t.Errorf("workers=%d: selections mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

// TestRunText tests the text report with a single page and raw text
func TestRunText(t *testing.T) {
	path := writePDF(t)
	var out bytes.Buffer
	opts := options{pdfPath: path, hit: &model.Point{X: 75, Y: 723}, page: 2, raw: true, format: "text", workers: 1}
	if err := run(context.Background(), opts, &out, io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "2\thit\t") || !strings.HasSuffix(lines[0], `"Grand total"`) {
		t.Errorf("unexpected hit line %q", lines[0])
	}
	if lines[2] != "Grand total" {
		t.Errorf("expected raw text, got %q", lines[2])
	}
}

// TestRunHTML tests that the HTML report parses and lists the selections
func TestRunHTML(t *testing.T) {
	path := writePDF(t)
	var out bytes.Buffer
	opts := options{pdfPath: path, keyword: "due", format: "html", workers: 1}
	if err := run(context.Background(), opts, &out, io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	doc, err := html.Parse(&out)
	if err != nil {
		t.Fatalf("invalid HTML: %v", err)
	}
	var rows []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			for _, a := range n.Attr {
				if a.Key == "class" {
					rows = append(rows, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if diff := cmp.Diff([]string{"keyword"}, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

// TestRunMissingFile tests the error for a file that does not exist
func TestRunMissingFile(t *testing.T) {
	opts := options{pdfPath: filepath.Join(t.TempDir(), "missing.pdf"), raw: true, format: "text", workers: 1}
	if err := run(context.Background(), opts, io.Discard, io.Discard); err == nil {
		t.Error("expected an error")
	}
}
