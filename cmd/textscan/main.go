// Command textscan searches PDF pages for a keyword and reports the text
// under a point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/textscan"
	"github.com/tsawler/textscan/model"
)

type options struct {
	pdfPath       string
	keyword       string
	caseSensitive bool
	hit           *model.Point
	page          int
	raw           bool
	format        string
	workers       int
	verbose       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "textscan: %v\n", err)
		}
		os.Exit(2)
	}
	if err := run(context.Background(), opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "textscan: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("textscan", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: textscan [flags] <pdf>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.keyword, "keyword", "", "Keyword to search for")
	fs.BoolVar(&opts.caseSensitive, "case-sensitive", false, "Match the keyword case-sensitively")
	hit := fs.String("hit", "", "Report the text run at page-space point `x,y`")
	fs.IntVar(&opts.page, "page", 0, "Page to scan, 1-based (0 scans every page)")
	fs.BoolVar(&opts.raw, "raw", false, "Include the raw text of scanned pages")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json or html")
	fs.IntVar(&opts.workers, "workers", 1, "Number of pages scanned in parallel")
	fs.BoolVar(&opts.verbose, "v", false, "Log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("missing pdf path")
	}
	opts.pdfPath = fs.Arg(0)

	if *hit != "" {
		p, err := parsePoint(*hit)
		if err != nil {
			return options{}, err
		}
		opts.hit = &p
	}
	switch opts.format {
	case "text", "json", "html":
	default:
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.page < 0 {
		return options{}, fmt.Errorf("invalid page %d", opts.page)
	}
	if opts.keyword == "" && opts.hit == nil && !opts.raw {
		return options{}, fmt.Errorf("nothing to do: give -keyword, -hit or -raw")
	}
	return opts, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (model.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return model.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return model.Point{X: x, Y: y}, nil
}

func (o options) scanOptions(logger *slog.Logger) []textscan.Option {
	opts := []textscan.Option{textscan.WithLogger(logger)}
	if o.keyword != "" {
		opts = append(opts, textscan.WithKeyword(o.keyword, o.caseSensitive))
	}
	if o.hit != nil {
		opts = append(opts, textscan.WithHitPoint(*o.hit))
	}
	if o.raw {
		opts = append(opts, textscan.WithRawText())
	}
	return opts
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	rep := report{File: opts.pdfPath}
	if opts.workers > 1 {
		var pages []int
		if opts.page > 0 {
			pages = []int{opts.page}
		}
		res, err := textscan.ScanParallel(ctx, opts.pdfPath, pages, opts.workers, opts.scanOptions(logger)...)
		if err != nil {
			return err
		}
		rep.Pages = res.Pages
		rep.fill(res.Selections, res.Warnings, res.RawText)
	} else {
		s, err := textscan.Open(opts.pdfPath, opts.scanOptions(logger)...)
		if err != nil {
			return err
		}
		defer s.Close()

		if opts.page > 0 {
			err = s.ScanDocument(opts.page)
		} else {
			err = s.ScanAll()
		}
		if err != nil {
			return err
		}
		rep.Pages = s.PageCount()
		rep.fill(s.Selections(), s.Warnings(), s.RawText())
	}

	if opts.verbose && len(rep.Warnings) > 0 {
		fmt.Fprintln(stderr, strings.Join(rep.Warnings, "\n"))
	}
	return writeReport(stdout, opts.format, rep)
}
