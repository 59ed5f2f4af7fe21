package textscan

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/textscan/model"
)

// Result is the merged outcome of a parallel scan.
type Result struct {
	Selections []model.Selection
	Warnings   []Warning
	RawText    string // set when WithRawText is given
	Pages      int    // pages in the document, not just those scanned
}

type pageResult struct {
	selections []model.Selection
	warnings   []Warning
	raw        string
}

// ScanParallel scans pages of the file at path with up to workers
// goroutines, each with its own Scanner. A nil or empty pages scans every
// page. Results are merged in the order pages are listed, so they match a
// sequential scan. The hit callback, if any, is called from the calling
// goroutine after all pages are done.
func ScanParallel(ctx context.Context, path string, pages []int, workers int, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	onHit := o.onHit
	opts = append(opts[:len(opts):len(opts)], WithHitCallback(nil))

	s, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	total := s.PageCount()
	s.Close()

	if len(pages) == 0 {
		pages = make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	results := make([]pageResult, len(pages))
	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range pages {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			s, err := Open(path, opts...)
			if err != nil {
				return err
			}
			defer s.Close()

			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.Reset()
				if err := s.ScanDocument(pages[i]); err != nil {
					return err
				}
				results[i] = pageResult{
					selections: s.Selections(),
					warnings:   s.Warnings(),
					raw:        s.RawText(),
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel scan: %w", err)
	}

	res := &Result{Pages: total}
	var raw []string
	for _, r := range results {
		res.Selections = append(res.Selections, r.selections...)
		res.Warnings = append(res.Warnings, r.warnings...)
		raw = append(raw, r.raw)
	}
	if o.rawText {
		res.RawText = strings.Join(raw, "\n\n")
	}
	if onHit != nil {
		for _, sel := range res.Selections {
			if sel.Kind == model.HitTest {
				onHit(sel)
			}
		}
	}
	o.logger.Info("parallel scan complete",
		"pages", len(pages),
		"workers", workers,
		"selections", len(res.Selections))
	return res, nil
}
