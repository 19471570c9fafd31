// Package table rebuilds tables from positioned page text.
//
// For every page the extractor clusters tokens into lines, finds header lines
// by keyword matching, derives column bins from the header token positions and
// assigns the tokens of the following lines to those bins until the next
// header, a totals line or the end of the page. Rows from all headers and
// pages are merged into one table whose non-fixed columns appear in the order
// they were first seen.
//
// Processing is strictly sequential: page order and header order determine
// both the column order and where each table stops.
package table

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pyhub-apps/tablestitch/internal/logger"
	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

// TokenSource yields the positioned tokens of each page.
type TokenSource interface {
	// PageCount returns the number of pages
	PageCount() int

	// PageTokens returns the tokens of a page (1-based)
	PageTokens(page int) ([]extractors.Token, error)

	// Close releases the source
	Close() error
}

// Opener acquires a token source for one parse.
type Opener func() (TokenSource, error)

// Result is the outcome of one parse.
type Result struct {
	Table        *Table
	Diagnostics  []Diagnostic
	Pages        int
	PagesSkipped int
}

// Extractor runs the reconstruction over a token source.
type Extractor struct {
	profile   *config.Profile
	strict    bool
	organizer *extractors.TextOrganizer
	log       *zap.Logger
}

// NewExtractor creates an extractor. Without WithProfile the default profile is used.
func NewExtractor(opts ...Option) *Extractor {
	cfg := &extractionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := cfg.Profile
	if p == nil {
		p = config.Default()
	}
	withDefaults := p.WithDefaults()
	p = &withDefaults

	organizer := extractors.NewTextOrganizer()
	organizer.SetTolerance(p.LineTolerance)
	if cfg.LineTolerance > 0 {
		organizer.SetTolerance(cfg.LineTolerance)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger("table")
	}

	return &Extractor{
		profile:   p,
		strict:    cfg.Strict,
		organizer: organizer,
		log:       log,
	}
}

// Profile returns the profile in use.
func (e *Extractor) Profile() *config.Profile {
	return e.profile
}

// ExtractWith opens a source, extracts from it and closes it on every path.
func (e *Extractor) ExtractWith(open Opener) (*Result, error) {
	src, err := open()
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}
	if src == nil {
		return nil, errors.Wrap(ErrSourceUnavailable, "opener returned no source")
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			e.log.Warn("failed to close token source", zap.Error(cerr))
		}
	}()

	return e.Extract(src)
}

// Extract runs over every page of src in order. The caller owns src.
func (e *Extractor) Extract(src TokenSource) (*Result, error) {
	if src == nil {
		return nil, errors.Wrap(ErrSourceUnavailable, "nil source")
	}

	run := &parseRun{
		extractor: e,
		acc:       NewAccumulator(e.profile),
		result:    &Result{Pages: src.PageCount()},
	}

	for page := 1; page <= run.result.Pages; page++ {
		tokens, err := pageTokens(src, page)
		if err == nil && len(tokens) == 0 {
			err = &PageError{Page: page, Err: ErrNoTokens}
		}
		if err != nil {
			run.result.PagesSkipped++
			e.log.Warn("skipping page", zap.Int("page", page), zap.Error(err))
			run.diagnose(PageSkipped, page, -1, err.Error())
			continue
		}
		run.acc = e.processPage(run, page, tokens)
	}

	t, dropped := run.acc.Table()
	for i := 0; i < dropped; i++ {
		run.diagnose(RowNoiseFinal, 0, -1, "noise marker found after merging")
	}
	run.result.Table = t

	e.log.Info("table reconstructed",
		zap.Int("pages", run.result.Pages),
		zap.Int("pages_skipped", run.result.PagesSkipped),
		zap.Int("rows", t.Len()),
		zap.Int("columns", len(t.Columns)))

	return run.result, nil
}

// parseRun holds the state of one Extract call.
type parseRun struct {
	extractor *Extractor
	acc       *Accumulator
	result    *Result
}

func (r *parseRun) diagnose(kind DiagnosticKind, page, line int, reason string) {
	if !r.extractor.strict {
		return
	}
	r.result.Diagnostics = append(r.result.Diagnostics, Diagnostic{
		Kind:   kind,
		Page:   page,
		Line:   line,
		Reason: reason,
	})
}

// processPage feeds one page into the accumulator and returns it.
func (e *Extractor) processPage(run *parseRun, page int, tokens []extractors.Token) *Accumulator {
	acc := run.acc
	lines := e.organizer.ClusterLines(tokens)

	var headers []int
	for i, ln := range lines {
		if IsHeaderLine(ln, e.profile) {
			headers = append(headers, i)
		}
	}
	if len(headers) == 0 {
		e.log.Debug("no header on page", zap.Int("page", page), zap.Int("lines", len(lines)))
		return acc
	}

	for hi, idx := range headers {
		model, ok := BuildColumnModel(lines[idx], e.profile)
		if !ok {
			e.log.Debug("header rejected", zap.Int("page", page), zap.Int("line", idx))
			run.diagnose(HeaderRejected, page, idx,
				fmt.Sprintf("missing fixed column in %q", lines[idx].Text()))
			continue
		}
		acc.ObserveHeader(model)

		stop := len(lines)
		if hi+1 < len(headers) {
			stop = headers[hi+1]
		}

		accepted := 0
		for li := idx + 1; li < stop; li++ {
			if IsTerminator(lines[li], e.profile) {
				e.log.Debug("table terminated", zap.Int("page", page), zap.Int("line", li))
				break
			}

			row := model.Assign(lines[li])
			if IsNoise(row, e.profile) {
				run.diagnose(RowNoise, page, li, "noise marker")
				continue
			}
			if IsEmpty(row, e.profile) {
				run.diagnose(RowEmpty, page, li, "key columns are blank")
				continue
			}
			acc.AddRow(row)
			accepted++
		}

		e.log.Debug("header processed",
			zap.Int("page", page),
			zap.Int("line", idx),
			zap.Strings("columns", model.Labels()),
			zap.Int("rows", accepted))
	}
	return acc
}

// pageTokens reads one page, turning a panic in the source into a PageError.
func pageTokens(src TokenSource, page int) (tokens []extractors.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = &PageError{Page: page, Err: fmt.Errorf("panic during extraction: %v", r)}
		}
	}()

	tokens, err = src.PageTokens(page)
	if err != nil {
		var pe *PageError
		if !errors.As(err, &pe) {
			err = &PageError{Page: page, Err: err}
		}
		return nil, err
	}
	return tokens, nil
}
