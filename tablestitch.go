// Package tablestitch reconstructs one merged table from the text layout of
// PDF reports whose tables span several pages and change their column set
// from one header to the next.
package tablestitch

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
	"github.com/pyhub-apps/tablestitch/pkg/pdf"
	"github.com/pyhub-apps/tablestitch/pkg/table"
)

// Re-export types for the public API
type (
	Document   = pdf.Document
	Page       = pdf.Page
	Word       = pdf.Word
	Profile    = config.Profile
	Table      = table.Table
	Row        = table.Row
	Result     = table.Result
	Diagnostic = table.Diagnostic
	Option     = table.Option
)

// Re-export option functions and sentinels
var (
	WithProfile       = table.WithProfile
	WithStrict        = table.WithStrict
	WithLineTolerance = table.WithLineTolerance
	WithLogger        = table.WithLogger

	ErrSourceUnavailable = table.ErrSourceUnavailable
)

// Open opens a PDF file with the first backend that can decode it
func Open(filepath string) (pdf.Document, error) {
	return pdf.Open(filepath)
}

// ParseFile reconstructs the table of one PDF file. The document is closed
// before ParseFile returns. Only a file that cannot be opened is an error;
// unreadable pages are skipped.
func ParseFile(filepath string, opts ...Option) (*Result, error) {
	return parse(func() (pdf.Document, error) { return pdf.Open(filepath) }, opts...)
}

// ParseFiles parses independent files concurrently. Results keep the order
// of paths. The first failure cancels the parses that have not started.
func ParseFiles(ctx context.Context, paths []string, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ParseFile(path, opts...)
			if err != nil {
				return errors.Wrapf(err, "parse %s", path)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parse(open func() (pdf.Document, error), opts ...Option) (*Result, error) {
	ex := table.NewExtractor(opts...)
	p := ex.Profile()
	wordOpts := []pdf.WordExtractionOption{
		pdf.WithWordXTolerance(p.WordXTolerance),
		pdf.WithWordYTolerance(p.WordYTolerance),
	}

	return ex.ExtractWith(func() (table.TokenSource, error) {
		doc, err := open()
		if err != nil {
			return nil, err
		}
		return NewTokenSource(doc, wordOpts...), nil
	})
}

// NewTokenSource adapts a document to the extractor. Closing the source
// closes the document.
func NewTokenSource(doc pdf.Document, opts ...pdf.WordExtractionOption) table.TokenSource {
	return &documentSource{doc: doc, opts: opts}
}

type documentSource struct {
	doc  pdf.Document
	opts []pdf.WordExtractionOption
}

func (s *documentSource) PageCount() int {
	return s.doc.PageCount()
}

func (s *documentSource) PageTokens(page int) ([]extractors.Token, error) {
	p, err := s.doc.GetPage(page - 1)
	if err != nil {
		return nil, &table.PageError{Page: page, Err: err}
	}

	words := p.ExtractWords(s.opts...)
	tokens := make([]extractors.Token, len(words))
	for i, w := range words {
		tokens[i] = extractors.Token{
			Text:   w.Text,
			Left:   w.X0,
			Right:  w.X1,
			Top:    w.Top,
			Bottom: w.Bottom,
		}
	}
	return tokens, nil
}

func (s *documentSource) Close() error {
	return s.doc.Close()
}
