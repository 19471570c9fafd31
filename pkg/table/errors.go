package table

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSourceUnavailable means the token source could not be opened or read at
// all. It is the only failure Extract propagates.
var ErrSourceUnavailable = errors.New("token source unavailable")

// ErrNoTokens marks a page that was read but yielded nothing.
var ErrNoTokens = errors.New("page yielded no tokens")

// PageError is a failure to extract one page. The page is skipped.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

// Unwrap returns the underlying error
func (e *PageError) Unwrap() error {
	return e.Err
}

// DiagnosticKind classifies a skipped page, header or row.
type DiagnosticKind string

const (
	PageSkipped    DiagnosticKind = "page_skipped"
	HeaderRejected DiagnosticKind = "header_rejected"
	RowNoise       DiagnosticKind = "row_noise"
	RowEmpty       DiagnosticKind = "row_empty"
	RowNoiseFinal  DiagnosticKind = "row_noise_final"
)

// Diagnostic describes something the extractor skipped. Line is the 0-based
// index of the clustered line on the page, or -1 when not applicable.
type Diagnostic struct {
	Kind   DiagnosticKind
	Page   int
	Line   int
	Reason string
}

func (d Diagnostic) String() string {
	if d.Line < 0 {
		return fmt.Sprintf("%s: page %d: %s", d.Kind, d.Page, d.Reason)
	}
	return fmt.Sprintf("%s: page %d line %d: %s", d.Kind, d.Page, d.Line, d.Reason)
}
