// Package sink writes reconstructed tables to files or streams.
package sink

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/tablestitch/pkg/table"
)

// Writer receives named tables. Close flushes whatever the writer buffered.
type Writer interface {
	WriteTable(name string, t *table.Table) error
	Close() error
}

// Supported output formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatText = "text"
)

// ErrUnknownFormat is returned by New for an unsupported format
var ErrUnknownFormat = errors.New("unknown output format")

// New creates a writer for format. out is the workbook path for xlsx, the
// directory for csv and a file path for text, where "" or "-" means stdout.
func New(format, out string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatXLSX:
		if out == "" {
			return nil, errors.New("xlsx output needs a file path")
		}
		return NewXLSXWriter(out), nil
	case FormatCSV:
		if out == "" {
			out = "."
		}
		return NewCSVWriter(out)
	case FormatText:
		if out == "" || out == "-" {
			return NewTextWriter(nopCloser{os.Stdout}), nil
		}
		f, err := os.Create(out)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create text output")
		}
		return NewTextWriter(f), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// SafeName replaces characters that are not allowed in sheet or file names
// and truncates the result to max runes. An empty name becomes "Sheet".
func SafeName(name string, max int) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	if name == "" {
		name = "Sheet"
	}
	if max > 0 && utf8.RuneCountInString(name) > max {
		name = string([]rune(name)[:max])
	}
	return name
}
