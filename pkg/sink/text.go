package sink

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/pyhub-apps/tablestitch/pkg/table"
)

// TextWriter renders tables as aligned plain text
type TextWriter struct {
	out     io.WriteCloser
	written int
}

// NewTextWriter writes to out and closes it on Close
func NewTextWriter(out io.WriteCloser) *TextWriter {
	return &TextWriter{out: out}
}

// WriteTable prints the name, the header, a rule and one line per row.
// Columns are padded to their widest cell in terminal cells, not bytes.
func (w *TextWriter) WriteTable(name string, t *table.Table) error {
	records := t.Records()

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, rec := range records {
		for i, v := range rec {
			if n := runewidth.StringWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	bw := bufio.NewWriter(w.out)
	if w.written > 0 {
		bw.WriteString("\n")
	}
	if name != "" {
		bw.WriteString("== " + name + " ==\n")
	}

	writeLine(bw, t.Columns, widths)
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	writeLine(bw, rule, widths)
	for _, rec := range records {
		writeLine(bw, rec, widths)
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write text table")
	}
	w.written++
	return nil
}

// Close closes the underlying writer
func (w *TextWriter) Close() error {
	return w.out.Close()
}

func writeLine(bw *bufio.Writer, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			bw.WriteString("  ")
		}
		if i == len(cells)-1 {
			bw.WriteString(c)
			continue
		}
		bw.WriteString(runewidth.FillRight(c, widths[i]))
	}
	bw.WriteString("\n")
}
