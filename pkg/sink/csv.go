package sink

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pyhub-apps/tablestitch/pkg/table"
)

// CSVWriter writes each table to <dir>/<name>.csv
type CSVWriter struct {
	dir   string
	Comma rune
	files []string
}

// NewCSVWriter creates dir if needed
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", dir)
	}
	return &CSVWriter{dir: dir, Comma: ','}, nil
}

// WriteTable writes a header line followed by the table rows
func (w *CSVWriter) WriteTable(name string, t *table.Table) (err error) {
	path := filepath.Join(w.dir, SafeName(name, 0)+".csv")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	cw := csv.NewWriter(f)
	cw.Comma = w.Comma
	if err := cw.Write(t.Columns); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	w.files = append(w.files, path)
	return nil
}

// Files returns the paths written so far
func (w *CSVWriter) Files() []string {
	return w.files
}

// Close is a no-op; every table is flushed as it is written
func (w *CSVWriter) Close() error {
	return nil
}
