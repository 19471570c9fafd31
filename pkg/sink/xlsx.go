package sink

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/tablestitch/pkg/table"
)

// MaxSheetName is the longest sheet name Excel accepts
const MaxSheetName = 31

// XLSXWriter writes each table to its own sheet of one workbook
type XLSXWriter struct {
	path   string
	file   *excelize.File
	sheets int
	used   map[string]bool
	bold   int
}

// NewXLSXWriter creates a workbook that is saved to path on Close
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{
		path: path,
		file: excelize.NewFile(),
		used: make(map[string]bool),
		bold: -1,
	}
}

// WriteTable adds a sheet holding a header row followed by the table rows.
// The first table takes over the workbook's default sheet.
func (w *XLSXWriter) WriteTable(name string, t *table.Table) error {
	if w.file == nil {
		return errors.New("xlsx writer is closed")
	}

	sheet := w.uniqueName(SafeName(name, MaxSheetName))
	if w.sheets == 0 {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), sheet); err != nil {
			return errors.Wrapf(err, "rename sheet to %q", sheet)
		}
	} else if _, err := w.file.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create sheet %q", sheet)
	}
	w.sheets++
	w.used[strings.ToLower(sheet)] = true

	if err := w.writeRow(sheet, 1, t.Columns); err != nil {
		return err
	}
	if err := w.styleHeader(sheet, len(t.Columns)); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.writeRow(sheet, i+2, t.Record(i)); err != nil {
			return err
		}
	}
	return nil
}

// Close saves the workbook
func (w *XLSXWriter) Close() error {
	if w.file == nil {
		return nil
	}
	defer func() {
		w.file.Close()
		w.file = nil
	}()

	if w.sheets == 0 {
		return errors.New("no tables were written")
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return errors.Wrapf(err, "save workbook %s", w.path)
	}
	return nil
}

func (w *XLSXWriter) writeRow(sheet string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := w.file.SetSheetRow(sheet, cell, &cells); err != nil {
		return errors.Wrapf(err, "write row %d of %q", row, sheet)
	}
	return nil
}

func (w *XLSXWriter) styleHeader(sheet string, columns int) error {
	if columns == 0 {
		return nil
	}
	if w.bold < 0 {
		style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return errors.Wrap(err, "create header style")
		}
		w.bold = style
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, "A1", last, w.bold)
}

// uniqueName appends " (n)" until the name is unused, staying within MaxSheetName
func (w *XLSXWriter) uniqueName(name string) string {
	if !w.used[strings.ToLower(name)] {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := SafeName(name, MaxSheetName-len(suffix)) + suffix
		if !w.used[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
