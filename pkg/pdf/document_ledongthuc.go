package pdf

import (
	"fmt"
	"io"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// BackendLedongthuc names the ledongthuc/pdf backend
const BackendLedongthuc = "ledongthuc"

// LedongthucDocument implements the Document interface using ledongthuc/pdf library
type LedongthucDocument struct {
	file      io.Closer
	reader    *lpdf.Reader
	filepath  string
	pageCount int
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("ledongthuc: panic while opening %s: %v", filepath, r)
		}
	}()

	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF with ledongthuc")
	}

	d := &LedongthucDocument{
		file:     f,
		reader:   r,
		filepath: filepath,
	}
	d.pageCount = r.NumPage()
	return d, nil
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (page Page, err error) {
	if index < 0 || index >= d.pageCount {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, d.pageCount)
	}
	number := index + 1

	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("ledongthuc: panic while decoding page %d: %v", number, r)
		}
	}()

	p := d.reader.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("ledongthuc: page %d not found", number)
	}

	width, height := pageSize(ledongthucMediaBox(p.V))

	content := p.Content()
	runs := make([]textRun, 0, len(content.Text))
	for _, text := range content.Text {
		runs = append(runs, textRun{
			Font:     text.Font,
			FontSize: text.FontSize,
			X:        text.X,
			Y:        text.Y,
			W:        text.W,
			S:        text.S,
		})
	}

	return newTextPage(number, width, height, charsFromRuns(runs, height)), nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return d.pageCount
}

// Backend returns the backend name
func (d *LedongthucDocument) Backend() string {
	return BackendLedongthuc
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// ledongthucMediaBox looks up MediaBox on the page or the nearest ancestor
func ledongthucMediaBox(v lpdf.Value) ([4]float64, bool) {
	var box [4]float64
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == lpdf.Array && mb.Len() == 4 {
			for i := range box {
				box[i] = mb.Index(i).Float64()
			}
			return box, true
		}
		v = v.Key("Parent")
	}
	return box, false
}
