package pdf

import (
	"fmt"
	"os"

	gopdf "github.com/dslipak/pdf"
	"github.com/pkg/errors"
)

// BackendDslipak names the dslipak/pdf backend
const BackendDslipak = "dslipak"

// DsliPakDocument implements the Document interface using dslipak/pdf library
type DsliPakDocument struct {
	file      *os.File
	reader    *gopdf.Reader
	filepath  string
	pageCount int
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (doc Document, err error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("dslipak: panic while opening %s: %v", filepath, r)
		}
		if err != nil {
			f.Close()
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	r, err := gopdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF with dslipak")
	}

	return &DsliPakDocument{
		file:      f,
		reader:    r,
		filepath:  filepath,
		pageCount: r.NumPage(),
	}, nil
}

// GetPage returns a specific page by index (0-based)
func (d *DsliPakDocument) GetPage(index int) (page Page, err error) {
	if index < 0 || index >= d.pageCount {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, d.pageCount)
	}
	number := index + 1

	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("dslipak: panic while decoding page %d: %v", number, r)
		}
	}()

	p := d.reader.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("dslipak: page %d not found", number)
	}

	width, height := pageSize(dslipakMediaBox(p.V))

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
func (d *DsliPakDocument) PageCount() int {
	return d.pageCount
}

// Backend returns the backend name
func (d *DsliPakDocument) Backend() string {
	return BackendDslipak
}

// Close releases resources associated with the document
func (d *DsliPakDocument) Close() error {
	d.reader = nil
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

func dslipakMediaBox(v gopdf.Value) ([4]float64, bool) {
	var box [4]float64
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == gopdf.Array && mb.Len() == 4 {
			for i := range box {
				box[i] = mb.Index(i).Float64()
			}
			return box, true
		}
		v = v.Key("Parent")
	}
	return box, false
}
