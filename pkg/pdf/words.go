package pdf

import (
	"math"
	"sort"
	"strings"
)

// Default page size (US Letter) used when a page has no usable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// textRun is a positioned string as reported by a backend's content decoder.
// Y is the PDF baseline, measured upward from the bottom of the page.
type textRun struct {
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
	S        string
}

// charsFromRuns splits runs into characters and flips them into top-left
// origin coordinates. The run width is spread evenly over its characters.
func charsFromRuns(runs []textRun, pageHeight float64) []CharObject {
	var chars []CharObject
	for _, run := range runs {
		runes := []rune(run.S)
		if len(runes) == 0 {
			continue
		}

		// Baseline is typically at 80% of the font height
		top := pageHeight - (run.Y + run.FontSize*0.8)
		charWidth := run.W / float64(len(runes))
		x := run.X

		for _, ch := range runes {
			chars = append(chars, CharObject{
				Text:     string(ch),
				Font:     run.Font,
				FontSize: run.FontSize,
				X0:       x,
				Top:      top,
				X1:       x + charWidth,
				Bottom:   top + run.FontSize,
			})
			x += charWidth
		}
	}
	return chars
}

// textPage is the Page implementation shared by every backend
type textPage struct {
	number int
	width  float64
	height float64
	chars  []CharObject
}

func newTextPage(number int, width, height float64, chars []CharObject) *textPage {
	return &textPage{number: number, width: width, height: height, chars: chars}
}

// GetPageNumber returns the page number (1-based)
func (p *textPage) GetPageNumber() int { return p.number }

// GetWidth returns the page width
func (p *textPage) GetWidth() float64 { return p.width }

// GetHeight returns the page height
func (p *textPage) GetHeight() float64 { return p.height }

// Chars returns the positioned characters of the page
func (p *textPage) Chars() []CharObject { return p.chars }

// ExtractWords extracts individual words from the page
func (p *textPage) ExtractWords(opts ...WordExtractionOption) []Word {
	return groupWords(p.chars, newWordExtractionConfig(opts))
}

// groupWords clusters characters into lines by their top and splits each
// line into words at blank characters and at gaps wider than the x tolerance.
func groupWords(chars []CharObject, config wordExtractionConfig) []Word {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var words []Word
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && math.Abs(sorted[i].Top-sorted[start].Top) <= config.YTolerance {
			continue
		}
		words = append(words, wordsInLine(sorted[start:i], config.XTolerance)...)
		start = i
	}
	return words
}

// wordsInLine splits one line of characters into words
func wordsInLine(line []CharObject, xTolerance float64) []Word {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X0 < line[j].X0
	})

	var words []Word
	var current []CharObject
	flush := func() {
		if len(current) > 0 {
			words = append(words, createWord(current))
			current = nil
		}
	}

	for _, char := range line {
		if char.IsSpace() {
			flush()
			continue
		}
		if len(current) > 0 && char.X0-current[len(current)-1].X1 > xTolerance {
			flush()
		}
		current = append(current, char)
	}
	flush()

	return words
}

// createWord creates a Word from a group of characters
func createWord(chars []CharObject) Word {
	var text strings.Builder
	w := Word{
		X0:     chars[0].X0,
		X1:     chars[0].X1,
		Top:    chars[0].Top,
		Bottom: chars[0].Bottom,
	}

	for _, char := range chars {
		text.WriteString(char.Text)
		w.X0 = math.Min(w.X0, char.X0)
		w.X1 = math.Max(w.X1, char.X1)
		w.Top = math.Min(w.Top, char.Top)
		w.Bottom = math.Max(w.Bottom, char.Bottom)
	}
	w.Text = text.String()

	return w
}

// pageSize reads a MediaBox-like [x0 y0 x1 y1] array, falling back to US Letter
func pageSize(box [4]float64, ok bool) (width, height float64) {
	if !ok {
		return defaultPageWidth, defaultPageHeight
	}
	width = math.Abs(box[2] - box[0])
	height = math.Abs(box[3] - box[1])
	if width == 0 || height == 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}
