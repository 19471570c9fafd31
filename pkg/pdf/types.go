package pdf

import (
	"strings"
	"unicode"
)

// BoundingBox represents a rectangular area in top-left origin coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// CharObject represents a character in the PDF
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Top      float64
	X1       float64
	Bottom   float64
}

// Width returns the advance width of the character
func (c CharObject) Width() float64 {
	return c.X1 - c.X0
}

// IsSpace reports whether the character is blank
func (c CharObject) IsSpace() bool {
	return strings.TrimFunc(c.Text, unicode.IsSpace) == ""
}

// Word is a run of characters on one line without a gap wider than the x tolerance
type Word struct {
	Text   string
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
}

// BBox returns the word's bounding box
func (w Word) BBox() BoundingBox {
	return BoundingBox{X0: w.X0, Y0: w.Top, X1: w.X1, Y1: w.Bottom}
}

// Default tolerances used when grouping characters into words
const (
	DefaultWordXTolerance = 2.0
	DefaultWordYTolerance = 2.0
)

// WordExtractionOption is a function that modifies word extraction behavior
type WordExtractionOption func(*wordExtractionConfig)

type wordExtractionConfig struct {
	XTolerance float64
	YTolerance float64
}

// WithWordXTolerance sets the largest horizontal gap inside a word
func WithWordXTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithWordYTolerance sets the largest vertical offset between characters of one line
func WithWordYTolerance(tolerance float64) WordExtractionOption {
	return func(c *wordExtractionConfig) {
		c.YTolerance = tolerance
	}
}

func newWordExtractionConfig(opts []WordExtractionOption) wordExtractionConfig {
	config := wordExtractionConfig{
		XTolerance: DefaultWordXTolerance,
		YTolerance: DefaultWordYTolerance,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.XTolerance < 0 {
		config.XTolerance = 0
	}
	if config.YTolerance < 0 {
		config.YTolerance = 0
	}
	return config
}
