package extractors

import (
	"math"
	"sort"
)

// DefaultLineTolerance is the vertical distance, in text-space units, under
// which two consecutive tokens belong to the same line.
const DefaultLineTolerance = 3.0

// TextOrganizer organizes positioned tokens into lines
type TextOrganizer struct {
	yTolerance float64 // Vertical tolerance for grouping tokens into lines
}

// NewTextOrganizer creates a new text organizer with the default tolerance
func NewTextOrganizer() *TextOrganizer {
	return &TextOrganizer{
		yTolerance: DefaultLineTolerance,
	}
}

// SetTolerance sets the vertical tolerance for line grouping
func (to *TextOrganizer) SetTolerance(yTol float64) {
	if yTol < 0 {
		yTol = 0
	}
	to.yTolerance = yTol
}

// Tolerance returns the vertical tolerance in use
func (to *TextOrganizer) Tolerance() float64 {
	return to.yTolerance
}

// ClusterLines groups tokens into lines ordered top to bottom, each line
// sorted left to right.
//
// A token joins the current line when its Top is within the tolerance of the
// last token appended to that line, not of the line's first token. Baselines
// that drift steadily can therefore chain into one line, and a jump larger
// than the tolerance always starts a new one.
func (to *TextOrganizer) ClusterLines(tokens []Token) []Line {
	if len(tokens) == 0 {
		return nil
	}

	sorted := to.sortTokens(tokens)

	var lines []Line
	current := []Token{sorted[0]}
	for _, tok := range sorted[1:] {
		last := current[len(current)-1]
		if math.Abs(tok.Top-last.Top) <= to.yTolerance {
			current = append(current, tok)
			continue
		}
		lines = append(lines, newLine(current))
		current = []Token{tok}
	}
	lines = append(lines, newLine(current))

	return lines
}

// sortTokens sorts a copy of tokens by their vertical position
func (to *TextOrganizer) sortTokens(tokens []Token) []Token {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	return sorted
}

func newLine(tokens []Token) Line {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Left < tokens[j].Left
	})
	return Line{Tokens: tokens}
}
