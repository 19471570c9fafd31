package table

import (
	"strings"

	"github.com/pyhub-apps/tablestitch/internal/logger"
	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

const tokenWidth = 10

// cell is a token text at a left position.
type cell struct {
	text string
	x    float64
}

func at(text string, x float64) cell { return cell{text: text, x: x} }

// lineAt builds the tokens of one visual line at vertical position top.
func lineAt(top float64, cells ...cell) []extractors.Token {
	tokens := make([]extractors.Token, len(cells))
	for i, c := range cells {
		tokens[i] = extractors.Token{
			Text:   c.text,
			Left:   c.x,
			Right:  c.x + tokenWidth,
			Top:    top,
			Bottom: top + 8,
		}
	}
	return tokens
}

func line(cells ...cell) extractors.Line {
	return extractors.Line{Tokens: lineAt(0, cells...)}
}

// page concatenates lines into one unordered token slice, like a real source.
func page(lines ...[]extractors.Token) []extractors.Token {
	var out []extractors.Token
	for i := len(lines) - 1; i >= 0; i-- {
		out = append(out, lines[i]...)
	}
	return out
}

// englishHeader is "Workers Time Norm <extra...> Total all" at 50pt steps.
func englishHeader(top float64, extra ...string) []extractors.Token {
	cells := []cell{at("Workers", 0), at("Time", 50), at("Norm", 100)}
	x := 150.0
	for _, e := range extra {
		cells = append(cells, at(e, x))
		x += 50
	}
	cells = append(cells, at("Total", x), at("all", x+25))
	return lineAt(top, cells...)
}

// englishRow places values under englishHeader columns, 5pt right of each anchor.
func englishRow(top float64, values ...string) []extractors.Token {
	cells := make([]cell, 0, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		cells = append(cells, at(v, float64(i*50)+5))
	}
	return lineAt(top, cells...)
}

type fakeSource struct {
	pages  [][]extractors.Token
	errs   map[int]error
	panics map[int]bool
	closed int
}

func (f *fakeSource) PageCount() int { return len(f.pages) }

func (f *fakeSource) PageTokens(page int) ([]extractors.Token, error) {
	if f.panics[page] {
		panic("malformed content stream")
	}
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	return f.pages[page-1], nil
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

func newExtractor(strict bool) *Extractor {
	return NewExtractor(
		WithProfile(config.English()),
		WithStrict(strict),
		WithLogger(logger.Nop()),
	)
}

func kinds(diags []Diagnostic) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = string(d.Kind)
	}
	return strings.Join(parts, ",")
}
