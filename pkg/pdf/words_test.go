package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run lays out s at x with 5pt per character on a 10pt font.
func run(s string, x, baseline float64) textRun {
	return textRun{Font: "Helvetica", FontSize: 10, X: x, Y: baseline, W: float64(len([]rune(s))) * 5, S: s}
}

func texts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

func TestCharsFromRunsFlipsY(t *testing.T) {
	chars := charsFromRuns([]textRun{run("Aä", 100, 700)}, 792)
	require.Len(t, chars, 2)

	assert.Equal(t, "A", chars[0].Text)
	assert.Equal(t, "ä", chars[1].Text)
	assert.InDelta(t, 792-(700+8), chars[0].Top, 1e-9)
	assert.InDelta(t, chars[0].Top+10, chars[0].Bottom, 1e-9)
	assert.Equal(t, 100.0, chars[0].X0)
	assert.Equal(t, 105.0, chars[0].X1)
	assert.Equal(t, 105.0, chars[1].X0)
}

func TestCharsFromRunsSkipsEmptyRuns(t *testing.T) {
	assert.Empty(t, charsFromRuns([]textRun{{S: ""}}, 792))
}

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name string
		runs []textRun
		opts []WordExtractionOption
		want []string
	}{
		{
			name: "spaces split words",
			runs: []textRun{run("Kaikki yhteensä", 0, 700)},
			want: []string{"Kaikki", "yhteensä"},
		},
		{
			name: "adjacent runs join",
			runs: []textRun{run("Työn", 0, 700), run("tekijät", 20, 700)},
			want: []string{"Työntekijät"},
		},
		{
			name: "gap wider than tolerance splits",
			runs: []textRun{run("Aika", 0, 700), run("Norm", 23, 700)},
			want: []string{"Aika", "Norm"},
		},
		{
			name: "wider tolerance joins",
			runs: []textRun{run("Aika", 0, 700), run("Norm", 23, 700)},
			opts: []WordExtractionOption{WithWordXTolerance(5)},
			want: []string{"AikaNorm"},
		},
		{
			name: "lines ordered top to bottom",
			runs: []textRun{run("second", 0, 680), run("first", 0, 700)},
			want: []string{"first", "second"},
		},
		{
			name: "small baseline jitter stays on one line",
			runs: []textRun{run("left", 0, 700), run("right", 100, 698.5)},
			want: []string{"left", "right"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newTextPage(1, 612, 792, charsFromRuns(tt.runs, 792))
			assert.Equal(t, tt.want, texts(page.ExtractWords(tt.opts...)))
		})
	}
}

func TestExtractWordsBoundingBox(t *testing.T) {
	page := newTextPage(1, 612, 792, charsFromRuns([]textRun{run("37,5", 200, 700)}, 792))
	words := page.ExtractWords()
	require.Len(t, words, 1)

	w := words[0]
	assert.Equal(t, 200.0, w.X0)
	assert.Equal(t, 220.0, w.X1)
	assert.InDelta(t, 84.0, w.Top, 1e-9)
	assert.InDelta(t, 94.0, w.Bottom, 1e-9)
	assert.InDelta(t, 20.0, w.BBox().Width(), 1e-9)
	assert.True(t, w.BBox().Contains(210, 90))
}

func TestExtractWordsEmptyPage(t *testing.T) {
	assert.Nil(t, newTextPage(1, 612, 792, nil).ExtractWords())
}

func TestExtractWordsDoesNotReorderChars(t *testing.T) {
	chars := charsFromRuns([]textRun{run("b", 50, 700), run("a", 0, 700)}, 792)
	page := newTextPage(1, 612, 792, chars)
	page.ExtractWords()
	assert.Equal(t, "b", page.Chars()[0].Text)
}

func TestNegativeTolerancesClamp(t *testing.T) {
	config := newWordExtractionConfig([]WordExtractionOption{
		WithWordXTolerance(-1), WithWordYTolerance(-3),
	})
	assert.Zero(t, config.XTolerance)
	assert.Zero(t, config.YTolerance)
}

func TestPageSize(t *testing.T) {
	w, h := pageSize([4]float64{0, 0, 595, 842}, true)
	assert.Equal(t, 595.0, w)
	assert.Equal(t, 842.0, h)

	w, h = pageSize([4]float64{}, false)
	assert.Equal(t, defaultPageWidth, w)
	assert.Equal(t, defaultPageHeight, h)

	w, h = pageSize([4]float64{10, 10, 10, 10}, true)
	assert.Equal(t, defaultPageWidth, w)
	assert.Equal(t, defaultPageHeight, h)
}

func TestOpenRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is plain text, not a PDF document\n"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)

	_, err = Inspect(path)
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
