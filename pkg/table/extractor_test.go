package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/tablestitch/internal/logger"
	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

func extract(t *testing.T, strict bool, pages ...[]extractors.Token) *Result {
	t.Helper()
	res, err := newExtractor(strict).Extract(&fakeSource{pages: pages})
	require.NoError(t, err)
	return res
}

func TestExtractSingleRow(t *testing.T) {
	res := extract(t, false, page(
		lineAt(10, at("Workers", 0), at("Time", 50), at("Norm", 100), at("Total all", 150)),
		lineAt(30, at("Smith", 5), at("W21", 55), at("37.5", 105), at("900", 155)),
	))

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, []string{"Workers", "Time", "Norm", "Total all"}, res.Table.Columns)
	assert.Equal(t, Row{"Workers": "Smith", "Time": "W21", "Norm": "37.5", "Total all": "900"}, res.Table.Rows[0])
}

func TestExtractStopsAtTerminator(t *testing.T) {
	res := extract(t, false, page(
		englishHeader(10),
		englishRow(30, "Smith", "W21", "37.5", "900"),
		lineAt(50, at("Total", 0), at("all", 25), at("900", 155)),
		englishRow(70, "Jones", "W21", "20", "480"),
	))

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "Smith", res.Table.Rows[0]["Workers"])
	for _, r := range res.Table.Rows {
		assert.NotEqual(t, "900", r["Workers"], "terminator is never a data row")
	}
}

func TestExtractStopsAtNextHeader(t *testing.T) {
	res := extract(t, false, page(
		englishHeader(10, "Bonus"),
		englishRow(30, "Smith", "W21", "37.5", "5", "900"),
		englishHeader(50, "Allowance"),
		englishRow(70, "Jones", "W21", "20", "7", "480"),
	))

	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "5", res.Table.Rows[0]["Bonus"])
	assert.Equal(t, "", res.Table.Rows[0]["Allowance"])
	assert.Equal(t, "7", res.Table.Rows[1]["Allowance"])
	assert.Equal(t, "", res.Table.Rows[1]["Bonus"])
}

func TestExtractIgnoresLinesBeforeHeader(t *testing.T) {
	res := extract(t, false, page(
		lineAt(5, at("Invoice", 0), at("Smith", 55)),
		englishHeader(20),
		englishRow(40, "Smith", "W21", "1", "2"),
	))
	assert.Equal(t, 1, res.Table.Len())
}

func TestExtractMergesPagesWithDynamicColumns(t *testing.T) {
	res := extract(t, false,
		page(
			englishHeader(10, "Bonus"),
			englishRow(30, "Smith", "W21", "37.5", "5", "900"),
		),
		page(
			englishHeader(10, "Allowance"),
			englishRow(30, "Jones", "W22", "20", "7", "480"),
		),
	)

	assert.Equal(t,
		[]string{"Workers", "Time", "Norm", "Bonus", "Allowance", "Total all"},
		res.Table.Columns)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, []string{"Smith", "W21", "37.5", "5", "", "900"}, res.Table.Record(0))
	assert.Equal(t, []string{"Jones", "W22", "20", "", "7", "480"}, res.Table.Record(1))
}

func TestExtractDuplicateLabels(t *testing.T) {
	res := extract(t, false, page(
		englishHeader(10, "Rate", "Rate"),
		englishRow(30, "Smith", "W21", "37.5", "10", "20", "900"),
	))

	assert.Equal(t,
		[]string{"Workers", "Time", "Norm", "Rate", "Rate (2)", "Total all"},
		res.Table.Columns)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "10", res.Table.Rows[0]["Rate"])
	assert.Equal(t, "20", res.Table.Rows[0]["Rate (2)"])
}

func TestExtractDropsNoiseRows(t *testing.T) {
	res := extract(t, true, page(
		englishHeader(10),
		englishRow(30, "Smith", "W21", "37.5", "900"),
		lineAt(50, at("Listed", 5), at("by:", 20), at("admin", 35)),
		englishRow(70, "Jones", "W21", "20", "480"),
	))

	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, "Smith", res.Table.Rows[0]["Workers"])
	assert.Equal(t, "Jones", res.Table.Rows[1]["Workers"])
	assert.Equal(t, "row_noise", kinds(res.Diagnostics))
}

func TestExtractDropsEmptyRows(t *testing.T) {
	res := extract(t, true, page(
		englishHeader(10),
		englishRow(30, "", "", "37.5", "900"),
		englishRow(50, "Smith", "", "", ""),
	))

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "Smith", res.Table.Rows[0]["Workers"])
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, RowEmpty, res.Diagnostics[0].Kind)
	assert.Equal(t, 1, res.Diagnostics[0].Page)
}

func TestExtractRejectedHeaderStopsTable(t *testing.T) {
	res := extract(t, true, page(
		englishHeader(10),
		englishRow(30, "Smith", "W21", "1", "2"),
		lineAt(50, at("Workers/Time", 0), at("Norm", 100), at("Total", 150), at("all", 175)),
		englishRow(70, "Jones", "W21", "3", "4"),
	))

	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "header_rejected", kinds(res.Diagnostics))
	assert.Equal(t, 2, res.Diagnostics[0].Line)
}

func TestExtractSkipsBadPages(t *testing.T) {
	good := page(englishHeader(10), englishRow(30, "Smith", "W21", "1", "2"))
	src := &fakeSource{
		pages:  [][]extractors.Token{good, nil, good, good},
		errs:   map[int]error{3: errors.New("broken xref")},
		panics: map[int]bool{4: true},
	}

	res, err := newExtractor(true).Extract(src)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, 3, res.PagesSkipped)
	assert.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "page_skipped,page_skipped,page_skipped", kinds(res.Diagnostics))
	assert.Equal(t, []int{2, 3, 4}, []int{
		res.Diagnostics[0].Page, res.Diagnostics[1].Page, res.Diagnostics[2].Page,
	})
}

func TestExtractNonStrictHasNoDiagnostics(t *testing.T) {
	src := &fakeSource{pages: [][]extractors.Token{nil}}
	res, err := newExtractor(false).Extract(src)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, 1, res.PagesSkipped)
}

func TestExtractWithClosesSource(t *testing.T) {
	src := &fakeSource{pages: [][]extractors.Token{nil}, panics: map[int]bool{1: true}}
	_, err := newExtractor(false).ExtractWith(func() (TokenSource, error) { return src, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, src.closed)
}

func TestExtractWithSourceUnavailable(t *testing.T) {
	_, err := newExtractor(false).ExtractWith(func() (TokenSource, error) {
		return nil, errors.New("not a PDF")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "not a PDF")
}

func TestExtractFinnishInvoice(t *testing.T) {
	header := lineAt(100,
		at("Työntekijät", 40), at("Aika", 160), at("Norm", 230),
		at("Iltalisä", 290), at("Kaikki", 360), at("yhteensä", 392),
	)
	tokens := page(
		header,
		lineAt(120, at("Virtanen", 40), at("Matti", 80), at("28.04.-04.05.", 160),
			at("37,5", 232), at("4,0", 292), at("(h)", 300), at("1 020,50", 362)),
		lineAt(130, at("Tekijä:", 40), at("Laine", 80)),
		lineAt(140, at("Korhonen", 40), at("Anna", 82), at("28.04.-04.05.", 160),
			at("30,0", 232), at("810,00", 362)),
		lineAt(160, at("Kaikki", 40), at("yhteensä", 72), at("1 830,50", 362)),
		lineAt(180, at("Sivu", 40), at("1/1", 80)),
	)
	res, err := NewExtractor(WithProfile(config.Finnish()), WithLogger(logger.Nop())).
		Extract(&fakeSource{pages: [][]extractors.Token{tokens}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Työntekijät", "Aika", "Norm", "Iltalisä", "Kaikki yhteensä"}, res.Table.Columns)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, []string{"Virtanen Matti", "28.04.-04.05.", "37,5", "4,0", "1 020,50"}, res.Table.Record(0))
	assert.Equal(t, []string{"Korhonen Anna", "28.04.-04.05.", "30,0", "", "810,00"}, res.Table.Record(1))
}

func TestExtractIsIdempotent(t *testing.T) {
	src := &fakeSource{pages: [][]extractors.Token{
		page(englishHeader(10, "Bonus"), englishRow(30, "Smith", "W21", "1", "2", "3")),
		page(englishHeader(10, "Allowance", "Bonus"), englishRow(30, "Jones", "W22", "4", "5", "6", "7")),
	}}

	ex := newExtractor(true)
	first, err := ex.Extract(src)
	require.NoError(t, err)
	second, err := ex.Extract(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Independent parses never share the dynamic column order.
func TestExtractRunsAreIsolated(t *testing.T) {
	ex := newExtractor(false)
	a, err := ex.Extract(&fakeSource{pages: [][]extractors.Token{
		page(englishHeader(10, "Bonus"), englishRow(30, "Smith", "W21", "1", "2", "3")),
	}})
	require.NoError(t, err)
	b, err := ex.Extract(&fakeSource{pages: [][]extractors.Token{
		page(englishHeader(10, "Allowance"), englishRow(30, "Jones", "W22", "4", "5", "6")),
	}})
	require.NoError(t, err)

	assert.Contains(t, a.Table.Columns, "Bonus")
	assert.NotContains(t, a.Table.Columns, "Allowance")
	assert.NotContains(t, b.Table.Columns, "Bonus")
}

func TestExtractColumnOrderAndRowCompleteness(t *testing.T) {
	p := config.English()
	res := extract(t, false,
		page(englishHeader(10, "B", "A"), englishRow(30, "w1", "t", "n", "b", "a", "x")),
		page(englishHeader(10, "C", "A"), englishRow(30, "w2", "t", "n", "c", "a", "x")),
		page(englishHeader(10, "B", "D"), englishRow(30, "w3", "t", "n", "b", "d", "x")),
	)

	cols := res.Table.Columns
	assert.Equal(t, p.LeadingLabels(), cols[:3])
	assert.Equal(t, []string{"B", "A", "C", "D"}, cols[3:7])
	assert.Equal(t, p.TrailingLabels(), cols[7:])

	seen := map[string]bool{}
	for _, c := range cols {
		assert.False(t, seen[c], "duplicate column %s", c)
		seen[c] = true
	}
	for _, r := range res.Table.Rows {
		require.Len(t, r, len(cols))
		for _, c := range cols {
			_, ok := r[c]
			assert.True(t, ok, "missing %s", c)
		}
	}
}

func TestExtractUsesLineTolerance(t *testing.T) {
	tokens := page(
		englishHeader(10),
		lineAt(30, at("Smith", 5), at("W21", 55)),
		lineAt(34, at("37.5", 105), at("900", 155)),
	)

	res := extract(t, false, tokens)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "", res.Table.Rows[0]["Total all"], "4pt apart is two lines at the default tolerance")

	wide := NewExtractor(WithProfile(config.English()), WithLineTolerance(5), WithLogger(logger.Nop()))
	res, err := wide.Extract(&fakeSource{pages: [][]extractors.Token{tokens}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())
	assert.Equal(t, "900", res.Table.Rows[0]["Total all"])
}
