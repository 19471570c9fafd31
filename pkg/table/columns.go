package table

import (
	"math"
	"sort"
	"strings"

	"github.com/pyhub-apps/tablestitch/pkg/extractors"
)

// ColumnSpec is a column label anchored at the left edge of its header token.
type ColumnSpec struct {
	Label  string
	Anchor float64
}

// ColumnModel is the column layout of one header occurrence.
//
// Columns keep the output order, which puts the trailing fixed column last.
// Binning always walks the anchors in ascending order, so the bins partition
// the real line even when the trailing column was moved out of anchor order.
type ColumnModel struct {
	columns []ColumnSpec
	order   []int     // column index for each bin, ascending by anchor
	bounds  []float64 // len(order)+1 boundaries, -Inf and +Inf at the ends
}

// NewColumnModel builds a model over columns, kept in the given order.
func NewColumnModel(columns []ColumnSpec) ColumnModel {
	m := ColumnModel{columns: append([]ColumnSpec(nil), columns...)}
	if len(columns) == 0 {
		return m
	}

	m.order = make([]int, len(columns))
	for i := range m.order {
		m.order[i] = i
	}
	sort.SliceStable(m.order, func(a, b int) bool {
		return columns[m.order[a]].Anchor < columns[m.order[b]].Anchor
	})

	m.bounds = make([]float64, 0, len(columns)+1)
	m.bounds = append(m.bounds, math.Inf(-1))
	for i := 0; i+1 < len(m.order); i++ {
		lo := columns[m.order[i]].Anchor
		hi := columns[m.order[i+1]].Anchor
		m.bounds = append(m.bounds, (lo+hi)/2)
	}
	m.bounds = append(m.bounds, math.Inf(1))
	return m
}

// Len returns the number of columns.
func (m ColumnModel) Len() int {
	return len(m.columns)
}

// Columns returns a copy of the column specs in output order.
func (m ColumnModel) Columns() []ColumnSpec {
	return append([]ColumnSpec(nil), m.columns...)
}

// Labels returns the labels in output order.
func (m ColumnModel) Labels() []string {
	labels := make([]string, len(m.columns))
	for i, c := range m.columns {
		labels[i] = c.Label
	}
	return labels
}

// Boundaries returns the bin boundaries, from -Inf to +Inf.
func (m ColumnModel) Boundaries() []float64 {
	return append([]float64(nil), m.bounds...)
}

// ColumnAt returns the index, in output order, of the column whose bin holds
// x. A value on a boundary goes to the lower bin. It returns -1 only when x
// is NaN or the model is empty.
func (m ColumnModel) ColumnAt(x float64) int {
	for i := 0; i+1 < len(m.bounds); i++ {
		if m.bounds[i] <= x && x <= m.bounds[i+1] {
			return m.order[i]
		}
	}
	return -1
}

// Assign places every token of line into the column holding its center and
// returns the assembled cells. Every label of the model is present in the row.
func (m ColumnModel) Assign(line extractors.Line) Row {
	parts := make([][]string, len(m.columns))
	for _, tok := range line.Tokens {
		idx := m.ColumnAt(tok.Center())
		if idx < 0 {
			continue
		}
		parts[idx] = append(parts[idx], tok.Text)
	}

	row := make(Row, len(m.columns))
	for i, c := range m.columns {
		row[c.Label] = extractors.StripParens(strings.Join(parts[i], " "))
	}
	return row
}
