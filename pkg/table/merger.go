package table

import (
	"github.com/pyhub-apps/tablestitch/pkg/config"
)

// Accumulator collects rows across headers and pages of a single parse and
// remembers the order in which non-fixed columns first appeared.
// It is not safe for concurrent use; each parse owns its own.
type Accumulator struct {
	profile *config.Profile
	dynamic []string
	seen    map[string]bool
	rows    []Row
}

// NewAccumulator returns an empty accumulator for profile.
func NewAccumulator(p *config.Profile) *Accumulator {
	return &Accumulator{
		profile: p,
		seen:    make(map[string]bool),
	}
}

// ObserveHeader records the dynamic labels of a header, in header order.
// It must be called when the header is processed, before its rows are added,
// so that ordering follows headers rather than rows.
func (a *Accumulator) ObserveHeader(m ColumnModel) {
	for _, label := range m.Labels() {
		if a.profile.IsFixed(label) || a.seen[label] {
			continue
		}
		a.seen[label] = true
		a.dynamic = append(a.dynamic, label)
	}
}

// AddRow appends an accepted row.
func (a *Accumulator) AddRow(r Row) {
	a.rows = append(a.rows, r)
}

// DynamicColumns returns the dynamic labels in first-seen order.
func (a *Accumulator) DynamicColumns() []string {
	return append([]string(nil), a.dynamic...)
}

// Columns returns fixed leading labels, then dynamic labels, then fixed
// trailing labels.
func (a *Accumulator) Columns() []string {
	columns := make([]string, 0, len(a.profile.Leading)+len(a.dynamic)+1)
	columns = append(columns, a.profile.LeadingLabels()...)
	columns = append(columns, a.dynamic...)
	return append(columns, a.profile.TrailingLabels()...)
}

// Table assembles the normalized table. Missing cells become empty strings
// and rows carrying the noise marker are removed once more; the dropped
// count is returned alongside.
func (a *Accumulator) Table() (*Table, int) {
	columns := a.Columns()
	t := &Table{Columns: columns, Rows: make([]Row, 0, len(a.rows))}

	dropped := 0
	for _, r := range a.rows {
		nr := make(Row, len(columns))
		for _, c := range columns {
			nr[c] = r[c]
		}
		if IsNoise(nr, a.profile) {
			dropped++
			continue
		}
		t.Rows = append(t.Rows, nr)
	}
	return t, dropped
}
