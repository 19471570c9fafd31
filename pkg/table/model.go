package table

// Row maps a column label to its assembled cell text.
type Row map[string]string

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is the merged result of a parse: rows plus the realized column order.
// Every row has exactly one entry per column.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns row i as values in column order.
func (t *Table) Record(i int) []string {
	rec := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		rec[j] = t.Rows[i][c]
	}
	return rec
}

// Records returns every row in column order, without the header.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Record(i)
	}
	return out
}

// Rename returns a copy of the table with columns renamed through names.
// Order is kept. A rename whose target already names another column is
// skipped.
func (t *Table) Rename(names map[string]string) *Table {
	existing := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		existing[c] = true
	}

	mapping := make(map[string]string, len(t.Columns))
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		target, ok := names[c]
		if !ok || target == "" || target == c || existing[target] {
			target = c
		}
		existing[target] = true
		mapping[c] = target
		columns[i] = target
	}

	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[mapping[k]] = v
		}
		rows[i] = nr
	}
	return &Table{Columns: columns, Rows: rows}
}
