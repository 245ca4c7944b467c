package models

// Row is one row of a raw table: one slot per column of the table's column
// grid. A nil slot is an empty cell (no block aligned to that column).
type Row []*Block

// RawTable is the output of TableBuilder: an ordered list of rows aligned
// to a single column grid, plus the index range of the source lines that
// produced it (inclusive), used to recover the table's title.
type RawTable struct {
	Rows           []Row
	FirstLineIndex int
	LastLineIndex  int
}

// HeaderedTable splits a RawTable's rows into header rows and value rows,
// and carries the verbatim text of the lines preceding the table as title.
type HeaderedTable struct {
	Title      string
	HeaderRows [][]string
	ValueRows  [][]string
}

// CellTable is a RawTable after cells have been reduced to their text
// (empty string for unaligned slots) — the representation TableFilter,
// HeaderSplitter and RowCleaner operate on.
type CellTable struct {
	FirstLineIndex int
	LastLineIndex  int
	Rows           [][]string
}

// CleanTable is a table after header collapse and row cleanup: a single
// header row followed by value rows, all with a lettered label and fully
// populated non-label cells.
type CleanTable struct {
	FirstLineIndex int
	LastLineIndex  int
	Title          string
	Rows           [][]string // Rows[0] is the collapsed header row.
}

// FormattedRow is one dated row of a formatted table: date, units, then
// label->value pairs in insertion order. Values are nil when the cell did
// not parse as a number.
type FormattedRow struct {
	Date  string
	Units string
	// Values holds label->number pairs in the column's original left-to-
	// right insertion order (excluding date/units).
	Values []LabeledValue
	// RawData is the verbatim cell matrix (header row + value rows) the
	// formatted row was derived from.
	RawData [][]string
}

// LabeledValue is a single named numeric cell, nil when unparseable.
type LabeledValue struct {
	Label string
	Value *float64
}

// Get returns the value for a label and whether the label was present.
func (r *FormattedRow) Get(label string) (*float64, bool) {
	for _, lv := range r.Values {
		if lv.Label == label {
			return lv.Value, true
		}
	}
	return nil, false
}

// FormattedTable is a table after TableFormatter: a title plus formatted
// rows, one per detected date column.
type FormattedTable struct {
	Title string
	Rows  []FormattedRow
}
