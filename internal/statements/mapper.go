// Package statements maps a document's formatted tables onto the three
// canonical statement shapes (income, balance sheet, cash flow), repairs
// values that can be derived from an accounting identity, and aligns all
// three statements onto the dates they share.
package statements

import (
	"sort"

	"github.com/eurostatements/statementcore/internal/taxonomy"
	"github.com/eurostatements/statementcore/pkg/models"
)

// Mapper turns a document's formatted tables into a StatementSet using a
// compiled Taxonomy's title and item regexes.
type Mapper struct {
	tax *taxonomy.Taxonomy
}

// NewMapper builds a Mapper.
func NewMapper(tax *taxonomy.Taxonomy) *Mapper {
	return &Mapper{tax: tax}
}

// Map selects, for each canonical statement kind, the formatted table whose
// title matches that kind's title regex and whose mapped rows carry the
// most non-nil canonical items, standardizes its rows, repairs
// identity-derivable values, and restricts every statement to the report
// dates common to all three.
func (m *Mapper) Map(tables []models.FormattedTable) models.StatementSet {
	var set models.StatementSet

	for _, kind := range models.AllStatementKinds {
		st := m.tax.Statements[kind]
		if st == nil {
			continue
		}

		var bestRows []models.StatementRow
		bestCount := -1

		for _, table := range tables {
			if !st.TitleRegex.MatchString(table.Title) {
				continue
			}

			rows := mapRows(kind, st, table)
			if len(rows) == 0 {
				continue
			}

			count := 0
			for _, r := range rows {
				if c := countNonNil(r.Items); c > count {
					count = c
				}
			}
			if count > bestCount {
				bestCount, bestRows = count, rows
			}
		}

		set.SetRows(kind, bestRows)
	}

	restrictToCommonDates(&set)
	return set
}

// mapRows standardizes every row of one formatted table into a
// StatementRow for the given statement kind, repairing each row in turn.
func mapRows(kind models.StatementKind, st *taxonomy.ItemTaxonomy, table models.FormattedTable) []models.StatementRow {
	rows := make([]models.StatementRow, 0, len(table.Rows))
	for _, fr := range table.Rows {
		row := models.StatementRow{
			Date:     fr.Date,
			Units:    fr.Units,
			Items:    mapItems(st, fr),
			RawData:  fr.RawData,
			JSONData: []map[string]*float64{valuesMap(fr)},
		}
		rows = append(rows, Repair(kind, row))
	}
	return rows
}

// mapItems picks, for every canonical item name, whichever raw label on the
// row matches that item's compiled regex, breaking ties between multiple
// matching labels by SimilarityRatio between the raw label and the regex's
// matched tokens rejoined with spaces - the same tie-break the source uses
// to prefer the raw label that reads closest to the canonical item's own
// name. Any match is accepted; the ratio is never an acceptance floor.
func mapItems(st *taxonomy.ItemTaxonomy, row models.FormattedRow) map[string]*float64 {
	items := make(map[string]*float64, len(st.ItemNames))

	for _, item := range st.ItemNames {
		re := st.ItemRegex[item]

		var bestValue *float64
		bestRatio := -1.0
		found := false

		for _, lv := range row.Values {
			m := re.FindStringSubmatch(lv.Label)
			if m == nil {
				continue
			}
			var tokens []string
			for _, g := range m[1:] {
				if g != "" {
					tokens = append(tokens, g)
				}
			}
			name := joinTokens(tokens)
			ratio := SimilarityRatio(lv.Label, name)
			if ratio > bestRatio {
				bestRatio, bestValue, found = ratio, lv.Value, true
			}
		}

		if found {
			items[item] = bestValue
		} else {
			items[item] = nil
		}
	}

	return items
}

func joinTokens(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

func valuesMap(fr models.FormattedRow) map[string]*float64 {
	m := make(map[string]*float64, len(fr.Values))
	for _, lv := range fr.Values {
		m[lv.Label] = lv.Value
	}
	return m
}

func countNonNil(items map[string]*float64) int {
	n := 0
	for _, v := range items {
		if v != nil {
			n++
		}
	}
	return n
}

// restrictToCommonDates keeps, in every statement, only the rows whose
// date appears in all three statements, then sorts each by date - the
// source's set-intersection-then-sort pass over the three statement maps.
func restrictToCommonDates(set *models.StatementSet) {
	common := map[string]int{}
	kinds := models.AllStatementKinds
	for _, kind := range kinds {
		seen := map[string]bool{}
		for _, row := range set.Rows(kind) {
			if !seen[row.Date] {
				seen[row.Date] = true
				common[row.Date]++
			}
		}
	}

	for _, kind := range kinds {
		var kept []models.StatementRow
		for _, row := range set.Rows(kind) {
			if common[row.Date] == len(kinds) {
				kept = append(kept, row)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Date < kept[j].Date })
		set.SetRows(kind, kept)
	}
}
