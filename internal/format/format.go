package format

import (
	"regexp"
	"strings"

	"github.com/eurostatements/statementcore/pkg/models"
)

var perShareRegex = regexp.MustCompile(`(?i)(?:per|par)\s+(?:share|action)`)

// unitKey identifies a (units, multiplier) pair: the key of the tally of
// tables/lines suggesting it that FormatTables and DocumentUnits use to
// pick the fallback.
type unitKey struct {
	units      string
	multiplier float64
}

// FormatRows turns one cleaned table into a FormattedTable: one row per
// detected date column, each holding label->value pairs for every
// non-header row, scaled by the table's own detected multiplier (per-share
// labeled rows are left unscaled).
func FormatRows(title string, rows [][]string) (models.FormattedTable, string, float64, bool) {
	if len(rows) == 0 {
		return models.FormattedTable{}, "", 1, false
	}

	header := rows[0]
	valueRows := rows[1:]

	type dateColumn struct {
		column int
		date   string
	}
	var dates []dateColumn
	seen := map[string]bool{}
	for col := 1; col < len(header); col++ {
		date, ok := ExtractDate(header[col])
		if !ok || seen[date] {
			continue
		}
		seen[date] = true
		dates = append(dates, dateColumn{column: col, date: date})
	}
	if len(dates) == 0 {
		return models.FormattedTable{}, "", 1, false
	}

	var labelParts []string
	for _, row := range valueRows {
		if len(row) == 0 || perShareRegex.MatchString(row[0]) {
			continue
		}
		labelParts = append(labelParts, row[0])
	}
	candidates := []struct {
		units      string
		multiplier float64
	}{}
	if u, m, ok := ExtractUnits(title); ok {
		candidates = append(candidates, struct {
			units      string
			multiplier float64
		}{u, m})
	}
	if u, m, ok := ExtractUnits(strings.Join(labelParts, " ")); ok {
		candidates = append(candidates, struct {
			units      string
			multiplier float64
		}{u, m})
	}

	units, multiplier := "", 1.0
	bestMultiplier := -1.0
	for _, c := range candidates {
		if c.multiplier > bestMultiplier || (c.multiplier == bestMultiplier && c.units > units) {
			bestMultiplier, units, multiplier = c.multiplier, c.units, c.multiplier
		}
	}

	var formattedRows []models.FormattedRow
	for _, dc := range dates {
		row := models.FormattedRow{Date: dc.date, Units: units, RawData: rows}
		containsValues := false

		for _, valueRow := range valueRows {
			if len(valueRow) <= dc.column {
				continue
			}
			label := valueRow[0]
			raw := valueRow[dc.column]
			value, ok := ParseNumber(raw)
			var valuePtr *float64
			if ok {
				containsValues = true
				if !perShareRegex.MatchString(label) {
					value *= multiplier
				}
				v := value
				valuePtr = &v
			}
			row.Values = append(row.Values, models.LabeledValue{Label: label, Value: valuePtr})
		}

		if containsValues {
			formattedRows = append(formattedRows, row)
		}
	}

	if len(formattedRows) == 0 {
		return models.FormattedTable{}, "", 1, false
	}
	return models.FormattedTable{Title: title, Rows: formattedRows}, units, multiplier, true
}

// FormatTables runs FormatRows over every cleaned table on a page, then
// falls back to the page's own running text (and finally the document-wide
// most-common units) to fill in units for any table that detected none of
// its own.
func FormatTables(tables []models.CleanTable, pageLines []models.Line, documentUnits string, documentMultiplier float64) []models.FormattedTable {
	var formatted []models.FormattedTable
	counts := map[unitKey]int{}
	var order []unitKey
	tally := func(k unitKey) {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	for _, t := range tables {
		ft, units, multiplier, ok := FormatRows(t.Title, t.Rows)
		if !ok {
			continue
		}
		formatted = append(formatted, ft)
		if units != "" {
			tally(unitKey{units, multiplier})
		}
	}

	if len(formatted) > 0 && len(counts) == 0 {
		for _, line := range pageLines {
			var words []string
			for _, w := range line.Words {
				words = append(words, w.Text)
			}
			text := strings.Join(words, " ")
			if perShareRegex.MatchString(text) {
				continue
			}
			if units, multiplier, ok := ExtractUnits(text); ok {
				tally(unitKey{units, multiplier})
			}
		}
		if len(counts) == 0 && documentUnits != "" {
			tally(unitKey{documentUnits, documentMultiplier})
		}
	}

	if len(counts) == 0 {
		return nil
	}

	bestKey := order[0]
	bestCount := counts[order[0]]
	for _, k := range order[1:] {
		if counts[k] > bestCount {
			bestKey, bestCount = k, counts[k]
		}
	}

	for i, t := range formatted {
		if len(t.Rows) > 0 && t.Rows[0].Units != "" {
			continue
		}
		for r := range t.Rows {
			t.Rows[r].Units = bestKey.units
			for v := range t.Rows[r].Values {
				lv := &t.Rows[r].Values[v]
				if lv.Value != nil && !perShareRegex.MatchString(lv.Label) {
					scaled := *lv.Value * bestKey.multiplier
					lv.Value = &scaled
				}
			}
		}
		formatted[i] = t
	}

	return formatted
}

// DocumentUnits scans every page's plain text for a units phrase and
// returns the most frequently suggested (units, multiplier) pair, the
// document-wide fallback FormatTables uses when neither a table nor its
// page carries its own units phrase.
func DocumentUnits(pageTexts []string) (string, float64) {
	counts := map[unitKey]int{}
	var order []unitKey
	for _, text := range pageTexts {
		if units, multiplier, ok := ExtractUnits(text); ok {
			k := unitKey{units, multiplier}
			if counts[k] == 0 {
				order = append(order, k)
			}
			counts[k]++
		}
	}
	if len(order) == 0 {
		return "", 1
	}

	best := order[0]
	bestCount := counts[order[0]]
	for _, k := range order[1:] {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best.units, best.multiplier
}
