package tables

import (
	"regexp"
	"strings"

	"github.com/eurostatements/statementcore/internal/patterns"
	"github.com/eurostatements/statementcore/pkg/models"
)

var (
	lettersRegex = regexp.MustCompile(`[A-Za-z]`)
	valuesRegex  = regexp.MustCompile(`(?i)^[\s\d.,\-+%()]+$|^\s*(?:-|n\.a)?\s*$`)
)

// headerSplitTable is a CellTable after its date row has been located and
// everything from the label column's first clean value row onward has been
// classified as value rows rather than header rows.
type headerSplitTable struct {
	HeaderIdx  int // absolute line index of the last header row
	LastIdx    int
	HeaderRows [][]string
	ValueRows  [][]string
}

// IdentifyHeader finds each table's date row, then walks forward absorbing
// further rows into the header until it reaches a row whose label looks
// like a line item (has letters, isn't a units row) and whose first value
// column looks like a number rather than more header text.
func (b *Builder) IdentifyHeader(tables []models.CellTable) []headerSplitTable {
	var result []headerSplitTable

	for _, t := range tables {
		rows := t.Rows
		dateIdx := -1
		for idx, row := range rows {
			if matchesAnyDateRegex(strings.Join(row[1:], " ")) {
				dateIdx = idx
				break
			}
		}
		if dateIdx == -1 {
			continue
		}

		headerIdx := dateIdx
		for _, row := range rows[dateIdx+1:] {
			hasLetters := lettersRegex.MatchString(row[0])
			hasUnits := unitsRegexMatch(row)
			hasValues := valuesRegex.MatchString(row[1])

			if hasLetters && !hasUnits && hasValues {
				break
			}
			headerIdx++
		}

		headerRows, valueRows := rows[:headerIdx+1], rows[headerIdx+1:]
		if len(headerRows) > 0 && len(valueRows) > 0 {
			result = append(result, headerSplitTable{
				HeaderIdx:  t.FirstLineIndex + headerIdx,
				LastIdx:    t.LastLineIndex,
				HeaderRows: headerRows,
				ValueRows:  valueRows,
			})
		}
	}

	return result
}

func unitsRegexMatch(row []string) bool {
	if patterns.UnitsRegex.MatchString(row[0]) {
		return true
	}
	if len(row) > 1 && patterns.UnitsRegex.MatchString(row[1]) {
		return true
	}
	return false
}
