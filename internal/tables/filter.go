package tables

import (
	"regexp"
	"strings"

	"github.com/eurostatements/statementcore/pkg/models"
)

var (
	numbersRegex = regexp.MustCompile(`^[\s\d.,\-+%()]+$`)
	// numberGapRegex closes the stray space a PDF sometimes leaves between a
	// digit and a following fraction-like "d/" run, e.g. "12 3/4" -> "123/4".
	// Rewritten as a capturing substitution rather than the lookbehind the
	// source pattern used, since RE2 has no lookaround support.
	numberGapRegex = regexp.MustCompile(`(\d)\s(\d/)`)
	// repeatingYearPrefix anchors the [SHQ]<digit> 20<digit> run that
	// sometimes gets a run-on repeated trailing digit merged onto it by the
	// word-merge step; the repeated run itself is located procedurally
	// below since RE2 has no backreference support.
	repeatingYearPrefix = regexp.MustCompile(`(?i)[SHQ]\d\s+20\d`)
	ellipsisRegex       = regexp.MustCompile(`[\d\s.,]+$`)
)

func closeNumberGaps(s string) string {
	return numberGapRegex.ReplaceAllString(s, "$1$2")
}

// stripRepeatingYearDigits removes a run of two-or-more repeats of the same
// digit immediately following a "[SHQ]<digit> 20<digit>" prefix, an
// artifact of duplicate-word merging that leaves e.g. "S1 2022222" where
// "S1 2022" was meant.
func stripRepeatingYearDigits(s string) string {
	for _, m := range repeatingYearPrefix.FindAllStringIndex(s, -1) {
		end := m[1]
		if end >= len(s) {
			continue
		}
		digit := s[end]
		if digit < '0' || digit > '9' {
			continue
		}
		j := end
		for j < len(s) && s[j] == digit {
			j++
		}
		runLen := j - end
		if runLen < 2 {
			continue
		}
		s = strings.ReplaceAll(s, strings.Repeat(string(digit), runLen-1), "")
	}
	return s
}

func textRows(rows []models.Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, blk := range row {
			if blk != nil {
				cells[j] = blk.Text
			}
		}
		out[i] = cells
	}
	return out
}

// FilterTables keeps only the label column plus columns that open with a
// date in their first third and hold a number below it, capping the result
// at MaxColumnsKept value columns and dropping tables with too few rows to be a
// real table rather than a stray aligned fragment.
func (b *Builder) FilterTables(rawTables []models.RawTable) []models.CellTable {
	var filtered []models.CellTable

	for _, t := range rawTables {
		rows := textRows(t.Rows)
		if len(rows) < b.cfg.MinTableRows+1 {
			continue
		}

		columnCount := len(rows[0])
		columns := make([][]string, columnCount)
		for c := 0; c < columnCount; c++ {
			col := make([]string, len(rows))
			for r, row := range rows {
				if c < len(row) {
					col[r] = row[c]
				}
			}
			columns[c] = col
		}

		kept := [][]string{columns[0]}
		for _, column := range columns[1:] {
			cleaned := make([]string, len(column))
			for i, cell := range column {
				cleaned[i] = stripRepeatingYearDigits(closeNumberGaps(cell))
			}

			thirdLen := len(cleaned) / 3
			dateIdx := -1
			for i := 0; i < thirdLen; i++ {
				if matchesAnyDateRegex(cleaned[i]) {
					dateIdx = i
					break
				}
			}
			if dateIdx == -1 {
				continue
			}

			numberIdx := -1
			for i := dateIdx + 1; i < len(cleaned); i++ {
				if numbersRegex.MatchString(cleaned[i]) {
					numberIdx = i
					break
				}
			}
			if numberIdx == -1 {
				continue
			}

			kept = append(kept, cleaned)
		}

		if len(kept) <= 1 {
			continue
		}
		if len(kept) > b.cfg.MaxColumnsKept+1 {
			kept = kept[:b.cfg.MaxColumnsKept+1]
		}

		label := make([]string, len(kept[0]))
		for i, cell := range kept[0] {
			label[i] = ellipsisRegex.ReplaceAllString(cell, "")
		}
		kept[0] = label

		newRows := make([][]string, len(rows))
		for r := range rows {
			row := make([]string, len(kept))
			for c := range kept {
				row[c] = kept[c][r]
			}
			newRows[r] = row
		}
		filtered = append(filtered, models.CellTable{
			FirstLineIndex: t.FirstLineIndex,
			LastLineIndex:  t.LastLineIndex,
			Rows:           newRows,
		})
	}

	return filtered
}
