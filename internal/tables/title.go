package tables

import (
	"strings"

	"github.com/eurostatements/statementcore/pkg/models"
)

// ExtractTitle attaches to each table the verbatim text of every line sitting
// between it and the previous table (or the start of the page, for the
// first table): the running heading a financial statement table sits under.
func (b *Builder) ExtractTitle(lines []models.Line, tables []cleanedTable) []models.CleanTable {
	result := make([]models.CleanTable, len(tables))

	for idx, t := range tables {
		firstIdx := 0
		if idx > 0 {
			firstIdx = tables[idx-1].LastIdx + 1
		}

		var titleLines []string
		for i := firstIdx; i <= t.HeaderIdx && i < len(lines); i++ {
			var words []string
			for _, w := range lines[i].Words {
				words = append(words, w.Text)
			}
			titleLines = append(titleLines, strings.Join(words, " "))
		}

		result[idx] = models.CleanTable{
			FirstLineIndex: t.HeaderIdx,
			LastLineIndex:  t.LastIdx,
			Title:          strings.Join(titleLines, "\n"),
			Rows:           t.Rows,
		}
	}

	return result
}

// Reconstruct runs the full table reconstruction pipeline over one page's
// lines and fills: segmentation, grid alignment, header absorption, column
// filtering, header/value splitting and row cleanup.
func (b *Builder) Reconstruct(lines []models.Line, fills []models.Fill) []models.CleanTable {
	raw := b.ExtractTables(lines, fills)
	filtered := b.FilterTables(raw)
	headered := b.IdentifyHeader(filtered)
	cleaned := b.CleanRows(headered)
	return b.ExtractTitle(lines, cleaned)
}
