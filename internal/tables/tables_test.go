package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/pkg/models"
)

func newTestBuilder() *Builder {
	cfg := common.NewDefaultConfig().Pipeline
	return NewBuilder(&cfg)
}

func blk(x0, x1 float64, text string) *models.Block {
	return &models.Block{X0: x0, X1: x1, Text: text}
}

func TestCorrectBlocksSplitsHalfYearPhraseOntoTwoColumns(t *testing.T) {
	b := newTestBuilder()
	grid := []*models.Block{blk(0, 100, "S1 2023"), blk(120, 220, "S2 2023")}
	lineBlocks := []*models.Block{blk(0, 220, "1st half-year2nd half-year")}

	got := b.CorrectBlocks(lineBlocks, grid)
	require.Len(t, got, 2)
	assert.Equal(t, grid[0].X0, got[0].X0)
	assert.Equal(t, grid[1].X0, got[1].X0)
}

func TestCorrectBlocksLeavesOrdinaryTextUnchanged(t *testing.T) {
	b := newTestBuilder()
	grid := []*models.Block{blk(0, 100, "2023")}
	lineBlocks := []*models.Block{blk(0, 100, "Revenue")}

	got := b.CorrectBlocks(lineBlocks, grid)
	assert.Equal(t, lineBlocks, got)
}

func rawTableOf(rows ...[]string) models.RawTable {
	out := make([]models.Row, len(rows))
	for i, row := range rows {
		r := make(models.Row, len(row))
		for j, text := range row {
			if text != "" {
				r[j] = &models.Block{Text: text}
			}
		}
		out[i] = r
	}
	return models.RawTable{Rows: out, FirstLineIndex: 0, LastLineIndex: len(rows) - 1}
}

func TestFilterTablesKeepsDateColumnWithNumberBelow(t *testing.T) {
	b := newTestBuilder()
	raw := rawTableOf(
		[]string{"Units", "2023", "junk"},
		[]string{"Revenue", "1,234.5", "x"},
		[]string{"", "", ""},
		[]string{"Costs", "-500.0", "y"},
	)

	got := b.FilterTables([]models.RawTable{raw})
	require.Len(t, got, 1)
	assert.Len(t, got[0].Rows[0], 2) // label column + the one admitted column
}

func TestFilterTablesDropsShortTables(t *testing.T) {
	b := newTestBuilder()
	raw := rawTableOf([]string{"Revenue", "2023"})

	got := b.FilterTables([]models.RawTable{raw})
	assert.Empty(t, got)
}

func TestIdentifyHeaderSplitsOnFirstValueRow(t *testing.T) {
	b := newTestBuilder()
	table := models.CellTable{
		FirstLineIndex: 10,
		LastLineIndex:  13,
		Rows: [][]string{
			{"", "2023"},
			{"Revenue", "1,234.5"},
			{"Costs", "-500.0"},
		},
	}

	got := b.IdentifyHeader([]models.CellTable{table})
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].HeaderIdx)
	assert.Len(t, got[0].HeaderRows, 1)
	assert.Len(t, got[0].ValueRows, 2)
}

func TestCleanRowsMergesContinuationLabel(t *testing.T) {
	b := newTestBuilder()
	split := headerSplitTable{
		HeaderIdx: 0,
		LastIdx:   4,
		HeaderRows: [][]string{
			{"", "2023"},
		},
		ValueRows: [][]string{
			{"Net income from", ""},
			{"continuing operations", "1,234.5"},
			{"Costs", "-500.0"},
		},
	}

	got := b.CleanRows([]headerSplitTable{split})
	require.Len(t, got, 1)
	require.Len(t, got[0].Rows, 3) // header + 2 value rows
	assert.Equal(t, "Net income from continuing operations", got[0].Rows[1][0])
}

func TestStripRepeatingYearDigitsRemovesRunOnDigits(t *testing.T) {
	got := stripRepeatingYearDigits("S1 2022222")
	assert.Equal(t, "S1 2022", got)
}

func TestCloseNumberGapsJoinsDigitAndFraction(t *testing.T) {
	got := closeNumberGaps("12 3/4")
	assert.Equal(t, "123/4", got)
}
