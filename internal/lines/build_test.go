package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/pkg/models"
)

func word(x0, x1, y0, y1 float64, text string) models.Word {
	return models.Word{X0: x0, X1: x1, Y0: y0, Y1: y1, Text: text}
}

func TestBuildGroupsByLineAndSortsByX(t *testing.T) {
	words := []models.Word{
		word(50, 60, 700, 710, "Revenue"),
		word(10, 20, 700, 710, "Total"),
		word(10, 20, 650, 660, "Net"),
	}
	got := Build(words)

	require.Len(t, got, 2)
	assert.Equal(t, "Total", got[0].Words[0].Text)
	assert.Equal(t, "Revenue", got[0].Words[1].Text)
	assert.Equal(t, "Net", got[1].Words[0].Text)
}

func TestBuildMergesOverlappingLines(t *testing.T) {
	words := []models.Word{
		word(10, 20, 700.0, 710.0, "A"),
		word(30, 40, 702.0, 712.0, "B"),
	}
	got := Build(words)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Words, 2)
}

func TestRemoveOverlappingWordsDropsDuplicates(t *testing.T) {
	lines := []models.Line{
		{Y0: 700, Y1: 710, Words: []models.Word{
			word(10, 50, 700, 710, "Revenue"),
			word(10.2, 50.1, 700, 710, "Revenue"),
		}},
	}
	got := removeOverlappingWords(lines)
	assert.Len(t, got[0].Words, 1)
}

func TestMergeNegativeNumbersJoinsMinusSign(t *testing.T) {
	lines := []models.Line{
		{Y0: 700, Y1: 710, Words: []models.Word{
			word(10, 15, 700, 710, "-"),
			word(17, 30, 700, 710, "45.2"),
		}},
	}
	got := mergeNegativeNumbers(lines)
	require.Len(t, got[0].Words, 1)
	assert.Equal(t, "-45.2", got[0].Words[0].Text)
}

func TestGroupGlyphsIntoWordsJoinsAdjacentGlyphs(t *testing.T) {
	glyphs := []models.Word{
		word(10, 15, 700, 710, "R"),
		word(15, 20, 700, 710, "e"),
		word(20, 25, 700, 710, "v"),
		word(40, 50, 700, 710, "Net"),
	}
	got := GroupGlyphsIntoWords(glyphs)
	require.Len(t, got, 2)
	assert.Equal(t, "Rev", got[0].Text)
	assert.Equal(t, "Net", got[1].Text)
}
