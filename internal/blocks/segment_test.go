package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/pkg/models"
)

func TestSegmentSplitsOnWideGap(t *testing.T) {
	line := models.Line{
		Y0: 700, Y1: 710,
		Words: []models.Word{
			{X0: 10, X1: 15, Text: "Revenue"},
			{X0: 200, X1: 220, Text: "1,234.5"},
		},
	}
	got := Segment(line, nil, 2.0)
	require.Len(t, got, 2)
	assert.Equal(t, "Revenue", got[0].Text)
	assert.Equal(t, "1,234.5", got[1].Text)
}

func TestSegmentKeepsAdjacentWordsInOneBlock(t *testing.T) {
	line := models.Line{
		Y0: 700, Y1: 710,
		Words: []models.Word{
			{X0: 10, X1: 20, Text: "Net"},
			{X0: 21, X1: 35, Text: "Income"},
		},
	}
	got := Segment(line, nil, 2.0)
	require.Len(t, got, 1)
	assert.Equal(t, "Net Income", got[0].Text)
}

func TestSegmentSplitsOnSeparator(t *testing.T) {
	line := models.Line{
		Y0: 700, Y1: 710,
		Words: []models.Word{
			{X0: 10, X1: 20, Text: "A"},
			{X0: 22, X1: 30, Text: "B"},
		},
	}
	got := Segment(line, []float64{21}, 100.0)
	require.Len(t, got, 2)
}

func TestSeparatorsRequiresOverlapAboveFraction(t *testing.T) {
	line := models.Line{Y0: 700, Y1: 710}
	fills := []models.Fill{
		{Rect: models.Rect{X0: 100, X1: 102, Y0: 698, Y1: 712}, Opacity: 0.95},
		{Rect: models.Rect{X0: 200, X1: 202, Y0: 600, Y1: 601}, Opacity: 0.95},
	}
	got := Separators(line, fills, 0.9, 0.66)
	require.Len(t, got, 2)
	assert.Equal(t, 100.0, got[0])
}
