package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDateBareYear(t *testing.T) {
	got, ok := ExtractDate("FY 2023 results")
	require.True(t, ok)
	assert.Equal(t, "2023-12-31", got)
}

func TestExtractDateHalfYear(t *testing.T) {
	got, ok := ExtractDate("S1 2023")
	require.True(t, ok)
	assert.Equal(t, "2023-06-30", got)
}

func TestExtractDateQuarter(t *testing.T) {
	got, ok := ExtractDate("Q3 2023")
	require.True(t, ok)
	assert.Equal(t, "2023-09-30", got)
}

func TestExtractDateMonthDayYear(t *testing.T) {
	got, ok := ExtractDate("December 31, 2023")
	require.True(t, ok)
	assert.Equal(t, "2023-12-31", got)
}

func TestExtractDateNoMatch(t *testing.T) {
	_, ok := ExtractDate("Revenue")
	assert.False(t, ok)
}

func TestExtractUnitsMultiplierThenUnit(t *testing.T) {
	units, multiplier, ok := ExtractUnits("in millions of EUR")
	require.True(t, ok)
	assert.Equal(t, "EUR", units)
	assert.Equal(t, 1e6, multiplier)
}

func TestExtractUnitsBareCurrency(t *testing.T) {
	units, multiplier, ok := ExtractUnits("amounts in USD")
	require.True(t, ok)
	assert.Equal(t, "USD", units)
	assert.Equal(t, 1.0, multiplier)
}

func TestParseNumberNegativeParens(t *testing.T) {
	got, ok := ParseNumber("(1,234.5)")
	require.True(t, ok)
	assert.Equal(t, -1234.5, got)
}

func TestParseNumberThousandsSeparator(t *testing.T) {
	got, ok := ParseNumber("1,234,567")
	require.True(t, ok)
	assert.Equal(t, 1234567.0, got)
}

func TestParseNumberInvalid(t *testing.T) {
	_, ok := ParseNumber("n.a.")
	assert.False(t, ok)
}

func TestFormatRowsProducesOneRowPerDate(t *testing.T) {
	rows := [][]string{
		{"", "2023", "2022"},
		{"Revenue", "1,234.5", "1,100.0"},
		{"Costs", "(500.0)", "(450.0)"},
	}

	table, units, multiplier, ok := FormatRows("Income statement in millions of EUR", rows)
	require.True(t, ok)
	assert.Equal(t, "EUR", units)
	assert.Equal(t, 1e6, multiplier)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2023-12-31", table.Rows[0].Date)

	v, found := table.Rows[0].Get("Revenue")
	require.True(t, found)
	require.NotNil(t, v)
	assert.Equal(t, 1234.5*1e6, *v)
}
