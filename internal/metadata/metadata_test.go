package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPeriodDataAnnual(t *testing.T) {
	isAnnual, year, period, ok := ExtractPeriodData("2023-12-31", "This is our annual report for the year ended 31 December 2023.")
	require.True(t, ok)
	assert.True(t, isAnnual)
	assert.Equal(t, "2023", year)
	assert.Equal(t, "FY", period)
}

func TestExtractPeriodDataHalfYear(t *testing.T) {
	isAnnual, year, period, ok := ExtractPeriodData("2023-06-30", "half-year report for the six months ended 30 June 2023")
	require.True(t, ok)
	assert.False(t, isAnnual)
	assert.Equal(t, "2023", year)
	assert.Equal(t, "H1", period)
}

func TestExtractPeriodDataQuarter(t *testing.T) {
	isAnnual, year, period, ok := ExtractPeriodData("2023-09-30", "third quarter results")
	require.True(t, ok)
	assert.False(t, isAnnual)
	assert.Equal(t, "Q3", period)
}

func TestExtractPeriodDataNoMatch(t *testing.T) {
	_, _, period, ok := ExtractPeriodData("2023-09-30", "nothing relevant here")
	assert.False(t, ok)
	assert.Equal(t, "N/A", period)
}

func TestExtractYearEndDayThenMonth(t *testing.T) {
	got, ok := ExtractYearEnd("the year ended 31 December")
	require.True(t, ok)
	assert.Equal(t, "December 31", got)
}

func TestExtractYearEndMonthThenDay(t *testing.T) {
	got, ok := ExtractYearEnd("year ended December 31")
	require.True(t, ok)
	assert.Equal(t, "December 31", got)
}

func TestExtractYearEndRejectsHalfYear(t *testing.T) {
	_, ok := ExtractYearEnd("half-year ended 30 June")
	assert.False(t, ok)
}

func TestExtractAuditorName(t *testing.T) {
	got, ok := ExtractAuditorName("Audited by Deloitte on behalf of the board")
	require.True(t, ok)
	assert.Equal(t, "Deloitte", got)
}

func TestExtractAuditorNameNoMatch(t *testing.T) {
	_, ok := ExtractAuditorName("no auditor mentioned")
	assert.False(t, ok)
}
