package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/internal/metadata"
	"github.com/eurostatements/statementcore/internal/statements"
	"github.com/eurostatements/statementcore/internal/taxonomy"
	"github.com/eurostatements/statementcore/pkg/models"
)

func v(f float64) *float64 { return &f }

func TestNoKeyPagesErrorReportsMissingStatements(t *testing.T) {
	err := &NoKeyPagesError{Found: map[string]bool{
		"income_statement":        true,
		"balance_sheet_statement": false,
		"cash_flow_statement":     true,
	}}
	assert.Contains(t, err.Error(), "missing at least one canonical statement")
}

// TestZipByDateBuildsOneStatementPerCommonDate exercises the same
// date-zipping composition Process performs after Mapper.Map, without
// going through pdfaccess: formatted tables in, one Statement per shared
// report date out.
func TestZipByDateBuildsOneStatementPerCommonDate(t *testing.T) {
	tax, err := taxonomy.Load("")
	require.NoError(t, err)
	mapper := statements.NewMapper(tax)

	income := models.FormattedTable{
		Title: "Consolidated income statement",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Revenue", Value: v(1000)},
			}},
		},
	}
	balance := models.FormattedTable{
		Title: "Consolidated balance sheet",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Total assets", Value: v(5000)},
			}},
		},
	}
	cashFlow := models.FormattedTable{
		Title: "Consolidated statement of cash flows",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Net change in cash", Value: v(10)},
			}},
		},
	}

	set := mapper.Map([]models.FormattedTable{income, balance, cashFlow})
	require.Len(t, set.Income, 1)
	require.Len(t, set.Balance, 1)
	require.Len(t, set.CashFlow, 1)

	n := len(set.Income)
	results := make([]Statement, 0, n)
	for i := 0; i < n; i++ {
		date := set.Income[i].Date
		md := metadata.Extract("https://example.test/statement.pdf", date, []string{"annual report for the year ended 31 December 2023"})
		results = append(results, Statement{
			Metadata: md,
			Income:   set.Income[i],
			Balance:  set.Balance[i],
			CashFlow: set.CashFlow[i],
		})
	}

	require.Len(t, results, 1)
	assert.Equal(t, "2023-12-31", results[0].Income.Date)
	assert.Equal(t, "2023-12-31", results[0].Balance.Date)
	assert.True(t, results[0].Metadata.IsAnnual)
	assert.Equal(t, "FY", results[0].Metadata.Period)
}
