package statements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/internal/taxonomy"
	"github.com/eurostatements/statementcore/pkg/models"
)

func v(f float64) *float64 { return &f }

func TestSimilarityRatioIdenticalStringsIsOne(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityRatio("net income", "net income"))
}

func TestSimilarityRatioPrefersCloserLabel(t *testing.T) {
	close := SimilarityRatio("net income", "net income loss")
	far := SimilarityRatio("net income attributable to owners of the parent", "net income loss")
	assert.Greater(t, close, far)
}

func TestRepairIncomeStatementFillsPretaxAndNetIncome(t *testing.T) {
	row := models.StatementRow{Items: map[string]*float64{
		"operating_income":             v(100),
		"non_operating_income_expense": v(-10),
		"tax_provision":                v(20),
	}}

	row = Repair(models.IncomeStatement, row)

	require.NotNil(t, row.Items["pretax_income"])
	assert.Equal(t, 90.0, *row.Items["pretax_income"])
	require.NotNil(t, row.Items["net_income"])
	assert.Equal(t, 70.0, *row.Items["net_income"])
}

func TestRepairBalanceSheetFillsTotalAssets(t *testing.T) {
	row := models.StatementRow{Items: map[string]*float64{
		"current_assets":     v(40),
		"non_current_assets": v(60),
	}}

	row = Repair(models.BalanceSheet, row)

	require.NotNil(t, row.Items["total_assets"])
	assert.Equal(t, 100.0, *row.Items["total_assets"])
}

func TestRepairCashFlowFillsEndPosition(t *testing.T) {
	row := models.StatementRow{Items: map[string]*float64{
		"beginning_cash_position": v(10),
		"change_in_cash":          v(5),
	}}

	row = Repair(models.CashFlowStatement, row)

	require.NotNil(t, row.Items["end_cash_position"])
	assert.Equal(t, 15.0, *row.Items["end_cash_position"])
}

func TestMapperSelectsBestMatchingTableAndRestrictsToCommonDates(t *testing.T) {
	tax, err := taxonomy.Load("")
	require.NoError(t, err)
	m := NewMapper(tax)

	income := models.FormattedTable{
		Title: "Consolidated income statement",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Revenue", Value: v(1000)},
				{Label: "Operating income", Value: v(200)},
				{Label: "Non operating income", Value: v(-20)},
				{Label: "Income tax", Value: v(30)},
			}},
			{Date: "2022-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Revenue", Value: v(900)},
			}},
		},
	}
	balance := models.FormattedTable{
		Title: "Consolidated balance sheet",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Current assets", Value: v(500)},
				{Label: "Non current assets", Value: v(700)},
			}},
		},
	}
	cashFlow := models.FormattedTable{
		Title: "Consolidated statement of cash flows",
		Rows: []models.FormattedRow{
			{Date: "2023-12-31", Units: "EUR", Values: []models.LabeledValue{
				{Label: "Cash at beginning of period", Value: v(50)},
				{Label: "Net change in cash", Value: v(10)},
			}},
		},
	}

	set := m.Map([]models.FormattedTable{income, balance, cashFlow})

	require.Len(t, set.Income, 1)
	assert.Equal(t, "2023-12-31", set.Income[0].Date)
	require.NotNil(t, set.Income[0].Items["pretax_income"])
	assert.Equal(t, 180.0, *set.Income[0].Items["pretax_income"])

	require.Len(t, set.Balance, 1)
	require.NotNil(t, set.Balance[0].Items["total_assets"])
	assert.Equal(t, 1200.0, *set.Balance[0].Items["total_assets"])

	require.Len(t, set.CashFlow, 1)
	require.NotNil(t, set.CashFlow[0].Items["end_cash_position"])
	assert.Equal(t, 60.0, *set.CashFlow[0].Items["end_cash_position"])
}
