package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/pkg/models"
)

func TestLoadEmbedded(t *testing.T) {
	tx, err := Load("")
	require.NoError(t, err)
	require.Len(t, tx.Statements, 3)

	income := tx.Statements[models.IncomeStatement]
	require.NotNil(t, income)
	assert.Contains(t, income.ItemNames, "revenue")
	assert.Contains(t, income.ItemNames, "net_income")

	assert.True(t, income.TitleRegex.MatchString("CONSOLIDATED INCOME STATEMENT"))
	assert.True(t, income.TitleRegex.MatchString("compte de resultat"))
}

func TestItemRegexMatchesAcrossInterveningWords(t *testing.T) {
	tx, err := Load("")
	require.NoError(t, err)

	balance := tx.Statements[models.BalanceSheet]
	re := balance.ItemRegex["total_assets"]
	require.NotNil(t, re)

	match := re.FindStringSubmatch("Total consolidated assets as at 31 December")
	require.NotNil(t, match)
	assert.Equal(t, "Total", match[1])
	assert.Equal(t, "assets", match[2])
}

func TestEveryStatementHasTitlesAndItems(t *testing.T) {
	tx, err := Load("")
	require.NoError(t, err)

	for _, kind := range models.AllStatementKinds {
		st := tx.Statements[kind]
		require.NotNil(t, st, "missing statement %s", kind)
		assert.NotEmpty(t, st.ItemNames)
		assert.NotNil(t, st.TitleRegex)
	}
}
