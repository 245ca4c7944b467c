package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `
<table>
  <tr><td><a data-symbol="ABC" data-isin="FR0000000001" data-market="Euronext Paris" href="/issuers/abc">ABC Corp</a></td></tr>
  <tr><td><a data-symbol="XYZ" data-isin="FR0000000002" data-market="Euronext Paris" href="/issuers/xyz">XYZ SA</a></td></tr>
  <tr><td><a href="/news/unrelated">Unrelated link</a></td></tr>
</table>`

func TestParseCompaniesExtractsOnlyDataSymbolRows(t *testing.T) {
	companies, err := parseCompanies(listingHTML)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "ABC", companies[0].Symbol)
	assert.Equal(t, "FR0000000001", companies[0].ISIN)
	assert.Equal(t, "Euronext Paris", companies[0].Market)
	assert.Equal(t, "/issuers/abc", companies[0].InfoURL)
}

const companyPageHTML = `
<div>
  <a href="/reports/2023-annual-report.pdf">2023 Annual Report</a>
  <a href="/reports/press-release.pdf">Press Release</a>
  <a href="/about">About us</a>
</div>`

func TestParseStatementLinksFiltersByText(t *testing.T) {
	urls, err := parseStatementLinks(companyPageHTML, "annual report")
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "/reports/2023-annual-report.pdf", urls[0])
}

func TestParseStatementLinksEmptyFilterKeepsEveryLink(t *testing.T) {
	urls, err := parseStatementLinks(companyPageHTML, "")
	require.NoError(t, err)
	assert.Len(t, urls, 3)
}
