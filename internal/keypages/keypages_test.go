package keypages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurostatements/statementcore/internal/taxonomy"
)

func TestScanKeepsPagesMatchingAnyTitleAndReportsCompletion(t *testing.T) {
	tax, err := taxonomy.Load("")
	require.NoError(t, err)
	f := NewFilter(tax)

	pages := []string{
		"Cover page with no statements",
		"Consolidated income statement\nRevenue 100",
		"Consolidated balance sheet\nTotal assets 100",
		"Consolidated statement of cash flows\nNet cash 10",
		"Notes to the financial statements",
	}

	result := f.Scan(pages)

	assert.Equal(t, []int{2, 3, 4}, result.KeepPages)
	assert.True(t, result.Complete)
	for kind, ok := range result.Found {
		assert.Truef(t, ok, "expected statement %q to be found", kind)
	}
}

func TestScanIncompleteWhenAStatementTitleIsMissing(t *testing.T) {
	tax, err := taxonomy.Load("")
	require.NoError(t, err)
	f := NewFilter(tax)

	pages := []string{
		"Consolidated income statement\nRevenue 100",
	}

	result := f.Scan(pages)

	assert.False(t, result.Complete)
}
