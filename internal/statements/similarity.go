package statements

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var jaroWinkler = newCaseInsensitiveJaroWinkler()

func newCaseInsensitiveJaroWinkler() *metrics.JaroWinkler {
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false
	return jw
}

// SimilarityRatio scores how similar two strings are on a 0..1 scale using
// Jaro-Winkler similarity. StatementMapper uses this to pick the raw
// column label that reads closest to a canonical item's own name whenever
// more than one label matches that item's taxonomy regex.
func SimilarityRatio(a, b string) float64 {
	return strutil.Similarity(a, b, jaroWinkler)
}
