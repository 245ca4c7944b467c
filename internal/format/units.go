package format

import (
	"strings"

	"github.com/eurostatements/statementcore/internal/patterns"
)

// ExtractUnits locates a units phrase (currency plus an optional magnitude
// multiplier) in text and resolves it to a canonical currency code and its
// multiplier, defaulting the multiplier to 1 when no magnitude word is
// present. Returns false when no currency surface form is found at all.
func ExtractUnits(text string) (string, float64, bool) {
	m := patterns.UnitsRegex.FindStringSubmatch(text)
	if m == nil {
		return "", 0, false
	}

	switch {
	case m[1] != "" && m[2] != "":
		unit, ok1 := patterns.UnitsMap[strings.ToLower(m[2])]
		mult, ok2 := patterns.MultipliersMap[strings.ToLower(m[1])]
		if ok1 && ok2 {
			return unit, mult, true
		}
	case m[3] != "" && m[4] != "":
		unit, ok1 := patterns.UnitsMap[strings.ToLower(m[3])]
		mult, ok2 := patterns.MultipliersMap[strings.ToLower(m[4])]
		if ok1 && ok2 {
			return unit, mult, true
		}
	case m[5] != "":
		if unit, ok := patterns.UnitsMap[strings.ToLower(m[5])]; ok {
			return unit, 1, true
		}
	}
	return "", 0, false
}
