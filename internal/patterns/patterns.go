// Package patterns holds the regular expressions and lookup tables shared
// between the table reconstruction stage and the value formatting stage:
// the date and units patterns a header row is recognized by, and the
// currency/magnitude surface-form maps a parsed unit resolves to.
package patterns

import "regexp"

// UnitsMap resolves a currency surface form (lowercased) to its canonical
// ISO code.
var UnitsMap = map[string]string{
	"€":              "EUR",
	"eur":            "EUR",
	"euro":           "EUR",
	"euros":          "EUR",
	"d'euros":        "EUR",
	"d´euros":        "EUR",
	"$":              "USD",
	"us$":            "USD",
	"usd":            "USD",
	"dollar":         "USD",
	"dollars":        "USD",
	"us dollar":      "USD",
	"us dollars":     "USD",
	"£":              "GBP",
	"gbp":            "GBP",
	"pound":          "GBP",
	"pounds":         "GBP",
	"nok":            "NOK",
	"norwegian krone": "NOK",
	"kroner":         "NOK",
	"kr":             "NOK",
	"dkk":            "DKK",
	"sek":            "SEK",
	"pln":            "PLN",
	"¥":              "JPY",
	"jpy":            "JPY",
	"yen":            "JPY",
	"yens":           "JPY",
	"japanese yen":   "JPY",
	"japanese yens":  "JPY",
}

// MultipliersMap resolves a magnitude surface form (lowercased) to the power
// of ten it scales a value by.
var MultipliersMap = map[string]float64{
	"million":  1e6,
	"millions": 1e6,
	"millions ": 1e6,
	"miljoen":  1e6,
	"m":        1e6,
	"thousand": 1e3,
	"thousands": 1e3,
	"millier":  1e3,
	"milliers": 1e3,
	"mille":    1e3,
	"duizend":  1e3,
	"tusen":    1e3,
	"tusenvis": 1e3,
	"k":        1e3,
	"'000":     1e3,
	"´000":     1e3,
	"‘000":     1e3,
	"’000":     1e3,
	"1,000":    1e3,
	"1 000":    1e3,
	"1000":     1e3,
	"000":      1e3,
}

// DateRegexes lists every surface form a column header's date can take,
// tried in order. Each is wrapped in word boundaries.
var DateRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b1er\s+semestre\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b2[eè]me\s+semestre\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:1st|first)\s+half[-\s]?year\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:2nd|second)\s+half[-\s]?year\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b[SHQ]\d\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b20\d{2}\s+[SHQ]\d\b`),
	regexp.MustCompile(`\b20\d{2}[/.\-]\d{1,2}[/.\-]\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*,?\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b20\d{2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2}\b`),
	regexp.MustCompile(`\b20\d{2}[/.\-]\d{2}\b`),
	regexp.MustCompile(`\b\d{2}[/.\-]20\d{2}\b`),
	regexp.MustCompile(`\b20\d{2}\b`),
}

// unitsAlternation and multipliersAlternation are alternations of every
// known currency and magnitude surface form respectively, longest-first so
// a multi-word form is not shadowed by a prefix.
var unitsAlternation = `(?:` + alternateMapKeys(UnitsMap) + `)`
var multipliersAlternation = `(?:` + alternateMapKeys(multiplierKeys()) + `)`

// UnitsRegex matches a units phrase in a header/title line. It has 5
// capture groups: (1) multiplier, (2) unit when the multiplier leads;
// (3) unit, (4) multiplier when the unit leads; (5) unit when it appears
// bare with no multiplier. Exactly one trio is non-empty per match.
var UnitsRegex = regexp.MustCompile(`(?i)` +
	`(` + multipliersAlternation + `)(?:\s*of)?\s*(` + unitsAlternation + `)` +
	`|(` + unitsAlternation + `)(?:\)|\s+x|\s+in)?\s*(` + multipliersAlternation + `)` +
	`|(` + unitsAlternation + `)`)

func multiplierKeys() map[string]string {
	m := make(map[string]string, len(MultipliersMap))
	for k := range MultipliersMap {
		m[k] = k
	}
	return m
}

func alternateMapKeys(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	// longest first so "us dollars" is tried before "us" or "dollar".
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len(keys[j]) > len(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	joined := keys[0]
	for _, k := range keys[1:] {
		joined += "|" + k
	}
	return joined
}
