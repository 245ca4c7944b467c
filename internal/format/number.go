package format

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceOrPlusRegex = regexp.MustCompile(`\s+|\+`)
var parenNegativeRegex = regexp.MustCompile(`\(([\d.,]+)\)`)
var thousandsSeparatorRegex = regexp.MustCompile(`[,.](\d{3})`)

// ParseNumber parses a table cell into a float64: stripping whitespace and
// plus signs, turning a parenthesized amount into a negative number,
// dropping thousands separators (a comma or period immediately followed by
// three digits), and normalizing the remaining decimal comma to a
// period. Returns false when the cleaned text isn't a valid number.
func ParseNumber(text string) (float64, bool) {
	text = whitespaceOrPlusRegex.ReplaceAllString(text, "")
	text = parenNegativeRegex.ReplaceAllString(text, "-$1")
	text = stripThousandsSeparators(text)
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))

	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// stripThousandsSeparators repeatedly removes a comma/period that is
// immediately followed by three digits, mirroring the source's
// lookahead-based `[,.](?=\d{3})`: RE2 has no lookahead, so the match
// includes the digits and only the separator byte is cut out. Digits after
// the third are not inspected, so "1.2345" becomes "12345".
func stripThousandsSeparators(s string) string {
	for {
		loc := thousandsSeparatorRegex.FindStringSubmatchIndex(s)
		if loc == nil {
			return s
		}
		sepStart, sepEnd := loc[0], loc[0]+1
		s = s[:sepStart] + s[sepEnd:]
	}
}
