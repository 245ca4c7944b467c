// Package format turns a cleaned table's text cells into typed values: a
// date and a currency/magnitude for each value column, and a parsed number
// for each cell, applying the document's or table's detected multiplier.
package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eurostatements/statementcore/internal/patterns"
)

var periodRegex = regexp.MustCompile(`(?i)(?:1er|2[eè]me)\s+semestre|(?:1st|first|2nd|second)\s+half[-\s]+year|[SHQ]\d`)
var firstHalfRegex = regexp.MustCompile(`(?i)1|first|1er`)
var bareYearRegex = regexp.MustCompile(`^20\d{2}$`)
var yearMonthRegex = regexp.MustCompile(`^(?:20\d{2}[/.\-]\d{2}|\d{2}[/.\-]20\d{2})$`)
var yearMonthSplit = regexp.MustCompile(`[/.\-]`)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January, "janvier": time.January,
	"feb": time.February, "february": time.February, "fevrier": time.February, "février": time.February,
	"mar": time.March, "march": time.March, "mars": time.March,
	"apr": time.April, "april": time.April, "avril": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June, "june": time.June, "juin": time.June,
	"jul": time.July, "july": time.July, "juillet": time.July,
	"aug": time.August, "august": time.August, "aout": time.August, "août": time.August,
	"sep": time.September, "sept": time.September, "september": time.September, "septembre": time.September,
	"oct": time.October, "october": time.October, "octobre": time.October,
	"nov": time.November, "november": time.November, "novembre": time.November,
	"dec": time.December, "december": time.December, "decembre": time.December, "décembre": time.December,
}

// ExtractDate locates the leftmost date surface form in text (trying every
// pattern in patterns.DateRegexes and keeping the earliest match, breaking
// ties by pattern order) and resolves it to an ISO "YYYY-MM-DD" string: the
// last day of the period the column header names. Returns false when no
// pattern matches or the matched text fails to resolve to a real date.
func ExtractDate(text string) (string, bool) {
	bestStart, bestEnd := -1, -1
	for _, re := range patterns.DateRegexes {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if bestStart == -1 || loc[0] < bestStart {
			bestStart, bestEnd = loc[0], loc[1]
		}
	}
	if bestStart == -1 {
		return "", false
	}
	date := text[bestStart:bestEnd]

	if period := periodRegex.FindString(date); period != "" {
		yearText := strings.TrimSpace(strings.Replace(date, period, "", 1))
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return "", false
		}

		var month int
		if len(period) == 2 {
			digit := int(period[1] - '0')
			if strings.EqualFold(period[:1], "q") {
				month = digit * 3
			} else {
				month = digit * 6
			}
		} else if firstHalfRegex.MatchString(period) {
			month = 6
		} else {
			month = 12
		}

		return endOfMonth(year, month), true
	}

	if bareYearRegex.MatchString(date) {
		year, _ := strconv.Atoi(date)
		return endOfMonth(year, 12), true
	}

	if yearMonthRegex.MatchString(date) {
		parts := yearMonthSplit.Split(date, -1)
		if len(parts) != 2 {
			return "", false
		}
		a, erra := strconv.Atoi(parts[0])
		b, errb := strconv.Atoi(parts[1])
		if erra != nil || errb != nil {
			return "", false
		}
		year, month := a, b
		if b > a {
			year, month = b, a
		}
		return endOfMonth(year, month), true
	}

	if t, ok := parseGenericDate(date); ok {
		return t.Format("2006-01-02"), true
	}
	return "", false
}

// endOfMonth returns the ISO date of the last day of the given month,
// treating month==12 as rolling into January of the following year the
// way the source period arithmetic does (month+1 then minus one day).
func endOfMonth(year, month int) string {
	if month == 12 {
		year, month = year+1, 1
	} else {
		month++
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return t.Format("2006-01-02")
}

var numericDMYRegex = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})$`)
var numericYMDRegex = regexp.MustCompile(`^(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})$`)
var monthDayYearRegex = regexp.MustCompile(`(?i)^([A-Za-zÀ-ÿ]+)[\s,]+(\d{1,2}),?[\s,]+(\d{4})$`)
var dayMonthYearRegex = regexp.MustCompile(`(?i)^(\d{1,2})[\s,]+([A-Za-zÀ-ÿ]+),?[\s,]+(\d{4})$`)
var yearMonthDayRegex = regexp.MustCompile(`(?i)^(\d{4})[\s,]+([A-Za-zÀ-ÿ]+)[\s,]+(\d{1,2})$`)

// parseGenericDate resolves the remaining surface forms: numeric D/M/Y and
// Y/M/D triples and the three month-name orderings, in lieu of a
// general-purpose multi-language date parser (none exists anywhere in the
// retrieved example pack, so this is hand-rolled against the exact forms
// patterns.DateRegexes recognizes rather than a generic parser).
func parseGenericDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	if m := numericYMDRegex.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
	}
	if m := numericDMYRegex.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if y < 100 {
			y += 2000
		}
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC), true
	}
	if m := monthDayYearRegex.FindStringSubmatch(s); m != nil {
		mo, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
	}
	if m := dayMonthYearRegex.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		y, _ := strconv.Atoi(m[3])
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
	}
	if m := yearMonthDayRegex.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
