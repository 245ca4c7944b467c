// Package metadata extracts a statement document's reporting period,
// fiscal year-end date, and auditor name from its page text.
package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	annualReportRegex = regexp.MustCompile(`(?i)a\s?n\s?n\s?u\s?[ae]\s?l|year\s+end(?:ed|ing)|(?:12|twelve)\s+months\s+end(?:ed|ing)|31\s+december|december\s+31|full(?:\s+|-)year|årsrapport|jaarverslag|fy`)
	halfyearReportRegex = regexp.MustCompile(`(?i)half(?:\s+|-)year|semi(?:\s+|-)annual|(?:6|six)\s+months\s+end(?:ed|ing)|six-month\s+period\s+ended|30\s+june|june\s+30|semestriel|halvårsrapport|halfjaarverslag|[12]h|h[12]`)
	quarterReportRegex  = regexp.MustCompile(`(?i)quarter|(?:3|three)\s+months\s+end(?:ed|ing)|trimestriel|kvartalsrapport|kwartaalrapport|[1234]q|q[1234]`)
	auditorRegex        = regexp.MustCompile(`(?i)Ernst\s+&\s+Young|EY\s+Bedrijfsrevisoren|KPMG|Deloitte|PricewaterhouseCoopers|PwC|Grant\s+Thornton`)
)

var yearEndMonthDayRegex = buildYearEndRegex(true)
var yearEndDayMonthRegex = buildYearEndRegex(false)
var yearEndNumericRegex = regexp.MustCompile(`(?i)year(?:\s+|-)end\s+(\d{1,2})[/\-](\d{1,2})`)

func buildYearEndRegex(monthFirst bool) *regexp.Regexp {
	months := strings.Join(monthNames, "|")
	if monthFirst {
		return regexp.MustCompile(`(?i)(?:year|12\s+months?|twelve(?:\s+|-)months?)(?:\s+period)?\s+end(?:ed|ing)(?:\s+on|\s+as\s+of)?[\s:]+(` + months + `)\s+(\d{1,2})`)
	}
	return regexp.MustCompile(`(?i)(?:year|12\s+months?|twelve(?:\s+|-)months?)(?:\s+period)?\s+end(?:ed|ing)(?:\s+on|\s+as\s+of)?[\s:]+(\d{1,2})\s+(` + months + `)`)
}

// Metadata holds everything MetadataExtractor recovers from a document.
type Metadata struct {
	IsAnnual   bool
	HasPeriod  bool // false when no annual/half-year/quarter phrase was found at all
	Year       string
	Period     string // "FY", "H1", "H2", "Q1".."Q4", or "N/A"
	YearEnd    string // e.g. "December 31"
	AuditorName string
}

// precededByWordOrHyphen reports whether the rune immediately before pos in
// text is a letter, digit, underscore or hyphen: an approximation of the
// source's per-alternative negative lookbehinds (RE2 has no lookbehind
// support), applied uniformly rather than alternative-by-alternative.
func precededByWordOrHyphen(text string, pos int) bool {
	if pos == 0 {
		return false
	}
	r := rune(text[pos-1])
	return r == '-' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == '_'
}

// precededByHalf reports whether the text immediately before pos reads
// "half " or "half-" (case-insensitive): the source's negative lookbehind
// on year-end phrases, which excludes "half year ended" / "half-year
// ended" from being read as a full fiscal year end.
func precededByHalf(text string, pos int) bool {
	start := pos - 5
	if start < 0 {
		start = 0
	}
	prefix := strings.ToLower(text[start:pos])
	return strings.HasSuffix(prefix, "half ") || strings.HasSuffix(prefix, "half-")
}

func firstAcceptedMatch(re *regexp.Regexp, text string, reject func(string, int) bool) (int, bool) {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if !reject(text, loc[0]) {
			return loc[0], true
		}
	}
	return 0, false
}

// ExtractPeriodData classifies a document's reporting period from its text,
// given the statement's own reference date: whichever of the annual,
// half-year or quarter phrases appears earliest in the text decides the
// report type, and the reference date's day-of-year picks the half/quarter
// label within that type.
func ExtractPeriodData(date, text string) (isAnnual bool, year, period string, hasPeriod bool) {
	type candidate struct {
		kind string
		pos  int
	}
	var best *candidate

	consider := func(kind string, re *regexp.Regexp, reject func(string, int) bool) {
		pos, ok := firstAcceptedMatch(re, text, reject)
		if !ok {
			return
		}
		if best == nil || pos < best.pos {
			best = &candidate{kind: kind, pos: pos}
		}
	}

	consider("annual", annualReportRegex, precededByWordOrHyphen)
	consider("halfyear", halfyearReportRegex, func(string, int) bool { return false })
	consider("quarter", quarterReportRegex, func(string, int) bool { return false })

	t, err := time.Parse("2006-01-02", date)
	if err != nil || len(date) < 4 {
		return false, "", "N/A", false
	}
	yr := date[:4]
	daysElapsed := int(t.Sub(time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	if best == nil {
		return false, yr, "N/A", false
	}

	switch best.kind {
	case "annual":
		return true, yr, "FY", true
	case "halfyear":
		p := "H2"
		if daysElapsed >= 91 && daysElapsed <= 273 {
			p = "H1"
		}
		return false, yr, p, true
	default: // quarter
		var p string
		switch {
		case daysElapsed >= 45 && daysElapsed <= 136:
			p = "Q1"
		case daysElapsed >= 137 && daysElapsed <= 228:
			p = "Q2"
		case daysElapsed >= 229 && daysElapsed <= 319:
			p = "Q3"
		default:
			p = "Q4"
		}
		return false, yr, p, true
	}
}

// ExtractYearEnd locates the fiscal year-end phrase ("year ended 31
// December", "year ended December 31", or "year-end 12/31") and returns it
// as "<Month> <day>".
func ExtractYearEnd(text string) (string, bool) {
	if loc := yearEndMonthDayRegex.FindStringSubmatchIndex(text); loc != nil && !precededByHalf(text, loc[0]) {
		m := yearEndMonthDayRegex.FindStringSubmatch(text)
		return fmt.Sprintf("%s %s", strings.Title(strings.ToLower(m[1])), m[2]), true
	}
	if loc := yearEndDayMonthRegex.FindStringSubmatchIndex(text); loc != nil && !precededByHalf(text, loc[0]) {
		m := yearEndDayMonthRegex.FindStringSubmatch(text)
		return fmt.Sprintf("%s %s", strings.Title(strings.ToLower(m[2])), m[1]), true
	}
	if m := yearEndNumericRegex.FindStringSubmatch(text); m != nil {
		a, erra := strconv.Atoi(m[1])
		b, errb := strconv.Atoi(m[2])
		if erra == nil && errb == nil {
			if a >= 1 && a <= 12 {
				return fmt.Sprintf("%s %d", monthNames[a-1], b), true
			}
			if b >= 1 && b <= 12 {
				return fmt.Sprintf("%s %d", monthNames[b-1], a), true
			}
		}
	}
	return "", false
}

// ExtractAuditorName returns the first recognized Big-Four-or-similar
// auditor name mentioned in text.
func ExtractAuditorName(text string) (string, bool) {
	m := auditorRegex.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}

// Extract runs the period/year-end/auditor extractors over a document's
// page texts, falling back to the statement URL for the period when no
// page text carries a recognizable period phrase.
func Extract(statementURL, referenceDate string, pageTexts []string) Metadata {
	var md Metadata
	var periodSet, yearEndSet, auditorSet bool

	for _, text := range pageTexts {
		if !periodSet {
			isAnnual, year, period, ok := ExtractPeriodData(referenceDate, text)
			if ok {
				md.IsAnnual, md.Year, md.Period, md.HasPeriod = isAnnual, year, period, true
				periodSet = true
			}
		}
		if !yearEndSet {
			if ye, ok := ExtractYearEnd(text); ok {
				md.YearEnd = ye
				yearEndSet = true
			}
		}
		if !auditorSet {
			if name, ok := ExtractAuditorName(text); ok {
				md.AuditorName = name
				auditorSet = true
			}
		}
		if periodSet && yearEndSet && auditorSet {
			break
		}
	}

	if !periodSet {
		isAnnual, year, period, ok := ExtractPeriodData(referenceDate, statementURL)
		md.IsAnnual, md.Year, md.Period, md.HasPeriod = isAnnual, year, period, ok
	}

	return md
}
