// -----------------------------------------------------------------------
// LineBuilder - group positioned glyphs into lines and clean them up
// -----------------------------------------------------------------------

package lines

import (
	"math"
	"regexp"
	"sort"

	"github.com/eurostatements/statementcore/pkg/models"
)

const (
	// yRoundingTolerance is the Y-coordinate rounding granularity used to
	// key glyphs into the same visual line.
	yRoundingTolerance = 0.1
	// wordGapFraction bounds the horizontal gap, as a fraction of the
	// following glyph run's height, below which two adjacent glyph runs on
	// the same line are joined into one word rather than split.
	wordGapFraction = 0.2
)

var negativeNumberRegex = regexp.MustCompile(`^[\d.,]`)

// GroupGlyphsIntoWords merges adjacent same-line glyph runs into
// whitespace-delimited words. unipdf exposes per-glyph-run marks; the rest
// of the pipeline expects PyMuPDF-style pre-grouped words, so this is the
// seam that bridges the two.
func GroupGlyphsIntoWords(glyphs []models.Word) []models.Word {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := append([]models.Word(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y0-sorted[j].Y0) > yRoundingTolerance {
			return sorted[i].Y0 > sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var words []models.Word
	for _, g := range sorted {
		if g.Text == "" {
			continue
		}
		height := g.Y1 - g.Y0

		if len(words) > 0 {
			last := &words[len(words)-1]
			sameLine := math.Abs(last.Y0-g.Y0) <= yRoundingTolerance
			gap := g.X0 - last.X1
			threshold := wordGapFraction * height
			if sameLine && gap >= 0 && gap <= threshold && !containsWhitespace(last.Text) {
				last.X1 = g.X1
				last.Text += g.Text
				continue
			}
		}
		words = append(words, g)
	}
	return words
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			return true
		}
	}
	return false
}

// Build groups words into lines keyed by rounded Y-range, merges
// overlapping lines, removes duplicate/overprinted words, and merges
// split negative numbers, in that order.
func Build(words []models.Word) []models.Line {
	byKey := map[[2]float64][]models.Word{}
	var keys [][2]float64

	for _, w := range words {
		key := [2]float64{round(w.Y0), round(w.Y1)}
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], w)
	}

	lines := make([]models.Line, 0, len(keys))
	for _, key := range keys {
		ws := byKey[key]
		sort.Slice(ws, func(i, j int) bool { return ws[i].X0 < ws[j].X0 })
		lines = append(lines, models.Line{Y0: key[0], Y1: key[1], Words: ws})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y0 > lines[j].Y0 })

	lines = mergeLines(lines)
	lines = removeOverlappingWords(lines)
	lines = mergeNegativeNumbers(lines)
	return lines
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}

// mergeLines folds a line into its predecessor when their Y-ranges
// overlap by more than half the average line height, or one fully
// contains the other.
func mergeLines(lines []models.Line) []models.Line {
	idx := 1
	for idx < len(lines) {
		prev := lines[idx-1]
		cur := lines[idx]
		lineHeight := ((prev.Y1 - prev.Y0) + (cur.Y1 - cur.Y0)) / 2
		overlap := math.Min(prev.Y1, cur.Y1) - math.Max(prev.Y0, cur.Y0)
		var overlapRatio float64
		if lineHeight != 0 {
			overlapRatio = overlap / lineHeight
		}

		contains := (prev.Y0 <= cur.Y0 && cur.Y1 <= prev.Y1) || (cur.Y0 <= prev.Y0 && prev.Y1 <= cur.Y1)
		if contains || overlapRatio > 0.5 {
			merged := models.Line{
				Y0:    math.Min(prev.Y0, cur.Y0),
				Y1:    math.Max(prev.Y1, cur.Y1),
				Words: append(append([]models.Word{}, prev.Words...), cur.Words...),
			}
			lines[idx-1] = merged
			lines = append(lines[:idx], lines[idx+1:]...)
		} else {
			idx++
		}
	}

	for i, ln := range lines {
		lines[i].Words = dedupWords(ln.Words)
	}
	return lines
}

func dedupWords(words []models.Word) []models.Word {
	seen := map[models.Word]bool{}
	out := make([]models.Word, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X0 < out[j].X0 })
	return out
}

// removeOverlappingWords drops words that are a near-exact horizontal
// duplicate of another word with the same text (overprint artifacts), then
// drops words whose text is a prefix of a word sharing its X0 (partial
// re-render at the same origin).
func removeOverlappingWords(lines []models.Line) []models.Line {
	for li, line := range lines {
		words := line.Words

		wordIdx := 0
		for wordIdx < len(words) {
			w := words[wordIdx]
			var drop []int
			for j := wordIdx + 1; j < len(words); j++ {
				other := words[j]
				if w.Text != other.Text {
					continue
				}
				maxX0 := math.Max(w.X0, other.X0)
				minX1 := math.Min(w.X1, other.X1)
				overlap := math.Max(0, minX1-maxX0)
				width := w.X1 - w.X0
				var ratio float64
				if width != 0 {
					ratio = overlap / width
				}
				if ratio > 0.9 {
					drop = append(drop, j)
				}
			}
			words = removeIndices(words, drop)
			wordIdx++
		}

		wordIdx = 0
		for wordIdx < len(words) {
			w := words[wordIdx]
			var drop []int
			for j := wordIdx + 1; j < len(words); j++ {
				other := words[j]
				if w.X0 != other.X0 {
					continue
				}
				switch {
				case hasPrefixRune(w.Text, other.Text):
					drop = append(drop, j)
				case hasPrefixRune(other.Text, w.Text):
					drop = append(drop, wordIdx)
				}
			}
			words = removeIndices(words, drop)
			wordIdx++
		}

		lines[li].Words = words
	}
	return lines
}

func hasPrefixRune(s, prefix string) bool {
	return len(prefix) > 0 && len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func removeIndices(words []models.Word, drop []int) []models.Word {
	if len(drop) == 0 {
		return words
	}
	skip := map[int]bool{}
	for _, d := range drop {
		skip[d] = true
	}
	out := make([]models.Word, 0, len(words))
	for i, w := range words {
		if skip[i] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// mergeNegativeNumbers joins a lone "-" with a following number word when
// the gap between them is small, so "-" "45.2" becomes one "-45.2" word.
func mergeNegativeNumbers(lines []models.Line) []models.Line {
	for li, line := range lines {
		words := line.Words
		wordIdx := 1
		for wordIdx < len(words) {
			prev := words[wordIdx-1]
			cur := words[wordIdx]
			gap := cur.X0 - prev.X1
			if prev.Text == "-" && negativeNumberRegex.MatchString(cur.Text) && gap > 0 && gap < 5 {
				words[wordIdx-1] = models.Word{X0: prev.X0, X1: cur.X1, Y0: prev.Y0, Y1: prev.Y1, Text: prev.Text + cur.Text}
				words = append(words[:wordIdx], words[wordIdx+1:]...)
			} else {
				wordIdx++
			}
		}
		lines[li].Words = words
	}
	return lines
}
