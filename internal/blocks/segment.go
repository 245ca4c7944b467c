// -----------------------------------------------------------------------
// BlockSegmenter - split a line's words into blocks at wide gaps and
// drawn column separators
// -----------------------------------------------------------------------

package blocks

import (
	"strings"

	"github.com/eurostatements/statementcore/pkg/models"
)

// Separators returns the X-positions of every fill that overlaps a line's
// Y-range by more than overlapFraction: candidate drawn column rules.
func Separators(line models.Line, fills []models.Fill, fillOpacity, overlapFraction float64) []float64 {
	lineHeight := line.Y1 - line.Y0
	var xs []float64

	for _, fill := range fills {
		if fill.Opacity <= fillOpacity {
			continue
		}
		maxY0 := max(line.Y0, fill.Rect.Y0)
		minY1 := min(line.Y1, fill.Rect.Y1)
		overlap := max(0, minY1-maxY0)
		var ratio float64
		if lineHeight != 0 {
			ratio = overlap / lineHeight
		}
		if ratio > overlapFraction {
			xs = append(xs, fill.Rect.X0, fill.Rect.X1)
		}
	}
	return xs
}

// Segment splits a line's words into blocks: a new block starts whenever
// the gap to the next word exceeds gapFactor times the line's average
// character width, or a separator X-position falls strictly between the
// two words.
func Segment(line models.Line, separators []float64, gapFactor float64) []*models.Block {
	words := line.Words
	if len(words) == 0 {
		return nil
	}

	avgCharWidth := averageCharWidth(words)
	gapThreshold := gapFactor * avgCharWidth

	var groups [][]models.Word
	groups = append(groups, nil)
	for i, w := range words {
		groups[len(groups)-1] = append(groups[len(groups)-1], w)

		if i == len(words)-1 {
			continue
		}
		next := words[i+1]
		gap := next.X0 - w.X1
		hasSeparator := false
		for _, sep := range separators {
			if w.X1 < sep && sep < next.X0 {
				hasSeparator = true
				break
			}
		}
		if gap > gapThreshold || hasSeparator {
			groups = append(groups, nil)
		}
	}

	result := make([]*models.Block, 0, len(groups))
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		texts := make([]string, len(g))
		for i, w := range g {
			texts[i] = w.Text
		}
		result = append(result, &models.Block{
			X0:   g[0].X0,
			X1:   g[len(g)-1].X1,
			Text: strings.Join(texts, " "),
		})
	}
	return result
}

func averageCharWidth(words []models.Word) float64 {
	var textLength float64
	var charCount int
	for _, w := range words {
		textLength += w.X1 - w.X0
		charCount += len([]rune(w.Text))
	}
	if charCount == 0 {
		return 1e5
	}
	return textLength / float64(charCount)
}
