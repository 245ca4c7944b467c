// -----------------------------------------------------------------------
// BlockAligner - align one line's blocks onto another line's column grid
// -----------------------------------------------------------------------

package align

import (
	"math"

	"github.com/eurostatements/statementcore/pkg/models"
)

// gapsBetween returns the horizontal gap between every adjacent pair of
// blocks: the candidate column boundaries a line's blocks must respect to
// align onto another line's grid.
func gapsBetween(blocks []*models.Block) []models.Gap {
	if len(blocks) < 2 {
		return nil
	}
	gaps := make([]models.Gap, 0, len(blocks)-1)
	for i := 0; i < len(blocks)-1; i++ {
		gaps = append(gaps, models.Gap{X0: blocks[i].X1, X1: blocks[i+1].X0})
	}
	return gaps
}

// AlignSingleBlock places a single block into the column grid implied by
// gaps (one more column than there are gaps). Returns nil if a gap lies
// strictly inside the block (the block straddles the gap) or the block lies
// strictly inside a gap, meaning it cannot belong to a single column.
func AlignSingleBlock(block *models.Block, gaps []models.Gap) []*models.Block {
	for _, gap := range gaps {
		if (block.X0 < gap.X0 && gap.X1 < block.X1) || (gap.X0 < block.X0 && block.X1 < gap.X1) {
			return nil
		}
	}

	aligned := make([]*models.Block, len(gaps)+1)
	endFound := false
	for idx, gap := range gaps {
		if block.X0 < gap.X0 {
			aligned[idx] = block
		}
		if block.X1 < gap.X1 {
			endFound = true
			break
		}
	}
	if !endFound {
		aligned[len(aligned)-1] = block
	}
	return aligned
}

// AlignMultipleBlocks maps the blocks of a shorter line (fewer columns)
// onto the column grid of a longer line, splitting a "less" block across
// several "more" columns proportionally to its width when no single-column
// correspondence exists.
func AlignMultipleBlocks(lessBlocks, moreBlocks []*models.Block, lessGaps, moreGaps []models.Gap) []*models.Block {
	startIdx := 0
	var indices []int

	for _, lessGap := range lessGaps {
		var overlaps []float64
		for _, moreGap := range moreGaps[startIdx:] {
			maxX0 := math.Max(lessGap.X0, moreGap.X0)
			minX1 := math.Min(lessGap.X1, moreGap.X1)
			overlaps = append(overlaps, math.Max(0, minX1-maxX0))
		}

		if len(overlaps) == 0 {
			continue
		}
		bestIdx, bestOverlap := 0, overlaps[0]
		for i, v := range overlaps {
			if v > bestOverlap {
				bestIdx, bestOverlap = i, v
			}
		}
		if bestOverlap > 0 {
			indices = append(indices, startIdx+bestIdx)
			startIdx += bestIdx + 1
		}
	}

	if len(indices) != len(lessGaps) {
		return nil
	}

	aligned := make([]*models.Block, len(moreBlocks))
	boundaries := append(append([]int{}, indices...), -1)

	for idx, otherIdx := range boundaries {
		block := lessBlocks[idx]
		prevOtherIdx := 0
		if idx > 0 {
			prevOtherIdx = indices[idx-1] + 1
		}

		var otherBlocks []*models.Block
		if otherIdx == -1 {
			otherBlocks = moreBlocks[prevOtherIdx:]
		} else {
			otherBlocks = moreBlocks[prevOtherIdx : otherIdx+1]
		}

		if len(otherBlocks) == 1 {
			aligned[prevOtherIdx] = block
			continue
		}

		startOffset := closestIndexByStart(otherBlocks, block.X0)
		endOffset := closestIndexByEnd(otherBlocks[startOffset:], block.X1)
		startColumn := prevOtherIdx + startOffset
		endColumn := prevOtherIdx + startOffset + endOffset

		columnCount := endColumn - startColumn + 1
		columnWidth := (block.X1 - block.X0) / float64(columnCount)

		for c := 0; c < columnCount; c++ {
			x0 := block.X0 + float64(c)*columnWidth
			x1 := x0 + columnWidth
			aligned[startColumn+c] = &models.Block{X0: x0, X1: x1, Text: block.Text}
		}
	}

	return aligned
}

func closestIndexByStart(blocks []*models.Block, x0 float64) int {
	best, bestDiff := 0, math.Abs(x0-blocks[0].X0)
	for i, b := range blocks {
		diff := math.Abs(x0 - b.X0)
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

func closestIndexByEnd(blocks []*models.Block, x1 float64) int {
	best, bestDiff := 0, math.Abs(x1-blocks[0].X1)
	for i, b := range blocks {
		diff := math.Abs(x1 - b.X1)
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}

// AlignBlocks picks the shorter of two block lists and aligns it onto the
// longer one's grid, dispatching to AlignSingleBlock when only one block
// needs placing.
func AlignBlocks(blocks, otherBlocks []*models.Block) []*models.Block {
	blockGaps := gapsBetween(blocks)
	otherGaps := gapsBetween(otherBlocks)

	lessBlocks, moreBlocks := blocks, otherBlocks
	lessGaps, moreGaps := blockGaps, otherGaps
	if len(blocks) > len(otherBlocks) {
		lessBlocks, moreBlocks = otherBlocks, blocks
		lessGaps, moreGaps = otherGaps, blockGaps
	}

	if len(lessBlocks) == 1 {
		return AlignSingleBlock(lessBlocks[0], moreGaps)
	}
	return AlignMultipleBlocks(lessBlocks, moreBlocks, lessGaps, moreGaps)
}
