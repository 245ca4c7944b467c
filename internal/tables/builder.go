package tables

import (
	"math"
	"regexp"
	"strings"

	"github.com/eurostatements/statementcore/internal/patterns"
	"github.com/eurostatements/statementcore/pkg/models"
)

// halfYearRegex recognizes a half-year header phrase that BlockSegmenter's
// gap heuristic sometimes leaves merged into a single block spanning two
// date columns, e.g. "1st half-year2nd half-year".
var halfYearRegex = regexp.MustCompile(`(?i)(?:1st|first|2nd|second)\s+half[-\s]+year`)

// sentenceRegex recognizes a prose line (ends in a period or colon), used
// by CorrectTable to stop absorbing lines once it reaches running text
// rather than a header.
var sentenceRegex = regexp.MustCompile(`^.+[.:]\s*$`)

// CorrectBlocks re-maps a half-year header phrase split across several raw
// blocks onto the grid columns its two halves actually belong to, by
// locating the phrase within the blocks' concatenated text and picking, for
// each half, the grid column whose midpoint is closest to the matched
// span's interpolated midpoint.
func (b *Builder) CorrectBlocks(lineBlocks, grid []*models.Block) []*models.Block {
	if len(lineBlocks) == 0 {
		return lineBlocks
	}

	x0, x1 := lineBlocks[0].X0, lineBlocks[len(lineBlocks)-1].X1
	var sb strings.Builder
	for _, blk := range lineBlocks {
		sb.WriteString(blk.Text)
	}
	text := sb.String()

	matches := halfYearRegex.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return lineBlocks
	}

	width := x1 - x0
	textLen := float64(len(text))

	var order []int
	chosen := map[int]string{}
	for _, m := range matches {
		start, end := m[0], m[1]
		newX0 := x0 + float64(start)/textLen*width
		newX1 := x0 + float64(end)/textLen*width
		newMidX := newX0 + (newX1-newX0)/2
		newText := text[start:end]

		bestIdx, bestDiff := 0, math.MaxFloat64
		for gi, gb := range grid {
			mid := gb.X0 + (gb.X1-gb.X0)/2
			diff := math.Abs(newMidX - mid)
			if diff < bestDiff {
				bestIdx, bestDiff = gi, diff
			}
		}
		if _, exists := chosen[bestIdx]; !exists {
			order = append(order, bestIdx)
		}
		chosen[bestIdx] = newText
	}

	result := make([]*models.Block, 0, len(order))
	for _, idx := range order {
		gb := grid[idx]
		result = append(result, &models.Block{X0: gb.X0, X1: gb.X1, Text: chosen[idx]})
	}
	return result
}

func matchesAnyDateRegex(text string) bool {
	for _, re := range patterns.DateRegexes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// CorrectTable walks upward from a table's first line, absorbing lines that
// still align onto the table's column grid: the multi-line headers sitting
// above a value grid (years, half-year labels, units) that gap-based
// segmentation alone would leave outside the table.
func (b *Builder) CorrectTable(table [][]*models.Block, firstIdx int, lines []models.Line, fills []models.Fill) ([][]*models.Block, int) {
	grid := mostBlocks(table)
	prevAligned := b.alignBlocks(table[0], grid)
	if prevAligned == nil {
		prevAligned = make([]*models.Block, len(grid))
	}

	var extension [][]*models.Block
	for i := firstIdx - 1; i >= 0; i-- {
		line := lines[i]
		lineBlocks := b.extractBlocks(line, fills)
		lineBlocks = b.CorrectBlocks(lineBlocks, grid)
		aligned := b.alignBlocks(lineBlocks, grid)

		lineValid := false
		if aligned != nil && len(aligned) == len(prevAligned) {
			isSentence := aligned[0] != nil && sentenceRegex.MatchString(aligned[0].Text)
			otherEmpty := true
			for _, blk := range aligned[1:] {
				if blk != nil {
					otherEmpty = false
					break
				}
			}

			if isSentence && otherEmpty {
				lineValid = false
			} else {
				lineValid = true
				for idx, blk := range aligned {
					if blk != nil && prevAligned[idx] == nil {
						lineValid = false
						break
					}
				}

				if !lineValid {
					var parts []string
					for _, blk := range aligned {
						if blk != nil {
							parts = append(parts, blk.Text)
						}
					}
					text := strings.Join(parts, " ")
					hasUnits := patterns.UnitsRegex.MatchString(text)
					hasDates := matchesAnyDateRegex(text)

					if hasUnits && hasDates {
						headerWindow := int(float64(len(table)) * b.cfg.HeaderExtensionFraction)
						if headerWindow > len(table) {
							headerWindow = len(table)
						}
						firstThird := make([][]*models.Block, 0, len(extension)+headerWindow)
						for j := len(extension) - 1; j >= 0; j-- {
							firstThird = append(firstThird, extension[j])
						}
						firstThird = append(firstThird, table[:headerWindow]...)

						var thirdParts []string
						for _, row := range firstThird {
							if len(row) < 2 {
								continue
							}
							var rowParts []string
							for _, blk := range row[1:] {
								if blk != nil {
									rowParts = append(rowParts, blk.Text)
								}
							}
							thirdParts = append(thirdParts, strings.Join(rowParts, " "))
						}
						hasPreviousDates := matchesAnyDateRegex(strings.Join(thirdParts, " "))
						if !hasPreviousDates {
							lineValid = true
						}
					}
				}
			}
		}

		if lineValid {
			extension = append(extension, lineBlocks)
			firstIdx--
			prevAligned = aligned
		} else {
			break
		}
	}

	result := make([][]*models.Block, 0, len(extension)+len(table))
	for i := len(extension) - 1; i >= 0; i-- {
		result = append(result, extension[i])
	}
	result = append(result, table...)
	return result, firstIdx
}

type rawRow struct {
	lineIdx int
	blocks  []*models.Block
}

// ExtractTables scans a page's lines for consecutive runs that align onto a
// shared column grid, each run becoming one RawTable. A run breaks at any
// line that no longer aligns onto it; that line starts the next run if it
// has more than one block and is otherwise dropped.
func (b *Builder) ExtractTables(lines []models.Line, fills []models.Fill) []models.RawTable {
	groups := [][]rawRow{nil}
	for idx, line := range lines {
		lineBlocks := b.extractBlocks(line, fills)
		current := groups[len(groups)-1]

		if len(current) > 0 {
			grid := mostBlocks(rowBlocksOf(current))
			aligned := b.alignBlocks(lineBlocks, grid)
			if aligned == nil {
				if len(lineBlocks) > 1 {
					groups = append(groups, []rawRow{{idx, lineBlocks}})
				} else {
					groups = append(groups, nil)
				}
			} else {
				groups[len(groups)-1] = append(current, rawRow{idx, lineBlocks})
			}
		} else if len(lineBlocks) > 1 {
			groups[len(groups)-1] = append(current, rawRow{idx, lineBlocks})
		}
	}
	if len(groups[len(groups)-1]) == 0 {
		groups = groups[:len(groups)-1]
	}

	var result []models.RawTable
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		firstIdx, lastIdx := group[0].lineIdx, group[len(group)-1].lineIdx
		table := rowBlocksOf(group)
		table, firstIdx = b.CorrectTable(table, firstIdx, lines, fills)

		grid := mostBlocks(table)
		rows := make([]models.Row, len(table))
		for i, rowBlocks := range table {
			aligned := b.alignBlocks(rowBlocks, grid)
			row := make(models.Row, len(grid))
			if aligned != nil {
				copy(row, aligned)
			}
			rows[i] = row
		}
		result = append(result, models.RawTable{Rows: rows, FirstLineIndex: firstIdx, LastLineIndex: lastIdx})
	}
	return result
}

func rowBlocksOf(group []rawRow) [][]*models.Block {
	out := make([][]*models.Block, len(group))
	for i, r := range group {
		out[i] = r.blocks
	}
	return out
}
