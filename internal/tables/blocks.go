// Package tables reconstructs tables from a page's lines: grouping
// consecutive alignable lines into a raw column grid, absorbing header
// lines above the grid, filtering to date/numeric columns, and splitting
// header rows from value rows.
package tables

import (
	"github.com/eurostatements/statementcore/internal/align"
	"github.com/eurostatements/statementcore/internal/blocks"
	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/pkg/models"
)

// Builder reconstructs tables from a page's lines and fills using the
// tunables in cfg.
type Builder struct {
	cfg *common.PipelineConfig
}

// NewBuilder returns a Builder configured by cfg.
func NewBuilder(cfg *common.PipelineConfig) *Builder {
	return &Builder{cfg: cfg}
}

// extractBlocks splits one line into blocks, honoring drawn separators
// found among fills.
func (b *Builder) extractBlocks(line models.Line, fills []models.Fill) []*models.Block {
	separators := blocks.Separators(line, fills, b.cfg.SeparatorFillOpacity, b.cfg.SeparatorOverlapFraction)
	return blocks.Segment(line, separators, b.cfg.DoubleCharWidthGapFactor)
}

// alignBlocks is a thin passthrough to internal/align, kept as a method so
// callers read uniformly against the Builder.
func (b *Builder) alignBlocks(lhs, rhs []*models.Block) []*models.Block {
	return align.AlignBlocks(lhs, rhs)
}

func mostBlocks(rows [][]*models.Block) []*models.Block {
	best := rows[0]
	for _, r := range rows[1:] {
		if len(r) > len(best) {
			best = r
		}
	}
	return best
}
