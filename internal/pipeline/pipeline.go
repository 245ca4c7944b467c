// Package pipeline composes every reconstruction stage into the single
// entry point that turns one statement document's PDF bytes into a set of
// standardized, dated financial statement rows.
package pipeline

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/internal/format"
	"github.com/eurostatements/statementcore/internal/keypages"
	"github.com/eurostatements/statementcore/internal/lines"
	"github.com/eurostatements/statementcore/internal/metadata"
	"github.com/eurostatements/statementcore/internal/pdfaccess"
	"github.com/eurostatements/statementcore/internal/statements"
	"github.com/eurostatements/statementcore/internal/tables"
	"github.com/eurostatements/statementcore/internal/taxonomy"
	"github.com/eurostatements/statementcore/pkg/models"
)

// Statement is one dated, fully standardized row: the income, balance
// sheet and cash flow rows that share a report date, plus the document
// metadata resolved against that specific date.
type Statement struct {
	Metadata metadata.Metadata
	Income   models.StatementRow
	Balance  models.StatementRow
	CashFlow models.StatementRow
}

// NoKeyPagesError means the document never carried all three canonical
// statements, so nothing in it can be safely standardized.
type NoKeyPagesError struct {
	Found map[string]bool
}

func (e *NoKeyPagesError) Error() string {
	return fmt.Sprintf("pipeline: document is missing at least one canonical statement: %v", e.Found)
}

// Core is the end-to-end reconstruction pipeline: pdfaccess -> keypages ->
// lines -> blocks/align (via tables.Builder) -> tables -> format ->
// statements -> metadata.
type Core struct {
	cfg      *common.PipelineConfig
	tax      *taxonomy.Taxonomy
	tables   *tables.Builder
	keypages *keypages.Filter
	mapper   *statements.Mapper
	logger   arbor.ILogger
}

// NewCore builds a Core from a loaded configuration and taxonomy.
func NewCore(cfg *common.PipelineConfig, tax *taxonomy.Taxonomy, logger arbor.ILogger) *Core {
	return &Core{
		cfg:      cfg,
		tax:      tax,
		tables:   tables.NewBuilder(cfg),
		keypages: keypages.NewFilter(tax),
		mapper:   statements.NewMapper(tax),
		logger:   logger,
	}
}

// Process runs the full pipeline over one document's raw PDF bytes and
// returns one Statement per report date common to all three canonical
// statements.
func (c *Core) Process(raw []byte, statementURL string) ([]Statement, error) {
	doc, err := pdfaccess.Open(raw, c.logger)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	total, err := doc.Pages()
	if err != nil {
		return nil, fmt.Errorf("pipeline: count pages: %w", err)
	}

	pageTexts := make([]string, total)
	for i := 1; i <= total; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read page %d text: %w", i, err)
		}
		pageTexts[i-1] = text
	}

	scan := c.keypages.Scan(pageTexts)
	c.logger.Debug().
		Int("total_pages", total).
		Int("key_pages", len(scan.KeepPages)).
		Bool("complete", scan.Complete).
		Msg("pipeline: key page scan complete")
	if !scan.Complete {
		return nil, &NoKeyPagesError{Found: scan.Found}
	}

	subset, err := doc.WriteSubset(scan.KeepPages)
	if err != nil {
		return nil, fmt.Errorf("pipeline: subset key pages: %w", err)
	}

	keyDoc, err := pdfaccess.Open(subset, c.logger)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reopen key-page subset: %w", err)
	}
	defer keyDoc.Close()

	keyTotal, err := keyDoc.Pages()
	if err != nil {
		return nil, fmt.Errorf("pipeline: count key pages: %w", err)
	}

	keyPageTexts := make([]string, keyTotal)
	for i := 1; i <= keyTotal; i++ {
		text, err := keyDoc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read key page %d text: %w", i, err)
		}
		keyPageTexts[i-1] = text
	}
	documentUnits, documentMultiplier := format.DocumentUnits(keyPageTexts)

	var formattedTables []models.FormattedTable
	for i := 1; i <= keyTotal; i++ {
		glyphs, err := keyDoc.PageGlyphs(i)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read page %d glyphs: %w", i, err)
		}
		words := lines.GroupGlyphsIntoWords(glyphs)
		pageLines := lines.Build(words)

		fills, err := keyDoc.PageFills(i)
		if err != nil {
			return nil, fmt.Errorf("pipeline: read page %d fills: %w", i, err)
		}

		cleanTables := c.tables.Reconstruct(pageLines, fills)
		pageFormatted := format.FormatTables(cleanTables, pageLines, documentUnits, documentMultiplier)
		formattedTables = append(formattedTables, pageFormatted...)
	}

	c.logger.Debug().
		Int("formatted_tables", len(formattedTables)).
		Str("document_units", documentUnits).
		Msg("pipeline: table reconstruction complete")

	set := c.mapper.Map(formattedTables)

	n := len(set.Income)
	result := make([]Statement, 0, n)
	for i := 0; i < n; i++ {
		date := set.Income[i].Date
		md := metadata.Extract(statementURL, date, pageTexts)
		result = append(result, Statement{
			Metadata: md,
			Income:   set.Income[i],
			Balance:  set.Balance[i],
			CashFlow: set.CashFlow[i],
		})
	}

	return result, nil
}
