package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/internal/pipeline"
	"github.com/eurostatements/statementcore/internal/storage"
	"github.com/eurostatements/statementcore/internal/storage/badger"
	"github.com/eurostatements/statementcore/internal/taxonomy"
)

type processInput struct {
	PDFPath string `validate:"required"`
	URL     string `validate:"required,url"`
}

var (
	sourceURL string
	symbol    string
	persist   bool
)

var processCmd = &cobra.Command{
	Use:   "process <pdf-path>",
	Short: "Reconstruct the canonical statements in one PDF and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVar(&sourceURL, "url", "", "source URL the PDF was fetched from (used as a metadata fallback)")
	processCmd.Flags().StringVar(&symbol, "symbol", "", "issuer symbol, required only with --store")
	processCmd.Flags().BoolVar(&persist, "store", false, "persist the result to the configured statement store")
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := processInput{PDFPath: args[0], URL: sourceURL}
	if err := validator.New().Struct(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	docID := common.NewDocumentID()
	logger := logger.WithContextWriter(docID)

	raw, err := os.ReadFile(input.PDFPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", input.PDFPath, err)
	}

	tax, err := taxonomy.Load(config.Pipeline.StructuresPath)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}

	core := pipeline.NewCore(&config.Pipeline, tax, logger)
	statements, err := core.Process(raw, input.URL)
	if err != nil {
		return fmt.Errorf("process %s: %w", input.PDFPath, err)
	}

	if persist {
		if symbol == "" {
			return fmt.Errorf("--symbol is required with --store")
		}
		ticker := common.ParseTicker(symbol)
		if err := storeStatements(logger, ticker, statements); err != nil {
			return err
		}
		common.PrintSuccess(fmt.Sprintf("stored %d statement(s) for %s", len(statements), ticker.String()))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(statements)
}

// storeStatements persists one record per emitted Statement to the
// configured badger-backed store, refusing to overwrite a record already
// present at the same (symbol, fiscal_period, date) key. The symbol is
// keyed by the ticker's exchange-qualified storage key, so "SOLB" and
// "EBR:SOLB" land in the same record.
func storeStatements(logger arbor.ILogger, ticker common.Ticker, statements []pipeline.Statement) error {
	db, err := badger.NewDB(logger, config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("open statement store: %w", err)
	}
	defer db.Close()

	var store storage.StatementStore = badger.NewStatementStore(db, logger)
	ctx := context.Background()

	for _, stmt := range statements {
		rec := storage.StatementRecord{
			Symbol:       ticker.StorageKey(),
			FiscalPeriod: stmt.Metadata.Period,
			Date:         stmt.Income.Date,
			Statement:    stmt,
		}
		if err := store.Put(ctx, rec, false); err != nil {
			return fmt.Errorf("store record for %s: %w", rec.Date, err)
		}
	}
	return nil
}
