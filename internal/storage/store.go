// Package storage declares the persistence collaborator's contract.
// Relational storage of reconstructed statements and deduplication across
// runs is explicitly out of scope for the reconstruction core (spec.md
// SS1) - the core returns rows, it never writes them anywhere - but a
// concrete, exercised adapter is still provided (internal/storage/badger)
// rather than leaving the contract unimplemented.
package storage

import (
	"context"
	"errors"

	"github.com/eurostatements/statementcore/internal/pipeline"
)

// ErrAlreadyExists is returned by Put when a record already exists at the
// given key and replace was not requested - the store is append-only by
// default, matching the original schema's primary-key-per-filing model.
var ErrAlreadyExists = errors.New("storage: record already exists")

// ErrNotFound is returned by Get when no record exists at the given key.
var ErrNotFound = errors.New("storage: record not found")

// StatementRecord is one persisted, dated statement: the three canonical
// rows the core produced for one document, keyed by the issuer symbol and
// the fiscal period the metadata extractor resolved.
type StatementRecord struct {
	Symbol       string
	FiscalPeriod string
	Date         string
	Statement    pipeline.Statement
}

// Key returns the (symbol, fiscal_period, date) composite key this record
// is stored under.
func (r StatementRecord) Key() (symbol, fiscalPeriod, date string) {
	return r.Symbol, r.FiscalPeriod, r.Date
}

// StatementStore is an append-only collaborator keyed by
// (symbol, fiscal_period, date). The core performs no I/O itself; a
// caller that wants results persisted wraps its own pipeline.Core.Process
// calls with one of these.
type StatementStore interface {
	// Put stores rec. If replace is false and a record already exists at
	// rec's key, Put returns ErrAlreadyExists and leaves storage
	// unchanged.
	Put(ctx context.Context, rec StatementRecord, replace bool) error

	// Get retrieves the record stored at (symbol, fiscalPeriod, date).
	Get(ctx context.Context, symbol, fiscalPeriod, date string) (*StatementRecord, error)

	// List returns every record stored for symbol, ordered by date
	// ascending.
	List(ctx context.Context, symbol string) ([]StatementRecord, error)

	Close() error
}
