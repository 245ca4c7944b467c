package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/eurostatements/statementcore/internal/storage"
)

// StatementStore implements storage.StatementStore over badgerhold.
type StatementStore struct {
	db     *DB
	logger arbor.ILogger
}

// NewStatementStore builds a StatementStore over an already-open DB.
func NewStatementStore(db *DB, logger arbor.ILogger) *StatementStore {
	return &StatementStore{db: db, logger: logger}
}

func recordKey(symbol, fiscalPeriod, date string) string {
	return symbol + "|" + fiscalPeriod + "|" + date
}

// Put stores rec under its composite key, refusing to overwrite an
// existing record unless replace is true.
func (s *StatementStore) Put(ctx context.Context, rec storage.StatementRecord, replace bool) error {
	symbol, fiscalPeriod, date := rec.Key()
	key := recordKey(symbol, fiscalPeriod, date)

	var existing storage.StatementRecord
	err := s.db.Store().Get(key, &existing)
	switch {
	case err == nil && !replace:
		return storage.ErrAlreadyExists
	case err != nil && err != badgerhold.ErrNotFound:
		return fmt.Errorf("storage: check existing record %s: %w", key, err)
	}

	if err := s.db.Store().Upsert(key, &rec); err != nil {
		return fmt.Errorf("storage: put record %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Bool("replace", replace).Msg("storage: statement record stored")
	return nil
}

// Get retrieves the record stored at (symbol, fiscalPeriod, date).
func (s *StatementStore) Get(ctx context.Context, symbol, fiscalPeriod, date string) (*storage.StatementRecord, error) {
	key := recordKey(symbol, fiscalPeriod, date)
	var rec storage.StatementRecord
	err := s.db.Store().Get(key, &rec)
	if err == badgerhold.ErrNotFound {
		return nil, fmt.Errorf("storage: record %s: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get record %s: %w", key, err)
	}
	return &rec, nil
}

// List returns every record stored for symbol, ordered by date ascending.
func (s *StatementStore) List(ctx context.Context, symbol string) ([]storage.StatementRecord, error) {
	var recs []storage.StatementRecord
	err := s.db.Store().Find(&recs, badgerhold.Where("Symbol").Eq(symbol).SortBy("Date"))
	if err != nil {
		return nil, fmt.Errorf("storage: list records for %s: %w", symbol, err)
	}
	return recs, nil
}

// Close closes the underlying database connection.
func (s *StatementStore) Close() error {
	return s.db.Close()
}
