// Package badger adapts a Badger-backed key/value store (via badgerhold)
// into the statement persistence collaborator's contract
// (internal/storage.StatementStore).
package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/eurostatements/statementcore/internal/common"
)

// DB manages one Badger database connection.
type DB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
}

// NewDB opens (creating if necessary) the Badger database described by
// config.
func NewDB(logger arbor.ILogger, config common.BadgerConfig) (*DB, error) {
	if config.ResetOnStartup {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Debug().Str("path", config.Path).Msg("storage: deleting existing database (reset_on_startup=true)")
			if err := os.RemoveAll(config.Path); err != nil {
				logger.Warn().Err(err).Str("path", config.Path).Msg("storage: failed to delete database directory")
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = config.Path
	options.ValueDir = config.Path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger database at %s: %w", config.Path, err)
	}

	logger.Debug().Str("path", config.Path).Msg("storage: badger database initialized")
	return &DB{store: store, logger: logger}, nil
}

// Store returns the underlying badgerhold store.
func (d *DB) Store() *badgerhold.Store {
	return d.store
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}
