package badger

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/eurostatements/statementcore/internal/common"
	"github.com/eurostatements/statementcore/internal/pipeline"
	"github.com/eurostatements/statementcore/internal/storage"
	"github.com/eurostatements/statementcore/pkg/models"
)

func newTestStore(t *testing.T) *StatementStore {
	t.Helper()
	dir, err := os.MkdirTemp("", "statementcore-badger-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := NewDB(arbor.NewLogger(), common.BadgerConfig{Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStatementStore(db, arbor.NewLogger())
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := storage.StatementRecord{
		Symbol:       "ABC",
		FiscalPeriod: "FY",
		Date:         "2023-12-31",
		Statement:    pipeline.Statement{Income: revenueRow(1000)},
	}

	require.NoError(t, s.Put(ctx, rec, false))

	got, err := s.Get(ctx, "ABC", "FY", "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, "ABC", got.Symbol)
	assert.Equal(t, 1000.0, *got.Statement.Income.Items["revenue"])
}

func TestPutRefusesToOverwriteByDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := storage.StatementRecord{Symbol: "ABC", FiscalPeriod: "FY", Date: "2023-12-31"}

	require.NoError(t, s.Put(ctx, rec, false))
	err := s.Put(ctx, rec, false)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestPutReplaceOverwritesExistingRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := storage.StatementRecord{Symbol: "ABC", FiscalPeriod: "FY", Date: "2023-12-31",
		Statement: pipeline.Statement{Income: revenueRow(1000)}}

	require.NoError(t, s.Put(ctx, rec, false))

	rec.Statement = pipeline.Statement{Income: revenueRow(2000)}
	require.NoError(t, s.Put(ctx, rec, true))

	got, err := s.Get(ctx, "ABC", "FY", "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, *got.Statement.Income.Items["revenue"])
}

func TestGetMissingRecordReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "ABC", "FY", "2023-12-31")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListFiltersBySymbolAndOrdersByDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, storage.StatementRecord{Symbol: "ABC", FiscalPeriod: "FY", Date: "2022-12-31"}, false))
	require.NoError(t, s.Put(ctx, storage.StatementRecord{Symbol: "ABC", FiscalPeriod: "FY", Date: "2023-12-31"}, false))
	require.NoError(t, s.Put(ctx, storage.StatementRecord{Symbol: "XYZ", FiscalPeriod: "FY", Date: "2023-12-31"}, false))

	recs, err := s.List(ctx, "ABC")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2022-12-31", recs[0].Date)
	assert.Equal(t, "2023-12-31", recs[1].Date)
}

func revenueRow(v float64) models.StatementRow {
	return models.StatementRow{Items: map[string]*float64{"revenue": &v}}
}
