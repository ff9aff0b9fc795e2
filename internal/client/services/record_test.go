package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/stats"

	_ "modernc.org/sqlite"
)

func addTestRecord(t *testing.T, catalogSvc CatalogService, recordSvc RecordService) *models.StockRecord {
	t.Helper()
	ctx := context.Background()

	entry, err := catalogSvc.Add(ctx, models.DomainShoes, "Air Max 97", "270")
	require.NoError(t, err)

	price := int64(1000)
	rec, err := recordSvc.Add(ctx, entry.ID, "2024-05-01", stats.TypePurchase, &price, 2, "first")
	require.NoError(t, err)
	return rec
}

func TestRecordUpdate_RewritesFields(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	rec := addTestRecord(t, catalogSvc, recordSvc)

	newPrice := int64(1500)
	rec.Date = "2024-05-02"
	rec.Price = &newPrice
	rec.Count = 3
	rec.Memo = "corrected"
	require.NoError(t, recordSvc.Update(ctx, rec))

	got, err := recordSvc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", got.Date)
	require.NotNil(t, got.Price)
	assert.Equal(t, int64(1500), *got.Price)
	assert.Equal(t, int64(3), got.Count)
	assert.Equal(t, "corrected", got.Memo)
}

func TestRecordUpdate_RejectsBadInput(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	rec := addTestRecord(t, catalogSvc, recordSvc)

	bad := *rec
	bad.Count = 0
	assert.Error(t, recordSvc.Update(ctx, &bad))

	bad = *rec
	bad.Date = "someday"
	assert.Error(t, recordSvc.Update(ctx, &bad))

	// the stored row is untouched
	got, err := recordSvc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Count)
	assert.Equal(t, "2024-05-01", got.Date)
}

func TestRecordDelete_RemovesRowAndQueuedWrite(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	rec := addTestRecord(t, catalogSvc, recordSvc)

	// one operation for the entry, one for the record
	n, err := s.Outbox.CountPending(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.NoError(t, recordSvc.Delete(ctx, rec.ID))

	_, err = recordSvc.Get(ctx, rec.ID)
	assert.Error(t, err)

	rows, err := recordSvc.ListByEntry(ctx, rec.EntryID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err = s.Outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the record's queued write goes with it")
}
