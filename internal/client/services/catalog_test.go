package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/store"
	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/stats"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCatalogAdd_EnqueuesOutboxOperation(t *testing.T) {
	s := setupStore(t)
	svc := NewCatalogService(s)
	ctx := context.Background()

	e, err := svc.Add(ctx, models.DomainShoes, "Air Max 97", "270")
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)

	n, err := s.Outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "local write and queued remote write are one transaction")
}

func TestCatalogAdd_RejectsDuplicateVariant(t *testing.T) {
	s := setupStore(t)
	svc := NewCatalogService(s)
	ctx := context.Background()

	_, err := svc.Add(ctx, models.DomainShoes, "Air Max 97", "270")
	require.NoError(t, err)

	_, err = svc.Add(ctx, models.DomainShoes, "air max 97", "270")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	// same variant in the other domain is fine
	_, err = svc.Add(ctx, models.DomainFoods, "Air Max 97", "270")
	require.NoError(t, err)
}

func TestCatalogDelete_CascadesRecordsAndOutbox(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	e, err := catalogSvc.Add(ctx, models.DomainFoods, "Honey Butter Chips", "60g")
	require.NoError(t, err)
	_, err = recordSvc.Add(ctx, e.ID, "2024-03-01", stats.TypePurchase, price(1500), 10, "")
	require.NoError(t, err)

	require.NoError(t, catalogSvc.Delete(ctx, e.ID))

	_, err = s.Catalog.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	recs, err := s.Records.GetAll(ctx, models.DomainFoods)
	require.NoError(t, err)
	assert.Empty(t, recs, "dependent records are filtered out explicitly")

	n, err := s.Outbox.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "queued writes for deleted entities are dropped")
}

func TestRecordAdd_ValidatesInput(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	e, err := catalogSvc.Add(ctx, models.DomainShoes, "Dunk Low", "270")
	require.NoError(t, err)

	_, err = recordSvc.Add(ctx, e.ID, "2024-01-01", stats.TypePurchase, price(1000), 0, "")
	assert.Error(t, err, "zero count rejected")

	_, err = recordSvc.Add(ctx, e.ID, "sometime soon", stats.TypePurchase, price(1000), 1, "")
	assert.Error(t, err, "unparseable date rejected")

	_, err = recordSvc.Add(ctx, "missing-entry", "2024-01-01", stats.TypePurchase, price(1000), 1, "")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRecordStats_EndToEnd(t *testing.T) {
	s := setupStore(t)
	catalogSvc := NewCatalogService(s)
	recordSvc := NewRecordService(s)
	ctx := context.Background()

	e, err := catalogSvc.Add(ctx, models.DomainShoes, "Dunk Low", "270")
	require.NoError(t, err)

	_, err = recordSvc.Add(ctx, e.ID, "2024-01-05", stats.TypePurchase, price(1000), 2, "")
	require.NoError(t, err)
	_, err = recordSvc.Add(ctx, e.ID, "2024-01-06", stats.TypeSale, price(1800), 1, "")
	require.NoError(t, err)
	_, err = recordSvc.Add(ctx, e.ID, "2024-01-07", stats.TypeInbound, nil, 5, "")
	require.NoError(t, err)

	summary, err := recordSvc.Stats(ctx, e.ID, stats.Filter{Mode: stats.RangeAll})
	require.NoError(t, err)

	require.NotNil(t, summary.AvgPurchaseUnit)
	assert.Equal(t, int64(500), *summary.AvgPurchaseUnit)
	require.NotNil(t, summary.AvgSaleUnit)
	assert.Equal(t, int64(1800), *summary.AvgSaleUnit)
	assert.Equal(t, int64(5), summary.InboundQty)
	assert.Equal(t, int64(3), summary.MissingPurchaseQty)
}
