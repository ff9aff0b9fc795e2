package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/stats"

	_ "modernc.org/sqlite"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entryIDs(entries []models.CatalogEntry) map[string]bool {
	ids := map[string]bool{}
	for _, e := range entries {
		ids[e.ID] = true
	}
	return ids
}

func TestOpen_MigratesSchema(t *testing.T) {
	s := openStore(t)

	// all four collections are reachable after migration
	_, err := s.Catalog.GetAll(context.Background(), models.DomainShoes)
	require.NoError(t, err)
	_, err = s.Records.GetAll(context.Background(), models.DomainFoods)
	require.NoError(t, err)
	n, err := s.Outbox.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReplaceAllEntries_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a := *models.NewCatalogEntry(models.DomainShoes, "Dunk Low", "265")
	b := *models.NewCatalogEntry(models.DomainShoes, "Dunk Low", "270")

	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainShoes, []models.CatalogEntry{a, b}))

	got, err := s.Catalog.GetAll(ctx, models.DomainShoes)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, map[string]bool{a.ID: true, b.ID: true}, entryIDs(got))

	// a second save is a full overwrite, not additive
	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainShoes, []models.CatalogEntry{a}))

	got, err = s.Catalog.GetAll(ctx, models.DomainShoes)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestReplaceAllEntries_DomainsIndependent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	shoe := *models.NewCatalogEntry(models.DomainShoes, "Air Force 1", "280")
	food := *models.NewCatalogEntry(models.DomainFoods, "Honey Butter Chips", "60g")

	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainShoes, []models.CatalogEntry{shoe}))
	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainFoods, []models.CatalogEntry{food}))

	// clearing shoes must not touch foods
	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainShoes, nil))

	foods, err := s.Catalog.GetAll(ctx, models.DomainFoods)
	require.NoError(t, err)
	require.Len(t, foods, 1)
}

func TestReplaceAllRecords_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	e := models.NewCatalogEntry(models.DomainShoes, "Dunk Low", "270")
	price := int64(120000)
	r1 := *models.NewStockRecord(e, "2024-01-01", stats.TypePurchase, &price, 1)
	r2 := *models.NewStockRecord(e, "2024-01-02", stats.TypeSale, nil, 1)

	require.NoError(t, s.ReplaceAllRecords(ctx, models.DomainShoes, []models.StockRecord{r1, r2}))

	got, err := s.Records.GetAll(ctx, models.DomainShoes)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, s.ReplaceAllRecords(ctx, models.DomainShoes, []models.StockRecord{r1}))
	got, err = s.Records.GetAll(ctx, models.DomainShoes)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r1.ID, got[0].ID)
}

func TestReplaceAllEntries_FailureKeepsOldCollection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a := *models.NewCatalogEntry(models.DomainShoes, "Old", "1")
	require.NoError(t, s.ReplaceAllEntries(ctx, models.DomainShoes, []models.CatalogEntry{a}))

	dup := *models.NewCatalogEntry(models.DomainShoes, "New", "2")
	// two entries with the same primary key force the reinsert to fail
	err := s.ReplaceAllEntries(ctx, models.DomainShoes, []models.CatalogEntry{dup, dup})
	require.Error(t, err)

	got, err := s.Catalog.GetAll(ctx, models.DomainShoes)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed save must roll back, not half-clear")
	assert.Equal(t, a.ID, got[0].ID)
}
