package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/repositories/outbox"
	"github.com/stockbook-app/stockbook/internal/client/repositories/records"
	"github.com/stockbook-app/stockbook/internal/client/store"
	"github.com/stockbook-app/stockbook/internal/dbx"
	"github.com/stockbook-app/stockbook/internal/stats"
)

// RecordService manages stock records and serves the statistics view.
type RecordService interface {
	Add(ctx context.Context, entryID, date string, t stats.RecordType, price *int64, count int64, memo string) (*models.StockRecord, error)
	Update(ctx context.Context, rec *models.StockRecord) error
	Get(ctx context.Context, id string) (*models.StockRecord, error)
	ListByEntry(ctx context.Context, entryID string) ([]models.StockRecord, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, entryID string, f stats.Filter) (*stats.Summary, error)
}

type recordService struct {
	store *store.Store
}

// NewRecordService builds a RecordService over the local store.
func NewRecordService(s *store.Store) RecordService {
	return &recordService{store: s}
}

// Add writes the record locally and queues the remote write in one
// transaction. The record's UUID is the idempotency key the worker sends.
func (s *recordService) Add(ctx context.Context, entryID, date string, t stats.RecordType, price *int64, count int64, memo string) (*models.StockRecord, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}
	if _, err := stats.DayKey(date); err != nil {
		return nil, err
	}

	entry, err := s.store.Catalog.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entry: %w", err)
	}

	rec := models.NewStockRecord(entry, date, t, price, count)
	rec.Memo = memo

	err = dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := records.NewSQLiteRepository(tx).Insert(ctx, rec); err != nil {
			return err
		}
		return outbox.NewSQLiteRepository(tx).Enqueue(ctx, &models.Operation{
			ID:            uuid.NewString(),
			Kind:          models.OpCreateRecord,
			EntityID:      rec.ID,
			NextAttemptAt: time.Now(),
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return rec, nil
}

// Update edits a record locally. The backend ledger is append-only in this
// slice, so edits stay local.
func (s *recordService) Update(ctx context.Context, rec *models.StockRecord) error {
	if rec.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if _, err := stats.DayKey(rec.Date); err != nil {
		return err
	}
	if err := s.store.Records.Update(ctx, rec); err != nil {
		return fmt.Errorf("error updating record: %w", err)
	}
	return nil
}

func (s *recordService) Get(ctx context.Context, id string) (*models.StockRecord, error) {
	rec, err := s.store.Records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving record: %w", err)
	}
	return rec, nil
}

func (s *recordService) ListByEntry(ctx context.Context, entryID string) ([]models.StockRecord, error) {
	rows, err := s.store.Records.GetAllByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return rows, nil
}

func (s *recordService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := records.NewSQLiteRepository(tx).DeleteByID(ctx, id); err != nil {
			return err
		}
		return outbox.NewSQLiteRepository(tx).DeleteAllByEntity(ctx, id)
	})
}

// Stats aggregates one entry's records over the given date filter.
func (s *recordService) Stats(ctx context.Context, entryID string, f stats.Filter) (*stats.Summary, error) {
	rows, err := s.store.Records.GetAllByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}

	input := make([]stats.Record, 0, len(rows))
	for _, r := range rows {
		input = append(input, r.StatsRecord())
	}
	return stats.Aggregate(input, f)
}
