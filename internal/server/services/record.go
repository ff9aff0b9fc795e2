package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/server/models"
	"github.com/stockbook-app/stockbook/internal/server/repositories/repomanager"
	"github.com/stockbook-app/stockbook/internal/stats"
)

// RecordService manages the stock ledger of an item and serves the
// server-side statistics view.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRecordService constructs a RecordService.
func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

// Create appends a ledger record to an item the user owns. An absent type
// defaults to PURCHASE; the date is normalized to its calendar day before
// storage. ClientKey deduplicates retries.
func (s *RecordService) Create(ctx context.Context, userID string, itemID int64, clientKey, recType string, price *int64, count int64, date, memo string) (*models.Record, error) {
	if clientKey == "" {
		return nil, fmt.Errorf("clientKey is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}

	if recType == "" {
		recType = string(stats.TypePurchase)
	}
	switch stats.RecordType(recType) {
	case stats.TypePurchase, stats.TypeSale, stats.TypeInbound:
	default:
		return nil, fmt.Errorf("%q: %w", recType, common.ErrorInvalidRecordType)
	}

	day, err := stats.DayKey(date)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", date, common.ErrorInvalidDate)
	}

	// Ownership check before writing.
	item, err := s.repomanager.Items(s.db).GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Records(s.db).Create(ctx, &models.Record{
		ItemID:    item.ID,
		UserID:    userID,
		ClientKey: clientKey,
		Type:      recType,
		Price:     price,
		Count:     count,
		Date:      day,
		Memo:      memo,
	})
}

// List returns all records of an item the user owns.
func (s *RecordService) List(ctx context.Context, userID string, itemID int64) ([]models.Record, error) {
	if _, err := s.repomanager.Items(s.db).GetByID(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repomanager.Records(s.db).GetAllByItem(ctx, userID, itemID)
}

// Stats aggregates the item's ledger into the statistics summary.
func (s *RecordService) Stats(ctx context.Context, userID string, itemID int64, f stats.Filter) (*stats.Summary, error) {
	recs, err := s.List(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	statRecords := make([]stats.Record, 0, len(recs))
	for _, r := range recs {
		statRecords = append(statRecords, stats.Record{
			Type:  stats.RecordType(r.Type),
			Date:  r.Date,
			Price: r.Price,
			Count: r.Count,
		})
	}
	return stats.Aggregate(statRecords, f)
}
