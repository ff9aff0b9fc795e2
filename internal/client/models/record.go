package models

import (
	"github.com/google/uuid"

	"github.com/stockbook-app/stockbook/internal/stats"
)

// SyncStatus tracks whether a locally written record has reached the
// backend ledger yet.
type SyncStatus string

const (
	// SyncPending means the record is written locally and queued for the
	// reconciliation worker.
	SyncPending SyncStatus = "pending"
	// SyncDone means the backend acknowledged the record.
	SyncDone SyncStatus = "synced"
)

// StockRecord is one transaction line against a catalog entry. Price is the
// total amount of the line and may be absent for unpriced outbound stock.
// Type uses the same PURCHASE/SALE/INBOUND enumeration as the backend, so
// nothing is left to a server-side default.
type StockRecord struct {
	ID         string
	EntryID    string
	Domain     Domain
	Date       string
	Type       stats.RecordType
	Price      *int64
	Count      int64
	Memo       string
	SyncStatus SyncStatus
}

// NewStockRecord builds a record with a fresh client UUID (also the remote
// idempotency key) in the pending sync state.
func NewStockRecord(entry *CatalogEntry, date string, t stats.RecordType, price *int64, count int64) *StockRecord {
	return &StockRecord{
		ID:         uuid.NewString(),
		EntryID:    entry.ID,
		Domain:     entry.Domain,
		Date:       date,
		Type:       t,
		Price:      price,
		Count:      count,
		SyncStatus: SyncPending,
	}
}

// StatsRecord converts the record to the aggregator's input shape.
func (r *StockRecord) StatsRecord() stats.Record {
	return stats.Record{Type: r.Type, Date: r.Date, Price: r.Price, Count: r.Count}
}
