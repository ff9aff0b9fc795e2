// Package records stores stock records in the local SQLite mirror.
package records

import (
	"context"

	"github.com/stockbook-app/stockbook/internal/client/models"
)

// Repository describes CRUD and query operations for stock records.
type Repository interface {
	// Insert adds a new record.
	Insert(ctx context.Context, rec *models.StockRecord) error

	// Update overwrites date, price, count and memo of an existing record.
	Update(ctx context.Context, rec *models.StockRecord) error

	// GetByID returns a record by its identifier.
	GetByID(ctx context.Context, id string) (*models.StockRecord, error)

	// GetAll lists all records of one domain.
	GetAll(ctx context.Context, domain models.Domain) ([]models.StockRecord, error)

	// GetAllByEntry lists records owned by one catalog entry, oldest date first.
	GetAllByEntry(ctx context.Context, entryID string) ([]models.StockRecord, error)

	// MarkSynced flips the record to the synced state after the backend
	// acknowledged it.
	MarkSynced(ctx context.Context, id string) error

	// DeleteByID removes a record.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAllByEntry removes all records owned by a catalog entry. There is
	// no referential integrity in the schema; entry deletion cascades here
	// explicitly.
	DeleteAllByEntry(ctx context.Context, entryID string) error

	// DeleteAllByDomain clears one domain's collection.
	DeleteAllByDomain(ctx context.Context, domain models.Domain) error
}
