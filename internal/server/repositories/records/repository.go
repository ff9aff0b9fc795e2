// Package records declares the repository contract for the backend stock
// ledger.
package records

import (
	"context"

	"github.com/stockbook-app/stockbook/internal/server/models"
)

type Repository interface {
	// Create inserts a record or, when (user_id, client_key) already
	// exists, returns the previously inserted row unchanged.
	Create(ctx context.Context, record *models.Record) (*models.Record, error)

	// GetAllByItem returns the item's records ordered by date.
	GetAllByItem(ctx context.Context, userID string, itemID int64) ([]models.Record, error)
}
