// Package items declares the repository contract for backend catalog items.
package items

import (
	"context"

	"github.com/stockbook-app/stockbook/internal/server/models"
)

type Repository interface {
	// Create inserts an item or, when (user_id, client_key) already
	// exists, returns the previously inserted row unchanged. Retries of
	// the same client write therefore converge on one item.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// GetAllByUser returns the user's items ordered by id.
	GetAllByUser(ctx context.Context, userID string) ([]models.Item, error)

	// GetByID returns one item. An item of another user or a missing id
	// yields common.ErrorNotFound.
	GetByID(ctx context.Context, userID string, id int64) (*models.Item, error)
}
