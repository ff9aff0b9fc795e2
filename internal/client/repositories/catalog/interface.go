// Package catalog stores catalog entries in the local SQLite mirror.
package catalog

import (
	"context"

	"github.com/stockbook-app/stockbook/internal/client/models"
)

// Repository describes CRUD and query operations for catalog entries.
// Implementations are backed by the local SQLite database and are bound to
// a dbx.DBTX, so the same repository works inside and outside transactions.
type Repository interface {
	// Insert adds a new entry.
	Insert(ctx context.Context, e *models.CatalogEntry) error

	// Update overwrites name, size, image and memo of an existing entry.
	Update(ctx context.Context, e *models.CatalogEntry) error

	// GetByID returns an entry by its identifier.
	GetByID(ctx context.Context, id string) (*models.CatalogEntry, error)

	// GetAll lists all entries of one domain.
	GetAll(ctx context.Context, domain models.Domain) ([]models.CatalogEntry, error)

	// FindByNameSize returns the entry matching name case-insensitively and
	// size exactly within a domain, or ErrorNotFound.
	FindByNameSize(ctx context.Context, domain models.Domain, name, size string) (*models.CatalogEntry, error)

	// SetRemoteID persists the backend item id after a successful remote
	// creation, making future reconciliations key-based.
	SetRemoteID(ctx context.Context, id string, remoteID int64) error

	// DeleteByID removes an entry.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAllByDomain clears one domain's collection.
	DeleteAllByDomain(ctx context.Context, domain models.Domain) error
}
