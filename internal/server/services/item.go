package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stockbook-app/stockbook/internal/server/models"
	"github.com/stockbook-app/stockbook/internal/server/repositories/repomanager"
)

// ItemService manages the per-user catalog items.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewItemService constructs an ItemService.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// Create stores an item for the user. ClientKey deduplicates retries: a
// repeated create with the same key returns the already stored item.
func (s *ItemService) Create(ctx context.Context, userID, clientKey, name, size, imageURL string) (*models.Item, error) {
	if name == "" || size == "" {
		return nil, fmt.Errorf("name and size are required")
	}
	if clientKey == "" {
		return nil, fmt.Errorf("clientKey is required")
	}

	repo := s.repomanager.Items(s.db)
	return repo.Create(ctx, &models.Item{
		UserID:    userID,
		ClientKey: clientKey,
		Name:      name,
		Size:      size,
		ImageURL:  imageURL,
	})
}

// List returns the user's items.
func (s *ItemService) List(ctx context.Context, userID string) ([]models.Item, error) {
	return s.repomanager.Items(s.db).GetAllByUser(ctx, userID)
}
