package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/dbx"
	"github.com/stockbook-app/stockbook/internal/server/models"
)

// PostgresRepository implements the items Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, client_key, name, size, image_url, created_at`

// Create is idempotent on (user_id, client_key): the insert does nothing on
// conflict and the reselect returns whichever row won, so a retried create
// never produces a duplicate.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	insert := `
		INSERT INTO items (user_id, client_key, name, size, image_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, client_key) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, insert, item.UserID, item.ClientKey, item.Name, item.Size, item.ImageURL); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM items WHERE user_id = $1 AND client_key = $2`
	stored := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, item.UserID, item.ClientKey).Scan(
		&stored.ID, &stored.UserID, &stored.ClientKey, &stored.Name, &stored.Size, &stored.ImageURL, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stored, nil
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.UserID, &item.ClientKey, &item.Name, &item.Size, &item.ImageURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string, id int64) (*models.Item, error) {
	query := `SELECT ` + selectColumns + ` FROM items WHERE user_id = $1 AND id = $2`

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&item.ID, &item.UserID, &item.ClientKey, &item.Name, &item.Size, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}
