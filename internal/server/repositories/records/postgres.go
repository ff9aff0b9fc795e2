package records

import (
	"context"
	"fmt"

	"github.com/stockbook-app/stockbook/internal/dbx"
	"github.com/stockbook-app/stockbook/internal/server/models"
)

// PostgresRepository implements the records Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, item_id, user_id, client_key, type, price, count, date, memo, created_at`

// Create is idempotent on (user_id, client_key), same as item creation.
func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	insert := `
		INSERT INTO records (item_id, user_id, client_key, type, price, count, date, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, client_key) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, insert,
		record.ItemID, record.UserID, record.ClientKey, record.Type, record.Price, record.Count, record.Date, record.Memo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM records WHERE user_id = $1 AND client_key = $2`
	stored := &models.Record{}
	err = r.db.QueryRowContext(ctx, query, record.UserID, record.ClientKey).Scan(
		&stored.ID, &stored.ItemID, &stored.UserID, &stored.ClientKey, &stored.Type,
		&stored.Price, &stored.Count, &stored.Date, &stored.Memo, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stored, nil
}

func (r *PostgresRepository) GetAllByItem(ctx context.Context, userID string, itemID int64) ([]models.Record, error) {
	query := `SELECT ` + selectColumns + ` FROM records WHERE user_id = $1 AND item_id = $2 ORDER BY date, id`

	rows, err := r.db.QueryContext(ctx, query, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.UserID, &rec.ClientKey, &rec.Type,
			&rec.Price, &rec.Count, &rec.Date, &rec.Memo, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
