package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, op *models.Operation) error {
	query := `INSERT INTO outbox (id, kind, entity_id, attempts, next_attempt_at, last_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		op.ID, op.Kind, op.EntityID, op.Attempts,
		op.NextAttemptAt.Unix(), op.LastError, op.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to enqueue operation: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) NextDue(ctx context.Context, now time.Time, limit int) ([]models.Operation, error) {
	query := `SELECT id, kind, entity_id, attempts, next_attempt_at, last_error, created_at
		FROM outbox WHERE next_attempt_at <= ? ORDER BY created_at, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, now.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select due operations: %w", err)
	}
	defer rows.Close()

	var result []models.Operation
	for rows.Next() {
		var op models.Operation
		var nextAt, createdAt int64
		if err := rows.Scan(&op.ID, &op.Kind, &op.EntityID, &op.Attempts, &nextAt, &op.LastError, &createdAt); err != nil {
			return nil, err
		}
		op.NextAttemptAt = time.Unix(nextAt, 0).UTC()
		op.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkDone(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove operation: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id string, nextAttemptAt time.Time, lastError string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE outbox SET attempts = attempts + 1, next_attempt_at = ?, last_error = ? WHERE id = ?`,
		nextAttemptAt.Unix(), lastError, id)
	if err != nil {
		return fmt.Errorf("failed to record operation failure: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllByEntity(ctx context.Context, entityID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM outbox WHERE entity_id = ?`, entityID)
	if err != nil {
		return fmt.Errorf("failed to delete entity operations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return n, nil
}
