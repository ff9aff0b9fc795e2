package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const selectColumns = `id, entry_id, domain, date, type, price, count, memo, sync_status`

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.StockRecord) error {
	query := `INSERT INTO stock_records (id, entry_id, domain, date, type, price, count, memo, sync_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.EntryID, rec.Domain, rec.Date, rec.Type, rec.Price, rec.Count, rec.Memo, rec.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to insert stock record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.StockRecord) error {
	query := `UPDATE stock_records SET date = ?, price = ?, count = ?, memo = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, rec.Date, rec.Price, rec.Count, rec.Memo, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update stock record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.StockRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM stock_records WHERE id = ?`, id)

	var rec models.StockRecord
	err := row.Scan(&rec.ID, &rec.EntryID, &rec.Domain, &rec.Date, &rec.Type,
		&rec.Price, &rec.Count, &rec.Memo, &rec.SyncStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context, domain models.Domain) ([]models.StockRecord, error) {
	return r.selectMany(ctx,
		`SELECT `+selectColumns+` FROM stock_records WHERE domain = ? ORDER BY date`, domain)
}

func (r *SQLiteRepository) GetAllByEntry(ctx context.Context, entryID string) ([]models.StockRecord, error) {
	return r.selectMany(ctx,
		`SELECT `+selectColumns+` FROM stock_records WHERE entry_id = ? ORDER BY date`, entryID)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stock_records SET sync_status = ? WHERE id = ?`, models.SyncDone, id)
	if err != nil {
		return fmt.Errorf("failed to mark record synced: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stock_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllByEntry(ctx context.Context, entryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stock_records WHERE entry_id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry records: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllByDomain(ctx context.Context, domain models.Domain) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stock_records WHERE domain = ?`, domain)
	if err != nil {
		return fmt.Errorf("failed to clear stock records: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) selectMany(ctx context.Context, query string, args ...any) ([]models.StockRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select stock records: %w", err)
	}
	defer rows.Close()

	var result []models.StockRecord
	for rows.Next() {
		var rec models.StockRecord
		if err := rows.Scan(&rec.ID, &rec.EntryID, &rec.Domain, &rec.Date, &rec.Type,
			&rec.Price, &rec.Count, &rec.Memo, &rec.SyncStatus); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
