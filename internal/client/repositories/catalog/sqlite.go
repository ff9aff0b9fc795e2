package catalog

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

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.CatalogEntry) error {
	query := `INSERT INTO catalog_entries (id, domain, name, size, image_url, memo, remote_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Domain, e.Name, e.Size, e.ImageURL, e.Memo, e.RemoteID)
	if err != nil {
		return fmt.Errorf("failed to insert catalog entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.CatalogEntry) error {
	query := `UPDATE catalog_entries SET name = ?, size = ?, image_url = ?, memo = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.Size, e.ImageURL, e.Memo, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update catalog entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.CatalogEntry, error) {
	query := `SELECT id, domain, name, size, image_url, memo, remote_id
		FROM catalog_entries WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetAll(ctx context.Context, domain models.Domain) ([]models.CatalogEntry, error) {
	query := `SELECT id, domain, name, size, image_url, memo, remote_id
		FROM catalog_entries WHERE domain = ? ORDER BY name, size`
	rows, err := r.db.QueryContext(ctx, query, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog entries: %w", err)
	}
	defer rows.Close()

	var result []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Domain, &e.Name, &e.Size, &e.ImageURL, &e.Memo, &e.RemoteID); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) FindByNameSize(ctx context.Context, domain models.Domain, name, size string) (*models.CatalogEntry, error) {
	// Name comparison is case-insensitive, size is exact; this mirrors how
	// entries are matched against backend items.
	query := `SELECT id, domain, name, size, image_url, memo, remote_id
		FROM catalog_entries WHERE domain = ? AND lower(name) = lower(?) AND size = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, domain, name, size))
}

func (r *SQLiteRepository) SetRemoteID(ctx context.Context, id string, remoteID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE catalog_entries SET remote_id = ? WHERE id = ?`, remoteID, id)
	if err != nil {
		return fmt.Errorf("failed to set remote id: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM catalog_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete catalog entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAllByDomain(ctx context.Context, domain models.Domain) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM catalog_entries WHERE domain = ?`, domain)
	if err != nil {
		return fmt.Errorf("failed to clear catalog entries: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	err := row.Scan(&e.ID, &e.Domain, &e.Name, &e.Size, &e.ImageURL, &e.Memo, &e.RemoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
