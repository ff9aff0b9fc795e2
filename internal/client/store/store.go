// Package store opens the client's local SQLite database, runs migrations,
// and exposes the repository set plus the whole-collection save contract the
// pages rely on.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/stockbook-app/stockbook/internal/client/migrations"
	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/repositories/catalog"
	"github.com/stockbook-app/stockbook/internal/client/repositories/outbox"
	"github.com/stockbook-app/stockbook/internal/client/repositories/records"
	"github.com/stockbook-app/stockbook/internal/dbx"
)

// Store bundles the local database handle and its repositories.
type Store struct {
	DB      *sql.DB
	Catalog catalog.Repository
	Records records.Repository
	Outbox  outbox.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the local database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Store{
		DB:      db,
		Catalog: catalog.NewSQLiteRepository(db),
		Records: records.NewSQLiteRepository(db),
		Outbox:  outbox.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// ReplaceAllEntries overwrites one domain's catalog collection: clear then
// reinsert, in a single transaction. This is the full-save contract the
// import/export paths use; a failure leaves the previous collection intact.
func (s *Store) ReplaceAllEntries(ctx context.Context, domain models.Domain, entries []models.CatalogEntry) error {
	return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := catalog.NewSQLiteRepository(tx)
		if err := repo.DeleteAllByDomain(ctx, domain); err != nil {
			return err
		}
		for i := range entries {
			if err := repo.Insert(ctx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceAllRecords overwrites one domain's record collection, same
// semantics as ReplaceAllEntries.
func (s *Store) ReplaceAllRecords(ctx context.Context, domain models.Domain, recs []models.StockRecord) error {
	return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := records.NewSQLiteRepository(tx)
		if err := repo.DeleteAllByDomain(ctx, domain); err != nil {
			return err
		}
		for i := range recs {
			if err := repo.Insert(ctx, &recs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
