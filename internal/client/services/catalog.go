// Package services contains the client-side business logic: catalog and
// record management over the local mirror, and the reconciliation worker
// that mirrors local writes to the backend.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/repositories/catalog"
	"github.com/stockbook-app/stockbook/internal/client/repositories/outbox"
	"github.com/stockbook-app/stockbook/internal/client/repositories/records"
	"github.com/stockbook-app/stockbook/internal/client/store"
	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/dbx"
)

// CatalogService manages catalog entries. Every mutation that must reach
// the backend enqueues an outbox operation in the same transaction as the
// local write.
type CatalogService interface {
	Add(ctx context.Context, domain models.Domain, name, size string) (*models.CatalogEntry, error)
	Update(ctx context.Context, e *models.CatalogEntry) error
	List(ctx context.Context, domain models.Domain) ([]models.CatalogEntry, error)
	Get(ctx context.Context, id string) (*models.CatalogEntry, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	store *store.Store
}

// NewCatalogService builds a CatalogService over the local store.
func NewCatalogService(s *store.Store) CatalogService {
	return &catalogService{store: s}
}

func (s *catalogService) Add(ctx context.Context, domain models.Domain, name, size string) (*models.CatalogEntry, error) {
	if name == "" || size == "" {
		return nil, fmt.Errorf("name and size are required")
	}

	if _, err := s.store.Catalog.FindByNameSize(ctx, domain, name, size); err == nil {
		return nil, fmt.Errorf("entry %s/%s: %w", name, size, common.ErrorAlreadyExists)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	e := models.NewCatalogEntry(domain, name, size)

	err := dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := catalog.NewSQLiteRepository(tx).Insert(ctx, e); err != nil {
			return err
		}
		return outbox.NewSQLiteRepository(tx).Enqueue(ctx, &models.Operation{
			ID:            uuid.NewString(),
			Kind:          models.OpCreateItem,
			EntityID:      e.ID,
			NextAttemptAt: time.Now(),
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return e, nil
}

func (s *catalogService) Update(ctx context.Context, e *models.CatalogEntry) error {
	if err := s.store.Catalog.Update(ctx, e); err != nil {
		return fmt.Errorf("error updating entry: %w", err)
	}
	return nil
}

func (s *catalogService) List(ctx context.Context, domain models.Domain) ([]models.CatalogEntry, error) {
	rows, err := s.store.Catalog.GetAll(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return rows, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.CatalogEntry, error) {
	e, err := s.store.Catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving entry: %w", err)
	}
	return e, nil
}

// Delete removes an entry together with its records and any queued remote
// writes for them. The schema has no referential integrity; the cascade
// lives here.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	owned, err := s.store.Records.GetAllByEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("error listing entry records: %w", err)
	}

	return dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		catalogRepo := catalog.NewSQLiteRepository(tx)
		recordsRepo := records.NewSQLiteRepository(tx)
		outboxRepo := outbox.NewSQLiteRepository(tx)

		if err := recordsRepo.DeleteAllByEntry(ctx, id); err != nil {
			return err
		}
		if err := catalogRepo.DeleteByID(ctx, id); err != nil {
			return err
		}
		if err := outboxRepo.DeleteAllByEntity(ctx, id); err != nil {
			return err
		}
		for _, rec := range owned {
			if err := outboxRepo.DeleteAllByEntity(ctx, rec.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
