package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/stockbook-app/stockbook/internal/client/api"
	"github.com/stockbook-app/stockbook/internal/client/models"
	"github.com/stockbook-app/stockbook/internal/client/store"
	"github.com/stockbook-app/stockbook/internal/common"
	"github.com/stockbook-app/stockbook/internal/logging"
)

const (
	drainBatchSize = 50

	// quick in-call retries before an operation goes back to the queue
	quickRetryBase = 500 * time.Millisecond
	quickRetryMax  = 2

	// durable backoff between drains for a repeatedly failing operation
	requeueBackoffBase = 30 * time.Second
	requeueBackoffCap  = time.Hour
)

// SyncService drains the outbox against the backend. A mutex serializes
// drains, so a timer tick and a manual "sync now" can never interleave and
// race item creation.
type SyncService struct {
	store    *store.Store
	client   api.API
	logger   logging.Logger
	interval time.Duration

	mu sync.Mutex
}

// NewSyncService builds the reconciliation worker.
func NewSyncService(s *store.Store, client api.API, logger logging.Logger, interval time.Duration) *SyncService {
	return &SyncService{
		store:    s,
		client:   client,
		logger:   logger.With("component", "sync"),
		interval: interval,
	}
}

// Run drains the outbox on a timer until ctx is cancelled.
func (s *SyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.DrainOnce(ctx); err != nil {
				s.logger.Error(ctx, "drain failed", "error", err.Error())
			}
		}
	}
}

// drainPass caches the backend item list for the duration of one drain, so
// a batch of operations does one GetItems at most.
type drainPass struct {
	items  []api.Item
	loaded bool
}

func (p *drainPass) load(ctx context.Context, client api.API) ([]api.Item, error) {
	if !p.loaded {
		items, err := client.GetItems(ctx)
		if err != nil {
			return nil, err
		}
		p.items = items
		p.loaded = true
	}
	return p.items, nil
}

// DrainOnce processes all currently due operations and returns how many
// completed. Failed operations are rescheduled with exponential backoff and
// reported in the error.
func (s *SyncService) DrainOnce(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ops, err := s.store.Outbox.NextDue(ctx, time.Now(), drainBatchSize)
	if err != nil {
		return 0, fmt.Errorf("error reading outbox: %w", err)
	}

	pass := &drainPass{}
	done := 0
	var failed []string

	for _, op := range ops {
		if err := s.apply(ctx, &op, pass); err != nil {
			s.logger.Warn(ctx, "operation failed",
				"op", string(op.Kind), "entity", op.EntityID, "attempts", op.Attempts+1, "error", err.Error())

			retryAt := time.Now().Add(requeueBackoff(op.Attempts + 1))
			if mErr := s.store.Outbox.MarkFailed(ctx, op.ID, retryAt, err.Error()); mErr != nil {
				return done, fmt.Errorf("error rescheduling operation: %w", mErr)
			}
			failed = append(failed, fmt.Sprintf("%s %s: %v", op.Kind, op.EntityID, err))
			continue
		}

		if err := s.store.Outbox.MarkDone(ctx, op.ID); err != nil {
			return done, fmt.Errorf("error completing operation: %w", err)
		}
		done++
	}

	if len(failed) > 0 {
		return done, fmt.Errorf("%d operation(s) deferred: %s", len(failed), strings.Join(failed, "; "))
	}
	return done, nil
}

// Pending returns the number of queued remote writes.
func (s *SyncService) Pending(ctx context.Context) (int, error) {
	return s.store.Outbox.CountPending(ctx)
}

func (s *SyncService) apply(ctx context.Context, op *models.Operation, pass *drainPass) error {
	switch op.Kind {
	case models.OpCreateItem:
		entry, err := s.store.Catalog.GetByID(ctx, op.EntityID)
		if errors.Is(err, common.ErrorNotFound) {
			// entry deleted locally before it ever synced; nothing to do
			return nil
		}
		if err != nil {
			return err
		}
		_, err = s.resolveItem(ctx, entry, pass)
		return err

	case models.OpCreateRecord:
		rec, err := s.store.Records.GetByID(ctx, op.EntityID)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		entry, err := s.store.Catalog.GetByID(ctx, rec.EntryID)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrItemNotResolved, err)
		}

		remoteID, err := s.resolveItem(ctx, entry, pass)
		if err != nil {
			return err
		}

		req := api.CreateRecordRequest{
			ClientKey: rec.ID,
			Type:      string(rec.Type),
			Price:     rec.Price,
			Count:     rec.Count,
			Date:      rec.Date,
			Memo:      rec.Memo,
		}
		if err := s.withQuickRetry(ctx, func(ctx context.Context) error {
			_, err := s.client.CreateRecord(ctx, remoteID, req)
			return err
		}); err != nil {
			return err
		}
		return s.store.Records.MarkSynced(ctx, rec.ID)

	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// resolveItem returns the backend id for an entry, establishing it if
// needed: the persisted remote id wins; otherwise the fetched item list is
// matched by case-insensitive name and exact size; otherwise the item is
// created with the entry UUID as idempotency key. Whatever succeeds is
// persisted, so the lookup happens at most once per entry lifetime.
func (s *SyncService) resolveItem(ctx context.Context, entry *models.CatalogEntry, pass *drainPass) (int64, error) {
	if entry.RemoteID != nil {
		return *entry.RemoteID, nil
	}

	items, err := pass.load(ctx, s.client)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, entry.Name) && item.Size == entry.Size {
			if err := s.store.Catalog.SetRemoteID(ctx, entry.ID, item.ID); err != nil {
				return 0, err
			}
			entry.RemoteID = &item.ID
			return item.ID, nil
		}
	}

	var created *api.Item
	req := api.CreateItemRequest{
		ClientKey: entry.ID,
		Name:      entry.Name,
		Size:      entry.Size,
		ImageURL:  entry.ImageURL,
	}
	if err := s.withQuickRetry(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.client.CreateItem(ctx, req)
		return err
	}); err != nil {
		return 0, err
	}

	if err := s.store.Catalog.SetRemoteID(ctx, entry.ID, created.ID); err != nil {
		return 0, err
	}
	entry.RemoteID = &created.ID
	pass.items = append(pass.items, *created)
	return created.ID, nil
}

// withQuickRetry retries transient failures a couple of times with short
// exponential backoff before giving the operation back to the queue.
func (s *SyncService) withQuickRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(quickRetryMax, retry.NewExponential(quickRetryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// isTransient reports whether an error is worth an immediate retry.
// Authorization and validation failures are not: they will fail the same
// way until the user or the data changes.
func isTransient(err error) bool {
	return !errors.Is(err, common.ErrorUnauthorized) &&
		!errors.Is(err, common.ErrorNotFound) &&
		!errors.Is(err, common.ErrTokenExpired)
}

func requeueBackoff(attempts int) time.Duration {
	d := requeueBackoffBase
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= requeueBackoffCap {
			return requeueBackoffCap
		}
	}
	return d
}
