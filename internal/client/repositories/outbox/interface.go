// Package outbox stores pending remote writes for the reconciliation worker.
package outbox

import (
	"context"
	"time"

	"github.com/stockbook-app/stockbook/internal/client/models"
)

// Repository is the durable queue of remote writes. Operations are enqueued
// in the same transaction as the local write they mirror and removed only
// after the backend acknowledges them, so a crash between local and remote
// write cannot lose a sync.
type Repository interface {
	// Enqueue appends an operation.
	Enqueue(ctx context.Context, op *models.Operation) error

	// NextDue returns up to limit operations whose next attempt time has
	// passed, oldest first.
	NextDue(ctx context.Context, now time.Time, limit int) ([]models.Operation, error)

	// MarkDone removes a completed operation.
	MarkDone(ctx context.Context, id string) error

	// MarkFailed records a failed attempt and schedules the next one.
	MarkFailed(ctx context.Context, id string, nextAttemptAt time.Time, lastError string) error

	// DeleteAllByEntity drops operations referring to an entity that no
	// longer exists locally.
	DeleteAllByEntity(ctx context.Context, entityID string) error

	// CountPending returns the number of queued operations.
	CountPending(ctx context.Context) (int, error)
}
