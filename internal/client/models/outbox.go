package models

import "time"

// OpKind identifies the remote call an outbox operation represents.
type OpKind string

const (
	// OpCreateItem mirrors a catalog entry to the backend.
	OpCreateItem OpKind = "create_item"
	// OpCreateRecord posts a stock record to the backend ledger.
	OpCreateRecord OpKind = "create_record"
)

// Operation is one pending remote write. Operations are enqueued in the
// same transaction as the local write and drained in creation order by the
// reconciliation worker. EntityID points at the catalog entry or record the
// operation carries; the entity's own UUID is the idempotency key sent to
// the server, so replays cannot create duplicates.
type Operation struct {
	ID            string
	Kind          OpKind
	EntityID      string
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
}
