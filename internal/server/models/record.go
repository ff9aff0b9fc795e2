package models

import "time"

// Record is one ledger row of an item: a purchase, a sale, or an inbound
// stock movement. Price is the line total and may be absent. Date is the
// calendar day in YYYY-MM-DD. Deduplication works the same way as for
// items: (user_id, client_key) is unique.
type Record struct {
	ID        int64
	ItemID    int64
	UserID    string
	ClientKey string
	Type      string
	Price     *int64
	Count     int64
	Date      string
	Memo      string
	CreatedAt time.Time
}
