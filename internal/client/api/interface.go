// Package api implements the HTTP client for the stockbook backend.
package api

import (
	"context"
	"time"
)

// Item is the backend's representation of a catalog entry.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is one ledger entry of the backend.
type Record struct {
	ID     int64  `json:"id"`
	ItemID int64  `json:"itemId"`
	Type   string `json:"type"`
	Price  *int64 `json:"price,omitempty"`
	Count  int64  `json:"count"`
	Date   string `json:"date"`
	Memo   string `json:"memo,omitempty"`
}

// CreateItemRequest creates a backend item. ClientKey is the client-side
// UUID of the catalog entry; the server deduplicates creates on it.
type CreateItemRequest struct {
	ClientKey string `json:"clientKey"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// CreateRecordRequest creates a backend record, keyed by the local record's
// UUID for idempotency.
type CreateRecordRequest struct {
	ClientKey string `json:"clientKey"`
	Type      string `json:"type"`
	Price     *int64 `json:"price,omitempty"`
	Count     int64  `json:"count"`
	Date      string `json:"date"`
	Memo      string `json:"memo,omitempty"`
}

// API is the backend surface the client services depend on. The production
// implementation is *Client; tests substitute fakes.
type API interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	Ping(ctx context.Context) error
	GetItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetRecords(ctx context.Context, itemID int64) ([]Record, error)
	CreateRecord(ctx context.Context, itemID int64, req CreateRecordRequest) (*Record, error)
	PresignImageUpload(ctx context.Context) (key string, url string, err error)
}
