// Package models defines the client-side catalog and record types held in
// the local SQLite mirror.
package models

import (
	"github.com/google/uuid"

	"github.com/stockbook-app/stockbook/internal/common"
)

// Domain separates the two product categories tracked by the app. Each
// domain has its own catalog and record collections.
type Domain string

const (
	DomainShoes Domain = "shoes"
	DomainFoods Domain = "foods"
)

// ParseDomain validates a domain string.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainShoes, DomainFoods:
		return Domain(s), nil
	}
	return "", common.ErrorInvalidDomain
}

// CatalogEntry is one purchasable variant of a named product: a shoe in a
// specific size, or a food item in a specific option. Entries of the same
// Name form one product in the UI.
//
// RemoteID is the stable foreign key to the backend item, persisted at the
// moment of first successful remote creation. While it is nil the entry has
// never been reconciled; lookups fall back to (name, size) matching.
type CatalogEntry struct {
	ID       string
	Domain   Domain
	Name     string
	Size     string
	ImageURL string
	Memo     string
	RemoteID *int64
}

// NewCatalogEntry builds an entry with a fresh client-generated UUID. The
// UUID doubles as the idempotency key when the entry is created remotely.
func NewCatalogEntry(domain Domain, name, size string) *CatalogEntry {
	return &CatalogEntry{
		ID:     uuid.NewString(),
		Domain: domain,
		Name:   name,
		Size:   size,
	}
}
