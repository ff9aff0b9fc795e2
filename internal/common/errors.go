// Package common defines shared constants and sentinel errors used across
// the client and server layers of stockbook. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorInvalidDomain     = errors.New("unknown product domain")
	ErrorInvalidRecordType = errors.New("unknown record type")
	ErrorInvalidDate       = errors.New("invalid date")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Sync errors.
	ErrItemNotResolved = errors.New("remote item not resolved")
)
