// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/stockbook-app/stockbook/internal/server/models"
)

type Repository interface {
	// Create stores a new user. A duplicate username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin looks a user up by username. Absence yields
	// common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
