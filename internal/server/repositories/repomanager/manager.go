// Package repomanager hands out repository instances bound to a DBTX, so
// services can run repositories either on the pool or inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/stockbook-app/stockbook/internal/dbx"
	"github.com/stockbook-app/stockbook/internal/server/repositories/items"
	"github.com/stockbook-app/stockbook/internal/server/repositories/records"
	"github.com/stockbook-app/stockbook/internal/server/repositories/refreshtokens"
	"github.com/stockbook-app/stockbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Items(db dbx.DBTX) items.Repository
	Records(db dbx.DBTX) records.Repository
}
