// Package repomanager vends repository implementations for a storage backend
// and applies its schema.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumnilink/internal/dbx"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX handle, so the
// same code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
