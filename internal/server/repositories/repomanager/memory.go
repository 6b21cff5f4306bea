package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumnilink/internal/dbx"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process memory. The DBTX
// arguments are ignored and there is nothing to migrate.
type MemoryRepositoryManager struct {
	users   *users.MemoryStore
	revoked *revokedtokens.MemoryStore
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryStore(),
		revoked: revokedtokens.NewMemoryStore(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// WithTx calls fn directly; memory repositories apply each call atomically.
func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return users.NewMemoryRepository(m.users)
}

func (m *MemoryRepositoryManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository {
	return revokedtokens.NewMemoryRepository(m.revoked)
}
