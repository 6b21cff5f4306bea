package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/alumnilink/internal/dbx"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestManagers_ImplementInterface(t *testing.T) {
	var _ RepositoryManager = NewPostgresRepositoryManager()
	var _ RepositoryManager = NewMemoryRepositoryManager()
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if rt := m.RevokedTokens(db); rt == nil {
		t.Fatal("RevokedTokens() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ revokedtokens.Repository = m.RevokedTokens(db)
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	mock.ExpectBegin()
	mock.ExpectCommit()
	if err := m.WithTx(context.Background(), db, func(ctx context.Context, tx dbx.DBTX) error { return nil }); err != nil {
		t.Fatalf("WithTx commit: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	if err := m.WithTx(context.Background(), db, func(ctx context.Context, tx dbx.DBTX) error { return errors.New("boom") }); err == nil {
		t.Fatal("WithTx must return fn error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestMemoryManager_SharesStores(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	if err := m.RunMigrations(ctx, nil); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	called := false
	err := m.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		called = true
		_, err := m.RevokedTokens(tx).Exists(ctx, "x")
		return err
	})
	if err != nil || !called {
		t.Fatalf("WithTx: called=%v err=%v", called, err)
	}

	if _, err := m.Users(nil).GetUserByID(ctx, "missing"); err == nil {
		t.Fatal("expected not found")
	}
}
