// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/logging"
	"github.com/dmitrijs2005/alumnilink/internal/server/auth"
	"github.com/dmitrijs2005/alumnilink/internal/server/config"
	"github.com/dmitrijs2005/alumnilink/internal/server/httpapi"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumnilink/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	avatarService *services.AvatarService
}

// NewApp builds the application from c. Without a DSN the server keeps its
// data in memory; with one it connects to PostgreSQL and applies migrations.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)
	if c.DatabaseDSN != "" {
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	} else {
		logger.Warn(ctx, "No database DSN configured, using in-memory storage")
		rm = repomanager.NewMemoryRepositoryManager()
	}

	if !c.StorageEnabled() {
		logger.Info(ctx, "Object storage not configured, avatar endpoints disabled")
	}

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   services.NewUserService(db, rm, issuer, logger),
		avatarService: services.NewAvatarService(c),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, app.userService, app.avatarService, app.config.CORSAllowOrigins)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeRevoked periodically drops revocations of credentials that have
// expired on their own.
func (app *App) purgeRevoked(ctx context.Context) {
	ticker := time.NewTicker(app.config.RevocationPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeRevoked(ctx)
			if err != nil {
				app.logger.Error(ctx, "purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "Purged expired revocations", "count", n)
			}
		}
	}
}

// Run blocks until a termination signal arrives or the HTTP server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.RevocationPurgeInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.purgeRevoked(ctx)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
