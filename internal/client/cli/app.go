package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/alumnilink/internal/client/client"
	"github.com/dmitrijs2005/alumnilink/internal/client/config"
	"github.com/dmitrijs2005/alumnilink/internal/client/guard"
	"github.com/dmitrijs2005/alumnilink/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/alumnilink/internal/client/session"
	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
)

// profileAPI is the part of the HTTP API the CLI calls directly; everything
// auth related goes through the session manager.
type profileAPI interface {
	Ping(ctx context.Context) error
	PresignAvatarUpload(ctx context.Context, token, contentType string) (*client.AvatarUpload, error)
	AvatarURL(ctx context.Context, token, key string) (string, error)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Manager
	router  *guard.Router
	api     profileAPI
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	view string
}

// NewApp opens the local database and wires the session manager to the API.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DBPath, "error", err)
		return nil, err
	}

	backend := client.NewHTTPBackend(c.BaseURL, &http.Client{}, logger)
	store := session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	mgr := session.NewManager(backend, store, logger, session.WithTimeout(c.RequestTimeout))

	a := newApp(mgr, backend, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.config = c
	a.db = db
	return a, nil
}

func newApp(mgr *session.Manager, api profileAPI, reader *bufio.Reader, out io.Writer, logger logging.Logger) *App {
	return &App{
		logger:  logger.With("module", "cli"),
		session: mgr,
		router:  guard.NewRouter(),
		api:     api,
		reader:  reader,
		out:     out,
		view:    common.PublicEntryPath,
	}
}

// Run restores the previous session in the background and serves the REPL
// until the user leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Welcome to AlumniLink CLI (type 'help' for commands)")

	go a.restore(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.session.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close database", "error", err)
		}
	}
}

// restore runs the start-up restoration. A visitor still on the public
// entry is taken to their dashboard once it completes.
func (a *App) restore(ctx context.Context) {
	if err := a.session.Start(ctx); err != nil {
		a.logger.Debug(ctx, "restoration skipped", "error", err)
		return
	}
	snap := a.session.Snapshot()
	if !snap.Authenticated() {
		return
	}

	a.mu.Lock()
	moved := a.view == common.PublicEntryPath
	if moved {
		a.view = guard.HomeFor(snap.User.Role)
	}
	a.mu.Unlock()

	if moved {
		printlnFn(fmt.Sprintf("Welcome back, %s!", snap.User.Name))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) currentView() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) setView(path string) {
	a.mu.Lock()
	a.view = path
	a.mu.Unlock()
}

// getStatus renders the prompt status, e.g. "(jane@example.com student) /student-dashboard".
func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	s := ""
	switch {
	case snap.Pending():
		s = "(restoring) "
	case snap.Authenticated():
		s = fmt.Sprintf("(%s %s) ", snap.User.Email, snap.User.Role)
	}
	return s + a.currentView()
}
