// Package session owns the client-side authentication state: who is logged
// in, with which credential, and whether a start-up restoration is still
// running.
//
// Every state-changing operation takes a new epoch when it starts and
// applies its outcome only if the epoch is unchanged when the server answers,
// so a late answer never overwrites a newer decision. No lock is held while a
// request is in flight.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/client/client"
	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
)

const DefaultTimeout = 15 * time.Second

var (
	ErrRoleMismatch         = errors.New("role mismatch")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAlreadyAuthenticated = errors.New("already logged in")
	ErrNotAuthenticated     = errors.New("not logged in")
	// ErrSuperseded is returned when a newer operation (or Close) took over
	// while the request was in flight; its outcome was discarded.
	ErrSuperseded = errors.New("session changed while the request was in flight")
	ErrClosed     = errors.New("session manager closed")
)

type Option func(*Manager)

// WithTimeout bounds every server call made by the manager.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

type Manager struct {
	backend client.Backend
	store   TokenStore
	logger  logging.Logger
	timeout time.Duration

	closeCtx context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	state  State
	user   *client.User
	token  string
	epoch  uint64
	closed bool
}

func NewManager(backend client.Backend, store TokenStore, logger logging.Logger, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		backend:  backend,
		store:    store,
		logger:   logger.With("module", "session"),
		timeout:  DefaultTimeout,
		closeCtx: ctx,
		cancel:   cancel,
		state:    StateUninitialized,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Token returns the current credential, or "" when nobody is logged in.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Start restores the session from the stored credential. Any failure leaves
// the session anonymous with the stored credential removed; Start itself
// only fails when the manager is closed.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	epoch := m.bumpLocked()
	m.state = StateRestoring
	m.mu.Unlock()

	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "cannot read stored credential", "error", err)
		token = ""
	}

	var (
		user       *client.User
		restoreErr error
	)
	if token != "" {
		cctx, cancel := m.callContext(ctx)
		user, restoreErr = m.backend.Restore(cctx, token)
		cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		m.logger.Debug(ctx, "restoration result discarded", "epoch", epoch)
		return nil
	}

	if token == "" || restoreErr != nil {
		if restoreErr != nil {
			m.logger.Info(ctx, "stored credential rejected", "error", restoreErr)
		}
		m.setAnonymousLocked(ctx)
		return nil
	}

	m.state = StateAuthenticated
	m.user = user
	m.token = token
	return nil
}

// Login authenticates with email and password. A non-empty claimedRole must
// match the account's role; on mismatch the issued credential is discarded
// and the session becomes anonymous. An empty claimedRole accepts whatever
// role the account has.
func (m *Manager) Login(ctx context.Context, email, password string, claimedRole common.Role) (*client.User, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	epoch := m.bumpLocked()
	m.mu.Unlock()

	cctx, cancel := m.callContext(ctx)
	res, err := m.backend.Login(cctx, common.NormalizeEmail(email), password)
	cancel()

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		if err == nil {
			m.revoke(ctx, res.Token)
		}
		return nil, ErrSuperseded
	}

	previous := m.currentTokenLocked(ctx)

	if err != nil {
		// a failed login still ends an interrupted restoration
		interrupted := m.state == StateRestoring
		if interrupted {
			m.setAnonymousLocked(ctx)
		}
		m.mu.Unlock()
		if interrupted {
			m.revoke(ctx, previous)
		}
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if claimedRole != "" && res.User.Role != claimedRole {
		m.setAnonymousLocked(ctx)
		m.mu.Unlock()
		m.revoke(ctx, res.Token, previous)
		return nil, fmt.Errorf("%w: you cannot login as a %s with these credentials", ErrRoleMismatch, claimedRole)
	}

	if err := m.store.Save(ctx, res.Token); err != nil {
		m.logger.Warn(ctx, "cannot persist credential", "error", err)
	}
	user := res.User
	m.state = StateAuthenticated
	m.user = &user
	m.token = res.Token
	m.mu.Unlock()

	if previous != "" && previous != res.Token {
		m.revoke(ctx, previous)
	}

	m.logger.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	out := user
	return &out, nil
}

// Signup creates an account. The credential issued by the server is not
// kept: the session stays anonymous and the caller logs in explicitly.
func (m *Manager) Signup(ctx context.Context, email, password, name string, role common.Role) (*client.User, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if m.state == StateAuthenticated {
		m.mu.Unlock()
		return nil, ErrAlreadyAuthenticated
	}
	epoch := m.bumpLocked()
	m.mu.Unlock()

	cctx, cancel := m.callContext(ctx)
	res, err := m.backend.Signup(cctx, client.SignupRequest{
		Name:     name,
		Email:    common.NormalizeEmail(email),
		Password: password,
		Role:     role,
	})
	cancel()

	m.mu.Lock()
	if m.epoch == epoch && m.state == StateRestoring {
		m.setAnonymousLocked(ctx)
	}
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}

	m.revoke(ctx, res.Token)

	user := res.User
	return &user, nil
}

// Logout ends the session. Local state and the stored credential are
// dropped before the server is told; the server call is best-effort and
// Logout always succeeds.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.bumpLocked()
	token := m.currentTokenLocked(ctx)
	m.setAnonymousLocked(ctx)
	m.mu.Unlock()

	m.revoke(ctx, token)
	return nil
}

// Verify asks the server what the current credential asserts. A credential
// the server no longer accepts ends the session.
func (m *Manager) Verify(ctx context.Context) (*client.TokenInfo, error) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	cctx, cancel := m.callContext(ctx)
	info, err := m.backend.Verify(cctx, token)
	cancel()

	if errors.Is(err, client.ErrUnauthorized) {
		m.mu.Lock()
		if m.token == token {
			m.bumpLocked()
			m.setAnonymousLocked(ctx)
		}
		m.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	return info, err
}

// Close tears the manager down. Results of requests still in flight are
// discarded and their contexts cancelled.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.bumpLocked()
	m.mu.Unlock()
	m.cancel()
}

// --- helpers below ---

func (m *Manager) bumpLocked() uint64 {
	m.epoch++
	return m.epoch
}

func (m *Manager) snapshotLocked() Snapshot {
	s := Snapshot{
		State:   m.state,
		Loading: m.state == StateUninitialized || m.state == StateRestoring,
	}
	if m.state == StateAuthenticated && m.user != nil {
		u := *m.user
		s.User = &u
		s.Token = m.token
	}
	return s
}

// currentTokenLocked returns the credential the session holds. During a
// restoration it is still only in the store.
func (m *Manager) currentTokenLocked(ctx context.Context) string {
	if m.token == "" && m.state == StateRestoring {
		if stored, err := m.store.Load(ctx); err == nil {
			return stored
		}
	}
	return m.token
}

func (m *Manager) setAnonymousLocked(ctx context.Context) {
	m.state = StateAnonymous
	m.user = nil
	m.token = ""
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "cannot clear stored credential", "error", err)
	}
}

// callContext bounds a server call by the manager timeout and by Close.
func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	stop := context.AfterFunc(m.closeCtx, cancel)
	return cctx, func() {
		stop()
		cancel()
	}
}

// revoke asks the server to invalidate tokens. Failures are only logged.
func (m *Manager) revoke(ctx context.Context, tokens ...string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		cctx, cancel := m.callContext(context.WithoutCancel(ctx))
		if err := m.backend.Logout(cctx, t); err != nil {
			m.logger.Debug(ctx, "server logout failed", "error", err)
		}
		cancel()
	}
}
