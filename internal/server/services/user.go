// Package services contains server-side business logic. This file implements
// UserService: signup, login, credential resolution and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/dmitrijs2005/alumnilink/internal/dbx"
	"github.com/dmitrijs2005/alumnilink/internal/logging"
	"github.com/dmitrijs2005/alumnilink/internal/server/auth"
	"github.com/dmitrijs2005/alumnilink/internal/server/models"
	"github.com/dmitrijs2005/alumnilink/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/crypto/bcrypt"
)

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

// SignupInput is the registration payload.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     common.Role
}

// Validate checks presence and format of every field.
func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
		validation.Field(&in.Role, validation.Required, validation.In(common.RoleStudent, common.RoleAlumni)),
	)
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	)
}

// Session is a freshly issued credential with the user it belongs to.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Identity is what a verified, unrevoked credential asserts.
type Identity struct {
	UserID    string
	Role      common.Role
	TokenID   string
	ExpiresAt time.Time
}

// UserService implements the account lifecycle on top of the credential
// store and the token issuer.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	logger      logging.Logger
	bcryptCost  int
	now         func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// UserServiceOption customises a UserService.
type UserServiceOption func(*UserService)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *UserService) { s.bcryptCost = cost }
}

// WithServiceClock replaces the time source used for revocation bookkeeping.
func WithServiceClock(now func() time.Time) UserServiceOption {
	return func(s *UserService) { s.now = now }
}

// NewUserService constructs a UserService. db may be nil when m keeps its
// data in memory.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, logger logging.Logger, opts ...UserServiceOption) *UserService {
	s := &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		logger:      logger.With("module", "users"),
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Signup creates a user and issues a credential for it. A taken email yields
// common.ErrAlreadyExists and invalid input common.ErrValidation; in both
// cases no credential is issued.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	in.Email = common.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		s.logger.Error(ctx, "user creation failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID, "role", user.Role)
	return s.issue(ctx, user)
}

// Login checks email and password and issues a credential. Unknown email
// and wrong password are indistinguishable (common.ErrorUnauthorized).
func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = common.NormalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.checkPassword(s.getDummyHash(), in.Password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.checkPassword(user.PasswordHash, in.Password) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(ctx, user)
}

// Authenticate resolves a presented credential. Invalid, expired and revoked
// credentials all yield common.ErrInvalidToken.
func (s *UserService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).Exists(ctx, claims.TokenID())
	if err != nil {
		s.logger.Error(ctx, "revocation lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	if revoked {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		UserID:    claims.UserID(),
		Role:      claims.Role,
		TokenID:   claims.TokenID(),
		ExpiresAt: claims.Expires(),
	}, nil
}

// Me returns the user behind an authenticated identity. A credential for a
// user that no longer exists yields common.ErrorUnauthorized.
func (s *UserService) Me(ctx context.Context, id *Identity) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Logout revokes the credential behind id until it expires. Revoking an
// already revoked credential is a no-op.
func (s *UserService) Logout(ctx context.Context, id *Identity) error {
	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.RevokedTokens(tx)

		exists, err := repo.Exists(ctx, id.TokenID)
		if err != nil || exists {
			return err
		}

		return repo.Create(ctx, &models.RevokedToken{
			TokenID:   id.TokenID,
			UserID:    id.UserID,
			ExpiresAt: id.ExpiresAt,
		})
	})
	if err != nil {
		s.logger.Error(ctx, "logout failed", "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged out", "user_id", id.UserID)
	return nil
}

// PurgeRevoked drops revocations of credentials that have expired anyway.
func (s *UserService) PurgeRevoked(ctx context.Context) (int64, error) {
	n, err := s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging revoked tokens: %w", err)
	}
	return n, nil
}

// --- helpers below ---

func (s *UserService) issue(ctx context.Context, user *models.User) (*Session, error) {
	token, expires, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}
	return &Session{User: user, Token: token, ExpiresAt: expires}, nil
}

func (s *UserService) checkPassword(hash []byte, candidate string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

// getDummyHash returns a hash compared against when the email is unknown, so
// both failure paths cost one bcrypt comparison.
func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("alumnilink-no-such-user"), s.bcryptCost)
	})
	return s.dummyHash
}
