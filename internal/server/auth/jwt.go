// Package auth issues and verifies the signed, time-limited credentials
// handed to clients after signup and login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims asserts a user identity and role. Subject carries the user id and
// ID a random token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	Role common.Role `json:"role"`
}

// UserID returns the subject of the claims.
func (c *Claims) UserID() string { return c.Subject }

// TokenID returns the unique id of the credential.
func (c *Claims) TokenID() string { return c.ID }

// Expires returns the expiration instant, or the zero time when absent.
func (c *Claims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time.UTC()
}

// Issuer signs and verifies HS256 credentials with a single shared secret.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
	newID    func() string
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces the time source used for iat/exp and for expiry checks.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer returns an Issuer for secret. An empty secret yields
// common.ErrMissingSecret.
func NewIssuer(secret []byte, validity time.Duration, opts ...IssuerOption) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, common.ErrMissingSecret
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}

	i := &Issuer{
		secret:   secret,
		validity: validity,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(i)
	}
	return i, nil
}

// Validity returns the configured credential lifetime.
func (i *Issuer) Validity() time.Duration { return i.validity }

// Issue signs a credential for userID and role and returns it together with
// its expiration instant.
func (i *Issuer) Issue(userID string, role common.Role) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        i.newID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role: role,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expires.Truncate(time.Second).UTC(), nil
}

// Verify returns the claims of tokenString when its signature matches, it
// has not expired and it names a user and a valid role. Every failure is
// reported as common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Subject == "" || claims.ID == "" || !claims.Role.IsValid() {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
