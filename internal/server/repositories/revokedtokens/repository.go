// Package revokedtokens stores credentials that were logged out before
// their expiry so that the server keeps rejecting them.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/server/models"
)

// Repository records and looks up revoked credentials.
type Repository interface {
	// Create records a revocation. Revoking the same token twice is not an error.
	Create(ctx context.Context, token *models.RevokedToken) error

	// Exists reports whether tokenID has been revoked.
	Exists(ctx context.Context, tokenID string) (bool, error)

	// DeleteExpired drops revocations whose credential expired before the
	// given instant and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
