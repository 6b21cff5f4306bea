// Package users is the credential store: persistence of user identity
// records keyed by id and by unique email.
package users

import (
	"context"

	"github.com/dmitrijs2005/alumnilink/internal/server/models"
)

// Repository stores user records.
//
// Create returns common.ErrAlreadyExists when the email is taken; the Get
// methods return common.ErrorNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
