// Package metadata stores small key/value client state, such as the current
// credential, in the local database.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get returns common.ErrorNotFound
// for absent keys; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
