package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/alumnilink/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// TokenStore persists the current credential between runs. The manager is
// its only writer.
type TokenStore interface {
	// Load returns the stored credential, or "" when there is none.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the credential under common.TokenStorageKey in the
// local metadata table.
type MetadataTokenStore struct {
	repo metadata.Repository
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo}
}

func (s *MetadataTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, common.TokenStorageKey)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	return token, err
}

func (s *MetadataTokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, token)
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenStorageKey)
}
