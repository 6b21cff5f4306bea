package revokedtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/server/models"
)

// MemoryStore keeps revocations in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]models.RevokedToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]models.RevokedToken)}
}

type MemoryRepository struct {
	store *MemoryStore
}

func NewMemoryRepository(store *MemoryStore) *MemoryRepository {
	return &MemoryRepository{store: store}
}

func (r *MemoryRepository) Create(ctx context.Context, token *models.RevokedToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.tokens[token.TokenID]; ok {
		return nil
	}
	t := *token
	t.CreatedAt = time.Now().UTC()
	r.store.tokens[t.TokenID] = t
	return nil
}

func (r *MemoryRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.tokens[tokenID]
	return ok, nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var n int64
	for id, t := range r.store.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.store.tokens, id)
			n++
		}
	}
	return n, nil
}
