package auth

import (
	"context"
	"time"

	"github.com/akumarujon/imf-gadget-api/internal/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenStoreInterface defines the interface for token revocation operations.
type TokenStoreInterface interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token IDs in Redis until their natural expiry.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// RevokeToken marks a token ID as revoked. The TTL should match the time
// remaining until the token expires on its own; an already-revoked token is
// left with its original TTL.
func (s *TokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedTokenKeyPrefix + tokenID
	// marker only; repeat logouts must not extend the entry's lifetime
	_, err := s.cache.SetNX(ctx, key, []byte("1"), ttl)
	return err
}

// IsTokenRevoked checks if a token ID is on the revocation list.
func (s *TokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil // fail open if redis unavailable
	}
	return data != nil, nil
}
