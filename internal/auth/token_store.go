package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"usercontacts/internal/cache"
	"usercontacts/internal/model"
	"usercontacts/internal/repository"
)

const blacklistKeyPrefix = "blacklist:access_token:"

// TokenStoreInterface defines the interface for token revocation.
type TokenStoreInterface interface {
	Blacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// TokenStore keeps revoked tokens in the database and mirrors them into Redis
// until the token would have expired on its own.
type TokenStore struct {
	repo  repository.TokenBlacklistRepository
	cache *cache.Client
	now   func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(repo repository.TokenBlacklistRepository, cache *cache.Client) *TokenStore {
	return &TokenStore{repo: repo, cache: cache, now: time.Now}
}

// Blacklist revokes token. Rows for tokens that already expired are pruned on the way.
func (s *TokenStore) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	now := s.now()

	if _, err := s.repo.DeleteExpired(ctx, now); err != nil {
		return fmt.Errorf("prune blacklist: %w", err)
	}

	entry := &model.TokenBlacklist{Token: token, ExpiresAt: expiresAt.Unix()}
	if err := s.repo.Create(ctx, entry); err != nil && !repository.IsDuplicateKey(err) {
		return fmt.Errorf("blacklist token: %w", err)
	}

	if ttl := expiresAt.Sub(now); ttl > 0 {
		_ = s.cache.Set(ctx, cacheKey(token), []byte("1"), ttl)
	}
	return nil
}

// IsBlacklisted checks Redis first and falls back to the database.
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	if data, _ := s.cache.Get(ctx, cacheKey(token)); data != nil {
		return true, nil
	}
	ok, err := s.repo.Exists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return ok, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistKeyPrefix + hex.EncodeToString(sum[:])
}
