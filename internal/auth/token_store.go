package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"helpdesk/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// TokenStoreInterface defines the interface for refresh-token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

type refreshTokenData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	payload, err := json.Marshal(refreshTokenData{UserID: userID, Email: email})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID, email string, err error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return "", "", fmt.Errorf("refresh token not found")
	}

	var tokenData refreshTokenData
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return "", "", fmt.Errorf("unmarshal token data: %w", err)
	}
	return tokenData.UserID, tokenData.Email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
