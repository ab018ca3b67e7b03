package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// TokenStore keeps short-lived auth token state in Redis: the logout
// denylist (key revoked:<jti>) and pending email confirmation tokens
// (key confirm:<token>).
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke denylists a token id for ttl, after which the token has expired on
// its own anyway.
func (t *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := t.client.Set(ctx, "revoked:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been denylisted.
func (t *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := t.client.Exists(ctx, "revoked:"+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// PutConfirmation stores a pending confirmation token bound to a user id.
func (t *TokenStore) PutConfirmation(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := t.client.Set(ctx, "confirm:"+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation token: %w", err)
	}
	return nil
}

// RedeemConfirmation returns the user id bound to the token and deletes it.
// Unknown or expired tokens yield domain.ErrInvalidToken.
func (t *TokenStore) RedeemConfirmation(ctx context.Context, token string) (string, error) {
	userID, err := t.client.GetDel(ctx, "confirm:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("redeem confirmation token: %w", err)
	}
	return userID, nil
}
