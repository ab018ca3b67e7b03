package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// PreferenceStore persists per-identity UI preferences. The theme lives
// under a single named key, pref:theme:<user_id>, with no expiry.
type PreferenceStore struct {
	client *redis.Client
}

// NewPreferenceStore creates a PreferenceStore wrapping the given Redis client.
func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

// GetTheme returns the stored preference. Unset preferences default to
// "system".
func (p *PreferenceStore) GetTheme(ctx context.Context, userID string) (domain.Theme, error) {
	val, err := p.client.Get(ctx, p.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ThemeSystem, nil
		}
		return "", fmt.Errorf("get theme: %w", err)
	}

	theme := domain.Theme(val)
	if !theme.IsValid() {
		return domain.ThemeSystem, nil
	}
	return theme, nil
}

// SetTheme stores the preference. Only light, dark and system are accepted.
func (p *PreferenceStore) SetTheme(ctx context.Context, userID string, theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrValidation, theme)
	}
	if err := p.client.Set(ctx, p.key(userID), string(theme), 0).Err(); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

func (p *PreferenceStore) key(userID string) string {
	return "pref:theme:" + userID
}
