package ports

import (
	"context"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ThemeStore persists the per-identity theme preference under a single named
// key, independent of resource data.
type ThemeStore interface {
	// GetTheme returns the stored preference, or ThemeSystem when unset.
	GetTheme(ctx context.Context, userID string) (domain.Theme, error)
	SetTheme(ctx context.Context, userID string, theme domain.Theme) error
}
