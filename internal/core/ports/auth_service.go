package ports

import (
	"context"
	"time"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// RegisterResult is returned by Register. Either Token is set (session
// established immediately) or ConfirmationPending is true and the account
// must be confirmed before login succeeds.
type RegisterResult struct {
	Token               string
	User                *domain.User
	ConfirmationPending bool
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*RegisterResult, error)
	Confirm(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given token id until its natural expiry. Revocation
	// is best effort: a failing backend is logged, never surfaced.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CurrentSession(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error)
}
