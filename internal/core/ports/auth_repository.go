package ports

import (
	"context"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ProfileUpdate carries a partial identity update. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Name      *string
	Email     *string
	AvatarURL *string
	Bio       *string
}

// AuthRepository defines the interface for identity persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	MarkConfirmed(ctx context.Context, id string) error
}
