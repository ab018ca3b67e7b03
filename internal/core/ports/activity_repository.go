package ports

import (
	"context"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ActivityRepository handles persistence of the resource change audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// ListByOwner returns the owner's newest events, capped at limit.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.ActivityEvent, error)
}
