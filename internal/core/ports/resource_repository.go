package ports

import (
	"context"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ListResourcesFilter carries all query parameters for listing resources.
// OwnerID is always enforced by the service layer.
type ListResourcesFilter struct {
	OwnerID  string
	Category string // optional: filter by category
	Status   string // optional: filter by status
	Search   string // optional: partial match on title or supplier
	Page     int    // 1-based
	Limit    int    // max rows per page (capped by service)
}

// ResourceRepository defines persistence operations for resources.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	// FindByID retrieves a resource by id, additionally filtered by owner so a
	// caller only ever sees rows it owns.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Resource, error)
	// List returns a page of the owner's resources ordered by creation time
	// descending, and the total count matching the filter.
	List(ctx context.Context, filter ListResourcesFilter) ([]domain.Resource, int64, error)
	// ListAllByOwner returns the owner's full collection, newest first.
	ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Resource, error)
	Update(ctx context.Context, id, ownerID string, r *domain.Resource) (*domain.Resource, error)
	Delete(ctx context.Context, id, ownerID string) error
}
