package ports

import (
	"context"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ResourceInput carries all caller-editable resource fields. Numeric fields
// are nil when the caller left them blank.
type ResourceInput struct {
	Title        string
	Description  string
	Category     string
	Status       string
	Quantity     *float64
	Unit         string
	Cost         *float64
	Supplier     string
	URL          string
	Location     string
	Notes        string
	MinimumStock *float64
}

// ListResourcesInput carries the parameters for the list endpoint.
type ListResourcesInput struct {
	Category string
	Status   string
	Search   string
	Page     int
	Limit    int
}

// ListResourcesResult is returned by List.
type ListResourcesResult struct {
	Items      []domain.Resource
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ResourceService defines use-case operations for resources. Every operation
// is scoped to the authenticated owner.
type ResourceService interface {
	Create(ctx context.Context, ownerID string, input ResourceInput) (*domain.Resource, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Resource, error)
	List(ctx context.Context, ownerID string, input ListResourcesInput) (*ListResourcesResult, error)
	Update(ctx context.Context, ownerID, id string, input ResourceInput) (*domain.Resource, error)
	Delete(ctx context.Context, ownerID, id string) error
	// Stats recomputes the aggregate view from the owner's current
	// collection on every call.
	Stats(ctx context.Context, ownerID string) (*domain.Stats, error)
}
