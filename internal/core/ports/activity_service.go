package ports

import (
	"context"
	"time"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

// ActivityEventInput is the DTO handed from the resource service to the
// activity pipeline.
type ActivityEventInput struct {
	ResourceID string
	OwnerID    string
	Action     string
	Title      string
	Timestamp  time.Time
}

// ActivityService processes resource change events and serves the feed.
type ActivityService interface {
	Process(ctx context.Context, event ActivityEventInput) error
	ListRecent(ctx context.Context, ownerID string, limit int) ([]domain.ActivityEvent, error)
}
