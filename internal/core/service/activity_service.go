package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

const defaultFeedLimit = 20

// DedupChecker abstracts the idempotency store (Redis) for activity events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, resourceID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, resourceID, action string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Process validates, deduplicates, and persists a single activity event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityEventInput) error {
	action := domain.ActivityAction(in.Action)
	switch action {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
	default:
		return fmt.Errorf("process activity: %w: unknown action %q", domain.ErrValidation, in.Action)
	}

	// Idempotency check: silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.ResourceID, in.Action, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("resource_id", in.ResourceID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("resource_id", in.ResourceID).Str("action", in.Action).Msg("duplicate activity event skipped")
		return nil
	}

	// Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.ResourceID, in.Action, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("resource_id", in.ResourceID).Msg("failed to set dedup key")
	}

	event := &domain.ActivityEvent{
		ResourceID: in.ResourceID,
		OwnerID:    in.OwnerID,
		Action:     action,
		Title:      in.Title,
		Timestamp:  in.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("process activity: insert event: %w", err)
	}

	s.log.Info().
		Str("resource_id", in.ResourceID).
		Str("action", in.Action).
		Msg("activity event recorded")

	return nil
}

// ListRecent returns the owner's newest events.
func (s *activityService) ListRecent(ctx context.Context, ownerID string, limit int) ([]domain.ActivityEvent, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.repo.ListByOwner(ctx, ownerID, limit)
}
