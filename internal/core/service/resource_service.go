package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ActivityEnqueuer hands change events to the asynchronous activity pipeline.
type ActivityEnqueuer interface {
	Enqueue(event ports.ActivityEventInput)
}

// ResourceService implements owner-scoped resource CRUD and statistics.
type ResourceService struct {
	repo     ports.ResourceRepository
	activity ActivityEnqueuer
	logger   zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, activity ActivityEnqueuer, logger zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, activity: activity, logger: logger}
}

// Create validates the input, persists a new resource owned by ownerID and
// returns the stored record with server-assigned id and timestamps.
func (s *ResourceService) Create(ctx context.Context, ownerID string, input ports.ResourceInput) (*domain.Resource, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	resource, err := buildResource(ownerID, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	created, err := s.repo.Create(ctx, resource)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create resource")
		return nil, err
	}

	s.recordActivity(created, domain.ActionCreated)
	s.logger.Info().Str("resource_id", created.ID).Str("owner_id", ownerID).Msg("resource created")
	return created, nil
}

// Get returns a single resource. Absent ids and resources owned by another
// identity are indistinguishable to the caller.
func (s *ResourceService) Get(ctx context.Context, ownerID, id string) (*domain.Resource, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.repo.FindByID(ctx, id, ownerID)
}

// List returns a page of the owner's resources, newest first.
func (s *ResourceService) List(ctx context.Context, ownerID string, input ports.ListResourcesInput) (*ports.ListResourcesResult, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListResourcesFilter{
		OwnerID:  ownerID,
		Category: input.Category,
		Status:   input.Status,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list resources")
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListResourcesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update validates the input and replaces the caller-editable fields of the
// resource, refreshing its modification timestamp.
func (s *ResourceService) Update(ctx context.Context, ownerID, id string, input ports.ResourceInput) (*domain.Resource, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	resource, err := buildResource(ownerID, input)
	if err != nil {
		return nil, err
	}
	resource.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, ownerID, resource)
	if err != nil {
		if err != domain.ErrResourceNotFound {
			s.logger.Error().Err(err).Str("resource_id", id).Msg("failed to update resource")
		}
		return nil, err
	}

	s.recordActivity(updated, domain.ActionUpdated)
	s.logger.Info().Str("resource_id", id).Str("owner_id", ownerID).Msg("resource updated")
	return updated, nil
}

// Delete removes the resource permanently. There is no soft delete.
func (s *ResourceService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrNotAuthenticated
	}

	// Fetch first so the activity event can carry the title snapshot.
	existing, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if err != domain.ErrResourceNotFound {
			s.logger.Error().Err(err).Str("resource_id", id).Msg("failed to delete resource")
		}
		return err
	}

	s.recordActivity(existing, domain.ActionDeleted)
	s.logger.Info().Str("resource_id", id).Str("owner_id", ownerID).Msg("resource deleted")
	return nil
}

// Stats recomputes the aggregate view from the owner's current collection.
// No caching: the collection can change between calls and collections are
// small enough that a linear pass is cheap.
func (s *ResourceService) Stats(ctx context.Context, ownerID string) (*domain.Stats, error) {
	if ownerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	resources, err := s.repo.ListAllByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to load collection for stats")
		return nil, err
	}
	stats := domain.ComputeStats(resources)
	return &stats, nil
}

func (s *ResourceService) recordActivity(r *domain.Resource, action domain.ActivityAction) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(ports.ActivityEventInput{
		ResourceID: r.ID,
		OwnerID:    r.OwnerID,
		Action:     string(action),
		Title:      r.Title,
		Timestamp:  time.Now().UTC(),
	})
}

// buildResource validates caller input and shapes it into a domain resource.
// Validation happens here once; repositories trust their input.
func buildResource(ownerID string, in ports.ResourceInput) (*domain.Resource, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	category := domain.Category(in.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, in.Category)
	}
	status := domain.Status(in.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}
	for name, v := range map[string]*float64{
		"quantity":      in.Quantity,
		"cost":          in.Cost,
		"minimum_stock": in.MinimumStock,
	} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || *v < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, name)
		}
	}

	return &domain.Resource{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     category,
		Status:       status,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Cost:         in.Cost,
		Supplier:     in.Supplier,
		URL:          in.URL,
		Location:     in.Location,
		Notes:        in.Notes,
		MinimumStock: in.MinimumStock,
	}, nil
}
