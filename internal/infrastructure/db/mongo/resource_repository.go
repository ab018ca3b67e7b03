package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

const resourcesCollection = "resources"

type ResourceRepository struct {
	col *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{col: db.Collection(resourcesCollection)}
}

type mongoResource struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      string             `bson:"owner_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description,omitempty"`
	Category     string             `bson:"category"`
	Status       string             `bson:"status"`
	Quantity     *float64           `bson:"quantity,omitempty"`
	Unit         string             `bson:"unit,omitempty"`
	Cost         *float64           `bson:"cost,omitempty"`
	Supplier     string             `bson:"supplier,omitempty"`
	URL          string             `bson:"url,omitempty"`
	Location     string             `bson:"location,omitempty"`
	Notes        string             `bson:"notes,omitempty"`
	MinimumStock *float64           `bson:"minimum_stock,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Create inserts a new resource document and returns it with its generated id.
func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.InsertOne(ctx, toMongoResource(res))
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert resource: unexpected id type %T", result.InsertedID)
	}

	created := *res
	created.ID = oid.Hex()
	return &created, nil
}

// FindByID retrieves a resource by id. The query is always filtered by
// owner_id so a caller can only see rows it owns.
func (r *ResourceRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var mr mongoResource
	err = r.col.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return mr.toDomain(), nil
}

// List returns a page of resources matching filter and the total count,
// ordered by creation time descending.
func (r *ResourceRepository) List(ctx context.Context, filter ports.ListResourcesFilter) ([]domain.Resource, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"owner_id": filter.OwnerID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"supplier": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list resources: %w", err)
	}
	defer cursor.Close(ctx)

	items, err := decodeResources(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAllByOwner returns the owner's full collection, newest first.
func (r *ResourceRepository) ListAllByOwner(ctx context.Context, ownerID string) ([]domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeResources(ctx, cursor)
}

// Update replaces the caller-editable fields of the matching document and
// returns the stored representation. Creation metadata is preserved.
func (r *ResourceRepository) Update(ctx context.Context, id, ownerID string, res *domain.Resource) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	set := bson.M{
		"title":         res.Title,
		"description":   res.Description,
		"category":      string(res.Category),
		"status":        string(res.Status),
		"quantity":      res.Quantity,
		"unit":          res.Unit,
		"cost":          res.Cost,
		"supplier":      res.Supplier,
		"url":           res.URL,
		"location":      res.Location,
		"notes":         res.Notes,
		"minimum_stock": res.MinimumStock,
		"updated_at":    res.UpdatedAt,
	}

	var mr mongoResource
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "owner_id": ownerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return mr.toDomain(), nil
}

// Delete removes the matching document permanently.
func (r *ResourceRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the resources collection.
func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeResources(ctx context.Context, cursor *mongo.Cursor) ([]domain.Resource, error) {
	var items []domain.Resource
	for cursor.Next(ctx) {
		var mr mongoResource
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode resource: %w", err)
		}
		items = append(items, *mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return items, nil
}

func toMongoResource(r *domain.Resource) mongoResource {
	return mongoResource{
		OwnerID:      r.OwnerID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     string(r.Category),
		Status:       string(r.Status),
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		Cost:         r.Cost,
		Supplier:     r.Supplier,
		URL:          r.URL,
		Location:     r.Location,
		Notes:        r.Notes,
		MinimumStock: r.MinimumStock,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (mr mongoResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:           mr.ID.Hex(),
		OwnerID:      mr.OwnerID,
		Title:        mr.Title,
		Description:  mr.Description,
		Category:     domain.Category(mr.Category),
		Status:       domain.Status(mr.Status),
		Quantity:     mr.Quantity,
		Unit:         mr.Unit,
		Cost:         mr.Cost,
		Supplier:     mr.Supplier,
		URL:          mr.URL,
		Location:     mr.Location,
		Notes:        mr.Notes,
		MinimumStock: mr.MinimumStock,
		CreatedAt:    mr.CreatedAt.UTC(),
		UpdatedAt:    mr.UpdatedAt.UTC(),
	}
}
