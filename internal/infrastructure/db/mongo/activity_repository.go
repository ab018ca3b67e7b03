package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stockpile/inventory-system/internal/core/domain"
)

const activityCollection = "activity_events"

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(activityCollection)}
}

type mongoActivityEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ResourceID string             `bson:"resource_id"`
	OwnerID    string             `bson:"owner_id"`
	Action     string             `bson:"action"`
	Title      string             `bson:"title"`
	Timestamp  time.Time          `bson:"timestamp"`
}

// Insert persists an event to the activity audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivityEvent{
		ResourceID: event.ResourceID,
		OwnerID:    event.OwnerID,
		Action:     string(event.Action),
		Title:      event.Title,
		Timestamp:  event.Timestamp,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's newest events, capped at limit.
func (r *ActivityRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.ActivityEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.ActivityEvent
	for cursor.Next(ctx) {
		var me mongoActivityEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode activity event: %w", err)
		}
		events = append(events, domain.ActivityEvent{
			ResourceID: me.ResourceID,
			OwnerID:    me.OwnerID,
			Action:     domain.ActivityAction(me.Action),
			Title:      me.Title,
			Timestamp:  me.Timestamp.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates necessary indexes on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
