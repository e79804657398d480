package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/lottogen-backend/internal/models"
	"github.com/ArowuTest/lottogen-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionRepository implements the repositories.CollectionRepository interface
type CollectionRepository struct {
	collection *mongo.Collection
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(db *mongo.Database) repositories.CollectionRepository {
	return &CollectionRepository{
		collection: db.Collection("collections"),
	}
}

// Create inserts a new ticket collection
func (r *CollectionRepository) Create(ctx context.Context, c *models.Collection) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	if c.Tickets == nil {
		c.Tickets = []models.Ticket{}
	}
	res, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a collection by ID
func (r *CollectionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	var c models.Collection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collection %s: %w", id.Hex(), err)
	}
	return &c, nil
}

// FindAll returns every collection, oldest first
func (r *CollectionRepository) FindAll(ctx context.Context) ([]*models.Collection, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute find query: %w", err)
	}
	defer cursor.Close(ctx)

	var collections []*models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, fmt.Errorf("failed to decode collections: %w", err)
	}
	if collections == nil {
		collections = []*models.Collection{}
	}
	return collections, nil
}

// Replace stores the full collection document
func (r *CollectionRepository) Replace(ctx context.Context, c *models.Collection) error {
	c.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", c.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a collection by ID
func (r *CollectionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
