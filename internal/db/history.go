package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// MongoHistoryCollection implements HistoryCollection for MongoDB
type MongoHistoryCollection struct {
	Collection *mongo.Collection
}

// InsertHistory appends a payment event record. Histories are never updated
// or deleted.
func (c *MongoHistoryCollection) InsertHistory(ctx context.Context, h models.History) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	h.CreatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, h)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return h.ID, nil
}

// FindHistories returns all payment event records.
func (c *MongoHistoryCollection) FindHistories(ctx context.Context) ([]models.History, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var histories []models.History
	if err := cursor.All(ctx, &histories); err != nil {
		return nil, err
	}
	return histories, nil
}
