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

// MongoTechnicianCollection implements TechnicianCollection for MongoDB
type MongoTechnicianCollection struct {
	Collection *mongo.Collection
}

// InsertTechnician inserts a new technician profile into the database
func (c *MongoTechnicianCollection) InsertTechnician(ctx context.Context, tech models.Technician) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if tech.ID.IsZero() {
		tech.ID = primitive.NewObjectID()
	}
	tech.CreatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, tech)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return tech.ID, nil
}

// FindTechnicianByID finds a technician by their ID
func (c *MongoTechnicianCollection) FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var tech models.Technician
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tech)
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

// FindTechnicianByEmail finds a technician by their email
func (c *MongoTechnicianCollection) FindTechnicianByEmail(ctx context.Context, email string) (*models.Technician, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var tech models.Technician
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&tech)
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

// FindTechnicianByCredential finds the technician linked to a credential id.
// Used to resolve the acting caller when a status update comes in.
func (c *MongoTechnicianCollection) FindTechnicianByCredential(ctx context.Context, credentialID string) (*models.Technician, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(credentialID)
	if err != nil {
		return nil, err
	}

	var tech models.Technician
	err = c.Collection.FindOne(ctx, bson.M{"credential": objectID}).Decode(&tech)
	if err != nil {
		return nil, err
	}
	return &tech, nil
}
