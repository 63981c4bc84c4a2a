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

// MongoCredentialCollection implements CredentialCollection for MongoDB
type MongoCredentialCollection struct {
	Collection *mongo.Collection
}

// InsertCredential inserts a new credential into the database
func (c *MongoCredentialCollection) InsertCredential(ctx context.Context, cred models.Credential) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if cred.ID.IsZero() {
		cred.ID = primitive.NewObjectID()
	}
	cred.CreatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, cred)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return cred.ID, nil
}

// FindCredentialByEmail finds a credential by its lowercase-normalized email
func (c *MongoCredentialCollection) FindCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var cred models.Credential
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&cred)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// FindCredentialByID finds a credential by its ID
func (c *MongoCredentialCollection) FindCredentialByID(ctx context.Context, id string) (*models.Credential, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var cred models.Credential
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cred)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}
