package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// MongoServiceCollection implements ServiceCollection for MongoDB
type MongoServiceCollection struct {
	Collection *mongo.Collection
}

// InsertService inserts a new service work order.
func (c *MongoServiceCollection) InsertService(ctx context.Context, svc models.Service) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if svc.Payment.PaymentStatus == "" {
		svc.Payment.PaymentStatus = models.PaymentUnpaid
	}

	_, err := c.Collection.InsertOne(ctx, svc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return svc.ID, nil
}

// FindServiceByID finds a service by its ID.
func (c *MongoServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID: %w", err)
	}

	var svc models.Service
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&svc)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// UpsertUnassignedService updates the open Unassigned service for a vehicle
// in place, inserting one when none exists. The single conditional write
// (backed by a partial unique index on vehicle_vin/Unassigned) guarantees at
// most one open work order per vehicle even under concurrent schedule calls.
func (c *MongoServiceCollection) UpsertUnassignedService(ctx context.Context, vin string, set bson.M) (primitive.ObjectID, bool, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, false, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{"vehicle_vin": vin, "status": models.StatusUnassigned}

	now := time.Now()
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = now

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"created_at": now,
			"payment":    bson.M{"payment_status": models.PaymentUnpaid, "cost": 0},
		},
	}

	res, err := c.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if res.UpsertedID != nil {
		id, ok := res.UpsertedID.(primitive.ObjectID)
		if !ok {
			return primitive.NilObjectID, false, fmt.Errorf("unexpected upserted id type %T", res.UpsertedID)
		}
		return id, true, nil
	}

	var svc models.Service
	if err := c.Collection.FindOne(ctx, filter).Decode(&svc); err != nil {
		return primitive.NilObjectID, false, err
	}
	return svc.ID, false, nil
}

// CountActiveByTechnician counts services holding the technician in an
// active state (Assigned or Work In Progress).
func (c *MongoServiceCollection) CountActiveByTechnician(ctx context.Context, technicianID primitive.ObjectID) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	return c.Collection.CountDocuments(ctx, bson.M{
		"technician_id": technicianID,
		"status":        bson.M{"$in": models.ActiveStatuses},
	})
}

// FindByStatuses returns services whose status is in the given set,
// optionally restricted to one technician.
func (c *MongoServiceCollection) FindByStatuses(ctx context.Context, statuses []models.ServiceStatus, technicianID *primitive.ObjectID) ([]models.Service, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{"status": bson.M{"$in": statuses}}
	if technicianID != nil {
		filter["technician_id"] = *technicianID
	}

	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FindUnassignedWithTechnician returns scheduled-but-not-yet-assigned work:
// status Unassigned with a technician already pre-selected.
func (c *MongoServiceCollection) FindUnassignedWithTechnician(ctx context.Context) ([]models.Service, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{
		"status":        models.StatusUnassigned,
		"technician_id": bson.M{"$ne": nil},
	}

	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// FindByVIN returns every service referencing a vehicle.
func (c *MongoServiceCollection) FindByVIN(ctx context.Context, vin string) ([]models.Service, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_vin": vin})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// UpdateStatus overwrites a service's status.
func (c *MongoServiceCollection) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	res, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAssigned sets the status to Assigned and stamps the assignment date.
func (c *MongoServiceCollection) MarkAssigned(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	res, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":          models.StatusAssigned,
			"assignment_date": at,
			"updated_at":      at,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPayment overwrites the payment sub-record with the latest values.
func (c *MongoServiceCollection) SetPayment(ctx context.Context, id primitive.ObjectID, payment models.Payment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	res, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"payment": payment, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
