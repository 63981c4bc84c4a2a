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

// MongoVehicleCollection implements VehicleCollection for MongoDB
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record into the collection.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	vehicle.CreatedAt = time.Now()
	if vehicle.OdometerReadings == nil {
		vehicle.OdometerReadings = []models.OdometerReading{}
	}
	if vehicle.ServiceDetails == nil {
		vehicle.ServiceDetails = []models.ServiceDetail{}
	}

	_, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return vehicle.ID, nil
}

// FindVehicleByVIN finds a vehicle by its VIN.
func (c *MongoVehicleCollection) FindVehicleByVIN(ctx context.Context, vin string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var vehicle models.Vehicle
	err := c.Collection.FindOne(ctx, bson.M{"vin": vin}).Decode(&vehicle)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicleByID finds a vehicle by its object id.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindSupportedVehicles returns vehicles restricted to the supported
// brand/type allow-list.
func (c *MongoVehicleCollection) FindSupportedVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{
		"make": bson.M{"$in": models.ValidBrands},
		"type": bson.M{"$in": models.ValidVehicleTypes},
	}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// PushOdometerReading appends a reading to the vehicle's reading sequence.
func (c *MongoVehicleCollection) PushOdometerReading(ctx context.Context, vin string, reading models.OdometerReading) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	res, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"vin": vin},
		bson.M{"$push": bson.M{"odometer_readings": reading}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AppendServiceDetail appends a paid-service summary and advances the
// vehicle's last service date.
func (c *MongoVehicleCollection) AppendServiceDetail(ctx context.Context, vin string, detail models.ServiceDetail, servicedAt time.Time) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	res, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"vin": vin},
		bson.M{
			"$push": bson.M{"service_details": detail},
			"$set":  bson.M{"last_service_date": servicedAt},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
