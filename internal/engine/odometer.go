package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// OdometerResult is the response of a recorded reading.
type OdometerResult struct {
	Reading            models.OdometerReading `json:"reading"`
	NextServiceMileage int                    `json:"nextServiceMileage"`
	ServiceID          *primitive.ObjectID    `json:"serviceId,omitempty"`
}

// RecordOdometerReading appends a mileage entry to a vehicle. The very first
// reading also opens a maintenance work order, which is why it requires a
// serviceType; later readings only append.
func (e *Engine) RecordOdometerReading(ctx context.Context, vin string, mileage int, serviceType string) (*OdometerResult, error) {
	vehicle, err := e.Vehicles.FindVehicleByVIN(ctx, vin)
	if err != nil {
		return nil, &ValidationError{Message: "Vehicle VIN does not exist."}
	}

	if mileage <= 0 {
		return nil, &ValidationError{Message: "mileage must be a positive number greater than 0"}
	}

	var serviceID *primitive.ObjectID
	if len(vehicle.OdometerReadings) == 0 {
		if serviceType == "" {
			return nil, &ValidationError{
				Message: "serviceType is required when creating an initial service",
			}
		}
		if !models.IsValidServiceType(serviceType) {
			return nil, &ValidationError{
				Message: `Invalid serviceType. Must be "Oil Change", "Brake Repair", or "Battery Test"`,
			}
		}

		// Reuses the vehicle's open Unassigned service when one exists;
		// mileage tracking never opens a second work order.
		id, _, err := e.Services.UpsertUnassignedService(ctx, vehicle.VIN, bson.M{
			"service_type": serviceType,
		})
		if err != nil {
			return nil, fmt.Errorf("create initial service: %w", err)
		}
		serviceID = &id
	}

	reading := models.OdometerReading{
		ReadingID: uuid.NewString(),
		Mileage:   mileage,
		Date:      time.Now(),
	}
	if err := e.Vehicles.PushOdometerReading(ctx, vehicle.VIN, reading); err != nil {
		return nil, fmt.Errorf("push reading: %w", err)
	}

	return &OdometerResult{
		Reading:            reading,
		NextServiceMileage: mileage + e.ServiceIntervalMiles,
		ServiceID:          serviceID,
	}, nil
}

// OdometerReadings returns the ordered reading sequence of a vehicle. A
// missing vehicle and a vehicle with zero readings produce the same error;
// the API contract does not distinguish the two cases.
func (e *Engine) OdometerReadings(ctx context.Context, vin string) ([]models.OdometerReading, error) {
	vehicle, err := e.Vehicles.FindVehicleByVIN(ctx, vin)
	if err != nil || len(vehicle.OdometerReadings) == 0 {
		return nil, &NotFoundError{Message: "No entries available for this vehicle."}
	}
	return vehicle.OdometerReadings, nil
}
