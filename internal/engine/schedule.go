package engine

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ScheduleRequest carries a schedule call. Exactly one vehicle locator
// (VIN or id) is required.
type ScheduleRequest struct {
	VehicleVIN   string `json:"vehicleVIN"`
	VehicleID    string `json:"vehicleId"`
	ServiceType  string `json:"serviceType"`
	Description  string `json:"description"`
	TechnicianID string `json:"technicianId"`
}

// ScheduleResult reports whether the call created a fresh work order or
// refined the open one.
type ScheduleResult struct {
	Message   string             `json:"message"`
	ServiceID primitive.ObjectID `json:"serviceId"`
}

// ScheduleService creates or updates the maintenance work order for a
// vehicle. A vehicle has at most one Unassigned service pending resolution;
// repeated schedule calls refine that service in place instead of creating
// duplicates, so callers can safely retry.
func (e *Engine) ScheduleService(ctx context.Context, in ScheduleRequest) (*ScheduleResult, error) {
	if in.VehicleVIN == "" && in.VehicleID == "" {
		return nil, &ValidationError{Message: "vehicleVIN or vehicleId is required"}
	}
	if in.ServiceType != "" && !models.IsValidServiceType(in.ServiceType) {
		return nil, &ValidationError{
			Message: `Invalid serviceType. Must be "Oil Change", "Brake Repair", or "Battery Test"`,
		}
	}

	var (
		vehicle *models.Vehicle
		err     error
	)
	if in.VehicleVIN != "" {
		vehicle, err = e.Vehicles.FindVehicleByVIN(ctx, in.VehicleVIN)
	} else {
		vehicle, err = e.Vehicles.FindVehicleByID(ctx, in.VehicleID)
	}
	if err != nil {
		return nil, &NotFoundError{Message: "Vehicle not found"}
	}

	set := bson.M{}
	if in.ServiceType != "" {
		set["service_type"] = in.ServiceType
	}
	if in.Description != "" {
		set["description"] = in.Description
	}

	if in.TechnicianID != "" {
		tech, err := e.Technicians.FindTechnicianByID(ctx, in.TechnicianID)
		if err != nil {
			return nil, &NotFoundError{Message: "Technician not found"}
		}

		active, err := e.Services.CountActiveByTechnician(ctx, tech.ID)
		if err != nil {
			return nil, fmt.Errorf("count active assignments: %w", err)
		}
		if active > 0 {
			return nil, &ConflictError{Message: "Technician already has an active assignment"}
		}

		set["technician_id"] = tech.ID
		set["technician_name"] = tech.FullName()
	}

	// Attaching a technician does not advance the status; the work order
	// stays Unassigned until an explicit assignment call.
	id, created, err := e.Services.UpsertUnassignedService(ctx, vehicle.VIN, set)
	if err != nil {
		return nil, fmt.Errorf("upsert service: %w", err)
	}

	msg := "Service updated"
	if created {
		msg = "Service scheduled"
	}
	return &ScheduleResult{Message: msg, ServiceID: id}, nil
}
