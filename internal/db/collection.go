package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// CredentialCollection defines the interface for credential operations.
type CredentialCollection interface {
	InsertCredential(ctx context.Context, cred models.Credential) (primitive.ObjectID, error)
	FindCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	FindCredentialByID(ctx context.Context, id string) (*models.Credential, error)
}

// TechnicianCollection defines the interface for technician directory operations.
type TechnicianCollection interface {
	InsertTechnician(ctx context.Context, tech models.Technician) (primitive.ObjectID, error)
	FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error)
	FindTechnicianByEmail(ctx context.Context, email string) (*models.Technician, error)
	FindTechnicianByCredential(ctx context.Context, credentialID string) (*models.Technician, error)
}

// VehicleCollection defines the interface for vehicle registry operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error)
	FindVehicleByVIN(ctx context.Context, vin string) (*models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindSupportedVehicles(ctx context.Context) ([]models.Vehicle, error)
	PushOdometerReading(ctx context.Context, vin string, reading models.OdometerReading) error
	AppendServiceDetail(ctx context.Context, vin string, detail models.ServiceDetail, servicedAt time.Time) error
}

// ServiceCollection defines the interface for service work-order operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, svc models.Service) (primitive.ObjectID, error)
	FindServiceByID(ctx context.Context, id string) (*models.Service, error)
	// UpsertUnassignedService atomically updates the open Unassigned service
	// for a vehicle, inserting a fresh one when none exists. Returns the
	// service id and whether a new document was created.
	UpsertUnassignedService(ctx context.Context, vin string, set bson.M) (primitive.ObjectID, bool, error)
	CountActiveByTechnician(ctx context.Context, technicianID primitive.ObjectID) (int64, error)
	FindByStatuses(ctx context.Context, statuses []models.ServiceStatus, technicianID *primitive.ObjectID) ([]models.Service, error)
	FindUnassignedWithTechnician(ctx context.Context) ([]models.Service, error)
	FindByVIN(ctx context.Context, vin string) ([]models.Service, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus) error
	MarkAssigned(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SetPayment(ctx context.Context, id primitive.ObjectID, payment models.Payment) error
}

// HistoryCollection defines the interface for the append-only payment ledger.
type HistoryCollection interface {
	InsertHistory(ctx context.Context, h models.History) (primitive.ObjectID, error)
	FindHistories(ctx context.Context) ([]models.History, error)
}

// TxnRunner runs a function inside a single transaction so cross-entity
// updates either all land or none do.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
