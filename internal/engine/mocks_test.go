package engine

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// MockTechnicianCollection is a mock implementation of db.TechnicianCollection
type MockTechnicianCollection struct {
	mock.Mock
}

func (m *MockTechnicianCollection) InsertTechnician(ctx context.Context, tech models.Technician) (primitive.ObjectID, error) {
	args := m.Called(ctx, tech)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTechnicianCollection) FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technician), args.Error(1)
}

func (m *MockTechnicianCollection) FindTechnicianByEmail(ctx context.Context, email string) (*models.Technician, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technician), args.Error(1)
}

func (m *MockTechnicianCollection) FindTechnicianByCredential(ctx context.Context, credentialID string) (*models.Technician, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Technician), args.Error(1)
}

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (primitive.ObjectID, error) {
	args := m.Called(ctx, vehicle)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByVIN(ctx context.Context, vin string) (*models.Vehicle, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindSupportedVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) PushOdometerReading(ctx context.Context, vin string, reading models.OdometerReading) error {
	args := m.Called(ctx, vin, reading)
	return args.Error(0)
}

func (m *MockVehicleCollection) AppendServiceDetail(ctx context.Context, vin string, detail models.ServiceDetail, servicedAt time.Time) error {
	args := m.Called(ctx, vin, detail, servicedAt)
	return args.Error(0)
}

// MockServiceCollection is a mock implementation of db.ServiceCollection
type MockServiceCollection struct {
	mock.Mock
}

func (m *MockServiceCollection) InsertService(ctx context.Context, svc models.Service) (primitive.ObjectID, error) {
	args := m.Called(ctx, svc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceCollection) UpsertUnassignedService(ctx context.Context, vin string, set bson.M) (primitive.ObjectID, bool, error) {
	args := m.Called(ctx, vin, set)
	return args.Get(0).(primitive.ObjectID), args.Bool(1), args.Error(2)
}

func (m *MockServiceCollection) CountActiveByTechnician(ctx context.Context, technicianID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, technicianID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceCollection) FindByStatuses(ctx context.Context, statuses []models.ServiceStatus, technicianID *primitive.ObjectID) ([]models.Service, error) {
	args := m.Called(ctx, statuses, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceCollection) FindUnassignedWithTechnician(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceCollection) FindByVIN(ctx context.Context, vin string) ([]models.Service, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceCollection) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ServiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockServiceCollection) MarkAssigned(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockServiceCollection) SetPayment(ctx context.Context, id primitive.ObjectID, payment models.Payment) error {
	args := m.Called(ctx, id, payment)
	return args.Error(0)
}

// MockHistoryCollection is a mock implementation of db.HistoryCollection
type MockHistoryCollection struct {
	mock.Mock
}

func (m *MockHistoryCollection) InsertHistory(ctx context.Context, h models.History) (primitive.ObjectID, error) {
	args := m.Called(ctx, h)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockHistoryCollection) FindHistories(ctx context.Context) ([]models.History, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.History), args.Error(1)
}

// passthroughTxn runs the callback directly, standing in for a real
// transaction session in tests.
type passthroughTxn struct{}

func (passthroughTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestEngine(tech *MockTechnicianCollection, veh *MockVehicleCollection, svc *MockServiceCollection, hist *MockHistoryCollection) *Engine {
	return &Engine{
		Technicians:          tech,
		Vehicles:             veh,
		Services:             svc,
		Histories:            hist,
		Txn:                  passthroughTxn{},
		ServiceIntervalMiles: DefaultServiceIntervalMiles,
	}
}
