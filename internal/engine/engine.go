package engine

import (
	"context"
	"os"
	"strconv"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// DefaultServiceIntervalMiles is the mileage between scheduled services used
// to derive the next service threshold from an odometer reading.
const DefaultServiceIntervalMiles = 5000

// Actor is the request-scoped identity every operation receives: the
// credential id from the verified token and its role.
type Actor struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Engine implements the service-scheduling and technician-assignment state
// machine on top of the persistent store.
type Engine struct {
	Technicians db.TechnicianCollection
	Vehicles    db.VehicleCollection
	Services    db.ServiceCollection
	Histories   db.HistoryCollection
	Txn         db.TxnRunner

	ServiceIntervalMiles int
}

// New creates an engine over the given collections. txn may be nil, in which
// case cross-entity updates run without transactional guarantees.
func New(
	technicians db.TechnicianCollection,
	vehicles db.VehicleCollection,
	services db.ServiceCollection,
	histories db.HistoryCollection,
	txn db.TxnRunner,
) *Engine {
	return &Engine{
		Technicians:          technicians,
		Vehicles:             vehicles,
		Services:             services,
		Histories:            histories,
		Txn:                  txn,
		ServiceIntervalMiles: ServiceIntervalFromEnv(),
	}
}

// ServiceIntervalFromEnv reads SERVICE_INTERVAL_MILES, falling back to the
// default interval.
func ServiceIntervalFromEnv() int {
	if v := os.Getenv("SERVICE_INTERVAL_MILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultServiceIntervalMiles
}

// runInTxn executes fn transactionally when a runner is configured.
func (e *Engine) runInTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	if e.Txn == nil {
		return fn(ctx)
	}
	return e.Txn.WithTransaction(ctx, fn)
}
