package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceStatus is the lifecycle state of a work order. Terminal states are
// never re-entered backwards: Unassigned -> Assigned -> Work In Progress ->
// Completed.
type ServiceStatus string

const (
	StatusUnassigned     ServiceStatus = "Unassigned"
	StatusAssigned       ServiceStatus = "Assigned"
	StatusWorkInProgress ServiceStatus = "Work In Progress"
	StatusCompleted      ServiceStatus = "Completed"
)

// ActiveStatuses are the states that make a technician unavailable for new
// assignments.
var ActiveStatuses = []ServiceStatus{StatusAssigned, StatusWorkInProgress}

// Payment statuses.
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// Payment is the payment sub-record on a service.
type Payment struct {
	PaymentStatus string              `bson:"payment_status" json:"paymentStatus"`
	Cost          float64             `bson:"cost" json:"cost"`
	HistoryID     *primitive.ObjectID `bson:"history_id,omitempty" json:"historyId,omitempty"`
}

// Service represents one maintenance work order on a vehicle.
type Service struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VehicleVIN     string              `bson:"vehicle_vin" json:"vehicleVIN"`
	ServiceType    string              `bson:"service_type" json:"serviceType"`
	Status         ServiceStatus       `bson:"status" json:"status"`
	TechnicianID   *primitive.ObjectID `bson:"technician_id,omitempty" json:"technicianId,omitempty"`
	TechnicianName string              `bson:"technician_name,omitempty" json:"technicianName,omitempty"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	AssignmentDate *time.Time          `bson:"assignment_date,omitempty" json:"assignmentDate,omitempty"`
	Payment        Payment             `bson:"payment" json:"payment"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// AssignedService is the list-assignments shape for technician callers: the
// service with its technician profile expanded.
type AssignedService struct {
	Service    `bson:",inline"`
	Technician *Technician `bson:"technician,omitempty" json:"technician,omitempty"`
}

// IsActive reports whether the service occupies its technician.
func (s *Service) IsActive() bool {
	return s.Status == StatusAssigned || s.Status == StatusWorkInProgress
}

// IsValidServiceType checks a service type against the supported set.
func IsValidServiceType(t string) bool {
	for _, s := range ValidSkills {
		if s == t {
			return true
		}
	}
	return false
}

// IsValidStatus checks an incoming status transition target.
func IsValidStatus(s ServiceStatus) bool {
	switch s {
	case StatusAssigned, StatusWorkInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}
