package engine

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// AssignmentResult is the response of a successful assignment call.
type AssignmentResult struct {
	Message   string             `json:"message"`
	ServiceID primitive.ObjectID `json:"serviceId"`
}

// CreateAssignment formally assigns a scheduled service to its pre-selected
// technician: status becomes Assigned and the assignment time is stamped.
// The service must already carry a technician reference.
func (e *Engine) CreateAssignment(ctx context.Context, serviceID string) (*AssignmentResult, error) {
	if serviceID == "" {
		return nil, &ValidationError{Message: "Service ID is required."}
	}

	svc, err := e.Services.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, &NotFoundError{Message: "Corresponding service schedule not found."}
	}

	if svc.TechnicianID == nil {
		return nil, &ValidationError{
			Message: "No technician specified on this service. Schedule a technician first.",
		}
	}

	if err := e.Services.MarkAssigned(ctx, svc.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("mark assigned: %w", err)
	}

	return &AssignmentResult{Message: "Service assigned", ServiceID: svc.ID}, nil
}

// UpdateAssignmentStatus overwrites a service's status on behalf of the
// technician assigned to it. The actor's credential must resolve to the
// technician on the service; everyone else, admins included, is rejected.
func (e *Engine) UpdateAssignmentStatus(ctx context.Context, actor Actor, serviceID string, status models.ServiceStatus) (models.ServiceStatus, error) {
	if status == "" {
		return "", &ValidationError{Message: "status is required"}
	}
	if !models.IsValidStatus(status) {
		return "", &ValidationError{
			Message: "Status must be one of: Assigned, Work In Progress, Completed.",
		}
	}

	svc, err := e.Services.FindServiceByID(ctx, serviceID)
	if err != nil {
		return "", &NotFoundError{Message: "Corresponding service schedule not found."}
	}

	tech, err := e.Technicians.FindTechnicianByCredential(ctx, actor.ID)
	if err != nil || svc.TechnicianID == nil || *svc.TechnicianID != tech.ID {
		return "", &ValidationError{Message: "You are not assigned to this service"}
	}

	if err := e.Services.UpdateStatus(ctx, svc.ID, status); err != nil {
		return "", fmt.Errorf("update status: %w", err)
	}
	return status, nil
}

// assignedStatuses is everything past scheduling: the work orders an admin
// sees when listing assignments.
var assignedStatuses = []models.ServiceStatus{
	models.StatusAssigned,
	models.StatusWorkInProgress,
	models.StatusCompleted,
}

// ListAssignments returns services that have progressed past scheduling.
// Admins see all of them; technicians see only their own, with their profile
// expanded onto each record.
func (e *Engine) ListAssignments(ctx context.Context, actor Actor) ([]models.AssignedService, error) {
	if actor.IsAdmin() {
		services, err := e.Services.FindByStatuses(ctx, assignedStatuses, nil)
		if err != nil {
			return nil, fmt.Errorf("find assignments: %w", err)
		}
		out := make([]models.AssignedService, 0, len(services))
		for _, svc := range services {
			out = append(out, models.AssignedService{Service: svc})
		}
		return out, nil
	}

	tech, err := e.Technicians.FindTechnicianByCredential(ctx, actor.ID)
	if err != nil {
		// Caller has no technician profile, so no assignments either.
		return []models.AssignedService{}, nil
	}

	services, err := e.Services.FindByStatuses(ctx, assignedStatuses, &tech.ID)
	if err != nil {
		return nil, fmt.Errorf("find assignments: %w", err)
	}
	out := make([]models.AssignedService, 0, len(services))
	for _, svc := range services {
		out = append(out, models.AssignedService{Service: svc, Technician: tech})
	}
	return out, nil
}

// ListUnassignedWithTechnician returns the queue an admin drains via
// CreateAssignment: services still Unassigned but with a technician already
// pre-selected. Services with no technician at all are excluded.
func (e *Engine) ListUnassignedWithTechnician(ctx context.Context) ([]models.Service, error) {
	services, err := e.Services.FindUnassignedWithTechnician(ctx)
	if err != nil {
		return nil, fmt.Errorf("find unassigned services: %w", err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}
