package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/pkg/metrics"
)

// TechnicianHandler handles assignment lifecycle requests
type TechnicianHandler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// NewTechnicianHandler creates a new technician handler
func NewTechnicianHandler(eng *engine.Engine, m *metrics.Metrics) *TechnicianHandler {
	return &TechnicianHandler{engine: eng, metrics: m}
}

// actorFromRequest pulls the verified caller off the request context.
func actorFromRequest(r *http.Request) (engine.Actor, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return engine.Actor{}, false
	}
	return engine.Actor{ID: claims.ID, Role: claims.Role}, true
}

// CreateAssignment moves a scheduled service to Assigned
func (h *TechnicianHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID string `json:"serviceId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.engine.CreateAssignment(r.Context(), req.ServiceID)
	if err != nil {
		respondEngineError(w, "create_assignment", err)
		return
	}

	if h.metrics != nil {
		h.metrics.AssignmentsCreated.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   result.Message,
		"serviceId": result.ServiceID.Hex(),
	})
}

// UpdateStatus transitions a service's status on behalf of its technician
func (h *TechnicianHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	serviceID := mux.Vars(r)["id"]

	var req struct {
		Status models.ServiceStatus `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	status, err := h.engine.UpdateAssignmentStatus(r.Context(), actor, serviceID, req.Status)
	if err != nil {
		respondEngineError(w, "update_status", err)
		return
	}

	if h.metrics != nil {
		h.metrics.StatusUpdates.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// ListAssignments returns work past the scheduling stage, scoped by role
func (h *TechnicianHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	services, err := h.engine.ListAssignments(r.Context(), actor)
	if err != nil {
		respondEngineError(w, "list_assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// ListUnassigned returns scheduled services awaiting formal assignment
func (h *TechnicianHandler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	services, err := h.engine.ListUnassignedWithTechnician(r.Context())
	if err != nil {
		respondEngineError(w, "list_unassigned", err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}
