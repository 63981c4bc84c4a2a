package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/pkg/metrics"
)

// ScheduleHandler handles service scheduling requests
type ScheduleHandler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// NewScheduleHandler creates a new scheduling handler
func NewScheduleHandler(eng *engine.Engine, m *metrics.Metrics) *ScheduleHandler {
	return &ScheduleHandler{engine: eng, metrics: m}
}

// Schedule creates or updates a vehicle's open work order. Business
// failures on this route use the {error} envelope.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req engine.ScheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.engine.ScheduleService(r.Context(), req)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ErrorsCount.WithLabelValues("schedule").Inc()
		}
		respondEngineErrorKey(w, "schedule", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ServicesScheduled.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   result.Message,
		"serviceId": result.ServiceID.Hex(),
	})
}
