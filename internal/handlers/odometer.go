package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/validator"
	"github.com/ukydev/fleet-maintenance/pkg/metrics"
)

// OdometerHandler handles mileage tracking requests
type OdometerHandler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// NewOdometerHandler creates a new odometer handler
func NewOdometerHandler(eng *engine.Engine, m *metrics.Metrics) *OdometerHandler {
	return &OdometerHandler{engine: eng, metrics: m}
}

// Record appends a mileage reading to a vehicle, opening a work order on
// the first entry
func (h *OdometerHandler) Record(w http.ResponseWriter, r *http.Request) {
	vin := mux.Vars(r)["id"]

	var req validator.OdometerRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := validator.ValidateOdometer(req); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	result, err := h.engine.RecordOdometerReading(r.Context(), vin, req.Mileage, req.ServiceType)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ErrorsCount.WithLabelValues("record_odometer").Inc()
		}
		respondEngineError(w, "record_odometer", err)
		return
	}

	if h.metrics != nil {
		h.metrics.OdometerReadings.Inc()
	}

	resp := map[string]interface{}{
		"reading":            result.Reading,
		"nextServiceMileage": result.NextServiceMileage,
	}
	if result.ServiceID != nil {
		resp["serviceId"] = result.ServiceID.Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readings returns a vehicle's ordered mileage history
func (h *OdometerHandler) Readings(w http.ResponseWriter, r *http.Request) {
	vin := mux.Vars(r)["id"]

	readings, err := h.engine.OdometerReadings(r.Context(), vin)
	if err != nil {
		respondEngineError(w, "list_odometer", err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}
