package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/validator"
	"github.com/ukydev/fleet-maintenance/pkg/metrics"
)

// HistoryHandler handles the payment ledger
type HistoryHandler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(eng *engine.Engine, m *metrics.Metrics) *HistoryHandler {
	return &HistoryHandler{engine: eng, metrics: m}
}

// AddService finalizes a payment: History record, service payment
// sub-record, and vehicle maintenance summary in one transaction
func (h *HistoryHandler) AddService(w http.ResponseWriter, r *http.Request) {
	var req validator.HistoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.engine.AddServicePayment(r.Context(), req.ServiceID, req.PaymentStatus, req.Cost)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ErrorsCount.WithLabelValues("add_payment").Inc()
		}
		respondEngineError(w, "add_payment", err)
		return
	}

	if h.metrics != nil {
		h.metrics.PaymentsRecorded.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   result.Message,
		"serviceId": result.ServiceID.Hex(),
		"historyId": result.HistoryID.Hex(),
	})
}

// ListAll returns every payment event on record
func (h *HistoryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	histories, err := h.engine.ListHistories(r.Context())
	if err != nil {
		respondEngineError(w, "list_histories", err)
		return
	}
	writeJSON(w, http.StatusOK, histories)
}
