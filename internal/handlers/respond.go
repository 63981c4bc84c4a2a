package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/validator"
)

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// writeMessage writes the {message} failure envelope.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError writes the {error} failure envelope. The scheduling and login
// routes use this key historically; the rest of the API uses {message}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFieldErrors writes the validator failure envelope, an array of field
// errors distinct from single-message business failures.
func writeFieldErrors(w http.ResponseWriter, errs []validator.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}

// engineFailure maps an engine error onto a status code and message. All
// domain errors are 400 per the API contract; anything else is a 500.
func engineFailure(err error) (int, string, bool) {
	var ve *engine.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message, true
	}
	var nfe *engine.NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusBadRequest, nfe.Message, true
	}
	var ce *engine.ConflictError
	if errors.As(err, &ce) {
		return http.StatusBadRequest, ce.Message, true
	}
	return http.StatusInternalServerError, "Internal server error", false
}

// respondEngineError writes an engine failure in the {message} envelope.
func respondEngineError(w http.ResponseWriter, op string, err error) {
	status, msg, domain := engineFailure(err)
	if !domain {
		log.WithError(err).WithField("operation", op).Error("operation failed")
	}
	writeMessage(w, status, msg)
}

// respondEngineErrorKey writes an engine failure in the {error} envelope.
func respondEngineErrorKey(w http.ResponseWriter, op string, err error) {
	status, msg, domain := engineFailure(err)
	if !domain {
		log.WithError(err).WithField("operation", op).Error("operation failed")
	}
	writeError(w, status, msg)
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
