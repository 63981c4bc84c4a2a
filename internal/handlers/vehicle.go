package handlers

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/engine"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/validator"
)

// VehicleHandler handles vehicle registry requests
type VehicleHandler struct {
	engine   *engine.Engine
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(eng *engine.Engine, vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{engine: eng, vehicles: vehicles}
}

// Create registers a new vehicle. Field failures use the validator
// {errors: [...]} envelope, VIN uniqueness included.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeFieldErrors(w, []validator.FieldError{{Msg: "Invalid JSON"}})
		return
	}

	errs := validator.ValidateVehicle(req)

	vin := strings.TrimSpace(req.VIN)
	if vin != "" {
		if _, err := h.vehicles.FindVehicleByVIN(r.Context(), vin); err == nil {
			errs = append(errs, validator.FieldError{
				Msg:  "Vehicle with this VIN already exists",
				Path: "VIN",
			})
		}
	}
	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	lastService, err := validator.ParseDate(req.LastServiceDate)
	if err != nil {
		writeFieldErrors(w, []validator.FieldError{{
			Msg:  "LastServiceDate must be a valid date (YYYY-MM-DD)",
			Path: "LastServiceDate",
		}})
		return
	}

	vehicle := models.Vehicle{
		ID:               primitive.NewObjectID(),
		VIN:              vin,
		Type:             strings.ToUpper(req.Type[:1]) + strings.ToLower(req.Type[1:]),
		Make:             req.Make,
		Model:            strings.TrimSpace(req.Model),
		Year:             req.Year,
		LastServiceDate:  lastService,
		OdometerReadings: []models.OdometerReading{},
		ServiceDetails:   []models.ServiceDetail{},
		CreatedAt:        time.Now(),
	}
	if _, err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		log.WithError(err).WithField("vin", vin).Error("failed to insert vehicle")
		writeMessage(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

// List returns supported vehicles enriched with the open-unpaid-service flag
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.engine.ListVehicles(r.Context())
	if err != nil {
		respondEngineError(w, "list_vehicles", err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}
