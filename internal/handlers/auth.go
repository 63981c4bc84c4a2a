package handlers

import (
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/validator"
)

// AuthHandler handles login and technician registration
type AuthHandler struct {
	authService *auth.Service
	credentials db.CredentialCollection
	technicians db.TechnicianCollection
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, credentials db.CredentialCollection, technicians db.TechnicianCollection) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		credentials: credentials,
		technicians: technicians,
	}
}

// Login handles credential login and issues a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := decodeBody(r, &loginReq); err != nil {
		writeFieldErrors(w, []validator.FieldError{{Msg: "Invalid JSON"}})
		return
	}

	if errs := validator.ValidateLogin(loginReq); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	email := auth.NormalizeEmail(loginReq.Email)
	cred, err := h.credentials.FindCredentialByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if !h.authService.CheckPassword(loginReq.Password, cred.Password) {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.authService.GenerateToken(cred)
	if err != nil {
		log.WithError(err).Error("failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// Register handles technician registration: creates a credential with role
// "technician" and the linked technician profile.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	skills := req.AllSkills()
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || len(skills) == 0 || len(req.Availability) == 0 {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.authService.ValidateEmail(req.Email); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.authService.ValidatePassword(req.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := validator.ValidateRegistration(req); len(errs) > 0 {
		writeMessage(w, http.StatusBadRequest, errs[0].Msg)
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if _, err := h.credentials.FindCredentialByEmail(r.Context(), email); err == nil {
		writeMessage(w, http.StatusBadRequest, "Email address already exists")
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		writeMessage(w, http.StatusInternalServerError, "Failed to create credential")
		return
	}

	credID, err := h.credentials.InsertCredential(r.Context(), models.Credential{
		ID:       primitive.NewObjectID(),
		Email:    email,
		Password: passwordHash,
		Role:     models.RoleTechnician,
	})
	if err != nil {
		log.WithError(err).Error("failed to insert credential")
		writeMessage(w, http.StatusInternalServerError, "Failed to create credential")
		return
	}

	availability := make([]string, 0, len(req.Availability))
	for _, day := range req.Availability {
		availability = append(availability, strings.ToLower(strings.TrimSpace(day)))
	}

	tech := models.Technician{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Credential:   credID,
		Skills:       skills,
		Availability: availability,
		CreatedAt:    time.Now(),
	}
	if _, err := h.technicians.InsertTechnician(r.Context(), tech); err != nil {
		log.WithError(err).Error("failed to insert technician")
		writeMessage(w, http.StatusInternalServerError, "Failed to create technician")
		return
	}

	log.WithFields(log.Fields{"email": email, "technician": tech.ID.Hex()}).Info("technician registered")

	writeJSON(w, http.StatusOK, struct {
		models.Technician
		Role models.Role `json:"role"`
	}{Technician: tech, Role: models.RoleTechnician})
}
