// Package validator holds the pure field-validation rules for the routes
// that report failures through the {errors: [{msg, path}]} envelope.
// Business rules, and the routes with single-message envelopes, validate in
// the engine instead.
package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// FieldError is one failed field check, serialized into the 400
// {errors: [{msg, path}]} envelope.
type FieldError struct {
	Msg  string `json:"msg"`
	Path string `json:"path,omitempty"`
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// ValidateLogin checks a login request.
func ValidateLogin(req models.LoginRequest) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, FieldError{Msg: "Email is required", Path: "email"})
	}
	if req.Password == "" {
		errs = append(errs, FieldError{Msg: "Password is required", Path: "password"})
	}
	return errs
}

// OdometerRequest is the body of a record-odometer call.
type OdometerRequest struct {
	Mileage     int    `json:"mileage"`
	ServiceType string `json:"serviceType"`
}

// ValidateOdometer checks an odometer reading request.
func ValidateOdometer(req OdometerRequest) []FieldError {
	var errs []FieldError
	if req.Mileage <= 0 {
		errs = append(errs, FieldError{
			Msg:  "mileage must be a positive number greater than 0",
			Path: "mileage",
		})
	}
	if req.ServiceType != "" && !models.IsValidServiceType(req.ServiceType) {
		errs = append(errs, FieldError{
			Msg:  `Invalid serviceType. Must be "Oil Change", "Brake Repair", or "Battery Test"`,
			Path: "serviceType",
		})
	}
	return errs
}

// HistoryRequest is the body of an add-payment call.
type HistoryRequest struct {
	ServiceID     string  `json:"serviceId"`
	PaymentStatus string  `json:"paymentStatus"`
	Cost          float64 `json:"cost"`
}

// ValidateVehicle checks a vehicle registration request. VIN uniqueness is
// checked by the handler against the registry.
func ValidateVehicle(req models.CreateVehicleRequest) []FieldError {
	var errs []FieldError

	vtype := titleCase(req.Type)
	if req.Type == "" {
		errs = append(errs, FieldError{Msg: "Vehicle type is required", Path: "type"})
	} else if !contains(models.ValidVehicleTypes, vtype) {
		errs = append(errs, FieldError{Msg: `Invalid vehicle type. Must be "Car" or "Truck".`, Path: "type"})
	}

	if req.Make == "" {
		errs = append(errs, FieldError{Msg: "Vehicle make is required", Path: "make"})
	} else if !contains(models.ValidBrands, req.Make) {
		errs = append(errs, FieldError{Msg: "Unsupported vehicle brand", Path: "make"})
	}

	if strings.TrimSpace(req.Model) == "" {
		errs = append(errs, FieldError{Msg: "Model is required", Path: "model"})
	}

	maxYear := time.Now().Year()
	if req.Year == 0 {
		errs = append(errs, FieldError{Msg: "Registration year is required", Path: "year"})
	} else if req.Year < 1990 || req.Year > maxYear {
		errs = append(errs, FieldError{
			Msg:  fmt.Sprintf("Year must be a valid integer between 1990 and %d", maxYear),
			Path: "year",
		})
	}

	if strings.TrimSpace(req.VIN) == "" {
		errs = append(errs, FieldError{Msg: "VIN is required", Path: "VIN"})
	}

	if req.LastServiceDate == "" {
		errs = append(errs, FieldError{Msg: "Last Service Date is required", Path: "LastServiceDate"})
	} else if d, err := ParseDate(req.LastServiceDate); err != nil {
		errs = append(errs, FieldError{
			Msg:  "LastServiceDate must be a valid date (YYYY-MM-DD)",
			Path: "LastServiceDate",
		})
	} else if d.After(time.Now()) {
		errs = append(errs, FieldError{
			Msg:  "Last Service Date cannot be in the future",
			Path: "LastServiceDate",
		})
	}

	return errs
}

// ValidateRegistration checks a technician registration request's field
// contents. Presence of the required fields is checked by the handler first
// so missing input keeps its historical single-message envelope.
func ValidateRegistration(req models.RegisterRequest) []FieldError {
	var errs []FieldError

	if req.FirstName != "" && !namePattern.MatchString(req.FirstName) {
		errs = append(errs, FieldError{
			Msg:  "First name can only contain letters, numbers, and spaces",
			Path: "firstName",
		})
	}
	if req.LastName != "" && !namePattern.MatchString(req.LastName) {
		errs = append(errs, FieldError{
			Msg:  "Last name can only contain letters, numbers, and spaces",
			Path: "lastName",
		})
	}

	for _, skill := range req.AllSkills() {
		if !models.IsValidServiceType(strings.TrimSpace(skill)) {
			errs = append(errs, FieldError{
				Msg:  "Invalid skill. Must be an array of: " + strings.Join(models.ValidSkills, ", "),
				Path: "skills",
			})
			break
		}
	}

	for _, day := range req.Availability {
		if !contains(models.ValidDays, strings.ToLower(strings.TrimSpace(day))) {
			errs = append(errs, FieldError{
				Msg:  "Invalid day. Must be an array of: " + strings.Join(models.ValidDays, ", "),
				Path: "availability",
			})
			break
		}
	}

	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		errs = append(errs, FieldError{
			Msg:  "Password confirmation does not match password",
			Path: "confirmPassword",
		})
	}

	return errs
}

// ParseDate accepts the date forms clients send: YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
