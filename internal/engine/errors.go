package engine

// ValidationError reports malformed or missing input. Surfaced as HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a referenced entity that does not exist. Surfaced as
// HTTP 400 (the API contract uses 400 for missing entities, not 404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError reports a business-rule violation such as a technician
// double-booking. Surfaced as HTTP 400.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
