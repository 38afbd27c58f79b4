package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code       string             `json:"code"`
	Message    string             `json:"message"`
	Violations []models.Violation `json:"violations,omitempty"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing useful can be done on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a standard error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondViolations writes a validation error response listing every violation
func respondViolations(w http.ResponseWriter, code, message string, violations []models.Violation) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:       code,
			Message:    message,
			Violations: violations,
		},
	})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created response with a Location header
func respondCreated(w http.ResponseWriter, location string, data interface{}) {
	w.Header().Set("Location", location)
	respondJSON(w, http.StatusCreated, data)
}

// respondNoContent writes a 204 No Content response
func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
