package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if len(appErr.Violations) > 0 {
			respondViolations(w, appErr.Code, appErr.Message, appErr.Violations)
			return
		}
		respondError(w, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	// Log internal errors but don't expose details to client
	logger.Error("internal server error",
		slog.String("error", err.Error()),
	)
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case models.CodeInvalidInput, models.CodeIDMismatch:
		return http.StatusBadRequest
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
