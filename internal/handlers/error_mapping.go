package handlers

import (
	"errors"
	"net/http"

	"registration-service/internal/repository"
	"registration-service/internal/services"
	"registration-service/internal/wizard"
)

// MapErrorToHTTPStatus maps service errors to an API error code and status.
func MapErrorToHTTPStatus(err error) (string, int) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return "SESSION_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return "REGISTRATION_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, repository.ErrSessionConflict):
		return "SESSION_CONFLICT", http.StatusConflict
	case errors.Is(err, wizard.ErrAlreadySubmitted):
		return "ALREADY_SUBMITTED", http.StatusConflict
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		return "SUBMISSION_IN_PROGRESS", http.StatusConflict
	case errors.Is(err, wizard.ErrFarmNotFound):
		return "FARM_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, wizard.ErrCropNotFound):
		return "CROP_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, wizard.ErrUnknownField):
		return "UNKNOWN_FIELD", http.StatusBadRequest
	case errors.Is(err, wizard.ErrInvalidOption):
		return "INVALID_OPTION", http.StatusBadRequest
	case errors.Is(err, wizard.ErrSubmissionFailed):
		return "SUBMISSION_FAILED", http.StatusBadGateway
	case errors.Is(err, services.ErrEmptyQuestion):
		return "INVALID_REQUEST", http.StatusBadRequest
	default:
		return "INTERNAL_ERROR", http.StatusInternalServerError
	}
}
