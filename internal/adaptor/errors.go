package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/pkg/utils"
)

// handleServiceError translates service errors into the response envelope.
// Invalid credentials and deactivated accounts share one message so the
// login form never reveals which part was wrong.
func handleServiceError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		utils.ResponseForbidden(w, "You do not have permission to access this page")
	case errors.Is(err, apperrors.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, apperrors.ErrSelfAction):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{
			"email": "A user with this email address already exists",
		})
	case errors.Is(err, apperrors.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	default:
		log.Error("unexpected service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
