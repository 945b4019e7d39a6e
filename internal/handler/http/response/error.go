package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Submission gating: one message per rule
	if attendance.IsGateError(err) {
		if errors.Is(err, attendance.ErrDuplicateCheckIn) {
			Conflict(w, err.Error())
			return
		}
		BadRequest(w, err.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrSessionRequired),
		errors.Is(err, attendance.ErrNoIdentity),
		errors.Is(err, session.ErrSessionNotFound):
		Unauthorized(w, auth.ErrSessionRequired.Error())
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotImplemented(w, err.Error())
	case errors.Is(err, auth.ErrGoogleEmailUnverified):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrEmailNotRegistered):
		NotFound(w, "Email tidak terdaftar")
	case errors.Is(err, user.ErrRosterUnavailable):
		BadGateway(w, "Gagal memuat data user")

	// Session domain errors
	case errors.Is(err, session.ErrInvalidBackendURL):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidRowID):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidMonthFilter):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrMutationInProgress):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrBackendFailure):
		BadGateway(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
