package auth

import (
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email string `json:"email"`
	// BackendURL optionally points the new session at another spreadsheet
	// deployment before the roster is consulted.
	BackendURL string `json:"backend_url,omitempty"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.TrimSpace(r.Email)
	r.BackendURL = strings.TrimSpace(r.BackendURL)

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}

	// Backend URL
	if r.BackendURL != "" && !validator.IsHTTPURL(r.BackendURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "backend_url",
			Message: "backend_url must start with http:// or https://",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken          string               `json:"access_token"`
	AccessTokenExpiresIn int64                `json:"access_token_expires_in"`
	User                 user.ProfileResponse `json:"user"`
	Greeting             string               `json:"greeting"`
	// HistoryLoaded is false when the initial history fetch failed; the
	// session is usable and the history can be refreshed later.
	HistoryLoaded bool `json:"history_loaded"`
	RecordCount   int  `json:"record_count"`
}
