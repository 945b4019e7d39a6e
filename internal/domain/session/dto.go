package session

import (
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
)

type SetBackendURLRequest struct {
	URL string `json:"url"`
}

// Validate accepts an empty URL, which resets the override.
func (r *SetBackendURLRequest) Validate() error {
	var errs validator.ValidationErrors

	r.URL = strings.TrimSpace(r.URL)
	if r.URL != "" && !validator.IsHTTPURL(r.URL) {
		errs = append(errs, validator.ValidationError{
			Field:   "url",
			Message: ErrInvalidBackendURL.Error(),
		})
	}
	if len(r.URL) > 2048 {
		errs = append(errs, validator.ValidationError{
			Field:   "url",
			Message: "url must not exceed 2048 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BackendURLResponse struct {
	URL        string `json:"url"`
	Overridden bool   `json:"overridden"`
}
