package attendance

import "errors"

// Attendance domain errors
var (
	// Submission gating, checked in this order
	ErrMissingPreviousCheckOut = errors.New("you have not checked out yesterday; complete yesterday's check-out first")
	ErrCheckInRequired         = errors.New("you have not checked in on this date; check in first")
	ErrDuplicateCheckIn        = errors.New("you have already checked in on this date")
	ErrReasonRequired          = errors.New("leave reason is required")
	ErrCheckoutKindRequired    = errors.New("check-out kind (Normal or Lembur) is required")
	ErrWorkScopeRequired       = errors.New("work scope is required")

	// General errors
	ErrInvalidRowID       = errors.New("invalid attendance row id")
	ErrInvalidMonthFilter = errors.New("month filter must be 'all' or YYYY-MM")
	ErrMutationInProgress = errors.New("another attendance change is still being processed")
	ErrNoIdentity         = errors.New("no user is logged in for this session")

	// ErrBackendFailure wraps every transport, status or decoding failure of
	// the spreadsheet backend.
	ErrBackendFailure = errors.New("attendance backend request failed")
)

// IsGateError reports whether err is one of the submission gating rules.
func IsGateError(err error) bool {
	for _, gate := range []error{
		ErrMissingPreviousCheckOut,
		ErrCheckInRequired,
		ErrDuplicateCheckIn,
		ErrReasonRequired,
		ErrCheckoutKindRequired,
		ErrWorkScopeRequired,
	} {
		if errors.Is(err, gate) {
			return true
		}
	}
	return false
}
