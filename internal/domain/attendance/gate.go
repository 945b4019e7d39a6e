package attendance

import "strings"

// Submission is a new attendance event before it is sent to the backend.
type Submission struct {
	Type         Type
	Date         CalendarDate
	Reason       string
	CheckoutKind CheckoutKind
	WorkScope    string
}

// Gate applies the submission rules in order and returns the first one that
// fails. records is the user's current list, today the reference day.
func (e *Engine) Gate(records []Record, sub Submission, today CalendarDate) error {
	if !sub.Date.Before(today) && e.StatusForPreviousDay(records, today).MissingCheckOut {
		return ErrMissingPreviousCheckOut
	}

	target := e.StatusForDate(records, sub.Date)
	if sub.Type == TypeCheckOut && !target.HasCheckIn {
		return ErrCheckInRequired
	}
	if sub.Type == TypeCheckIn && target.HasCheckIn {
		return ErrDuplicateCheckIn
	}

	if sub.Type == TypeLeave && strings.TrimSpace(sub.Reason) == "" {
		return ErrReasonRequired
	}
	if sub.Type == TypeCheckOut {
		if sub.CheckoutKind == "" {
			return ErrCheckoutKindRequired
		}
		if strings.TrimSpace(sub.WorkScope) == "" {
			return ErrWorkScopeRequired
		}
	}
	return nil
}
