package attendance

// DayStatus tells which events exist on one calendar day.
type DayStatus struct {
	HasCheckIn  bool `json:"has_check_in"`
	HasCheckOut bool `json:"has_check_out"`
}

// PreviousDayStatus is the day before today, plus the condition that blocks
// new submissions.
type PreviousDayStatus struct {
	HasCheckIn      bool `json:"has_check_in"`
	HasCheckOut     bool `json:"has_check_out"`
	MissingCheckOut bool `json:"missing_check_out"`
}

// StatusForDate scans records for check-in and check-out events on target.
func (e *Engine) StatusForDate(records []Record, target CalendarDate) DayStatus {
	var status DayStatus
	for _, d := range e.dated(records) {
		if !d.ok || d.date != target {
			continue
		}
		switch d.record.Type {
		case TypeCheckIn:
			status.HasCheckIn = true
		case TypeCheckOut:
			status.HasCheckOut = true
		}
	}
	return status
}

// StatusForPreviousDay evaluates the day before today.
func (e *Engine) StatusForPreviousDay(records []Record, today CalendarDate) PreviousDayStatus {
	day := e.StatusForDate(records, today.AddDays(-1))
	return PreviousDayStatus{
		HasCheckIn:      day.HasCheckIn,
		HasCheckOut:     day.HasCheckOut,
		MissingCheckOut: day.HasCheckIn && !day.HasCheckOut,
	}
}

// HasCheckInOnDate reports whether target already has a check-in.
func (e *Engine) HasCheckInOnDate(records []Record, target CalendarDate) bool {
	return e.StatusForDate(records, target).HasCheckIn
}

// HasMatchingCheckOut reports whether a check-out exists on the same day as
// checkIn. Dateless check-ins never match.
func (e *Engine) HasMatchingCheckOut(records []Record, checkIn Record) bool {
	day, ok := e.normalizer.Normalize(checkIn)
	if !ok {
		return false
	}
	return e.StatusForDate(records, day).HasCheckOut
}
