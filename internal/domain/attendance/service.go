package attendance

import (
	"context"
)

// AttendanceService defines the attendance operations of one session.
type AttendanceService interface {
	// Refresh refetches the session's records from the backend. On failure the
	// stored list is left untouched and the error is returned.
	Refresh(ctx context.Context, sessionID string) ([]Record, error)

	// History returns the filtered, newest-first history and stores the filter
	// as the session's active filter.
	History(ctx context.Context, sessionID string, filter HistoryFilter) (HistoryResponse, error)

	// Submit gates and saves a new attendance event, then refreshes.
	Submit(ctx context.Context, sessionID string, req SubmitRequest) (SubmitResponse, error)

	// Delete removes a backend row, then refreshes.
	Delete(ctx context.Context, sessionID string, rowID string) error

	// Status returns today's and the previous day's status with the reminder.
	Status(ctx context.Context, sessionID string) (StatusResponse, error)

	// Stats counts records, optionally scoped to one month.
	Stats(ctx context.Context, sessionID string, filter StatsFilter) (StatsResponse, error)

	// Months lists the month selector options.
	Months(ctx context.Context, sessionID string) ([]MonthOption, error)
}
