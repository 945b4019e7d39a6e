package attendance

import (
	"context"
)

// Backend is the remote spreadsheet API holding the attendance rows. An empty
// baseURL selects the configured default endpoint.
type Backend interface {
	// ListRecords fetches every row belonging to email.
	ListRecords(ctx context.Context, baseURL string, email string) ([]Record, error)

	// SaveRecord appends a row.
	SaveRecord(ctx context.Context, baseURL string, record Record) error

	// DeleteRecord removes a row owned by email.
	DeleteRecord(ctx context.Context, baseURL string, rowID string, email string) error
}
