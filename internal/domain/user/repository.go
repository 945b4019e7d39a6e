package user

import "context"

// Directory fetches the roster from the spreadsheet backend at baseURL.
type Directory interface {
	ListUsers(ctx context.Context, baseURL string) ([]Identity, error)
}
