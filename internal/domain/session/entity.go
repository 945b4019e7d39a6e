package session

import (
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

// Keys of the per-session values held by a Store.
const (
	KeyIdentity   = "currentUser"
	KeyBackendURL = "scriptURL"
	KeyRecords    = "records"
	KeyTypeFilter = "filterType"
	KeyDateFilter = "filterDate"
)

// Session is the state of one signed-in browser: who it belongs to, the last
// successfully fetched record list and the active history filters.
type Session struct {
	ID         string
	Identity   *user.Identity
	Records    []attendance.Record
	TypeFilter string
	DateFilter string
	BackendURL string
}

// LoggedIn reports whether an identity is attached.
func (s *Session) LoggedIn() bool {
	return s.Identity != nil && s.Identity.Email != ""
}

// ResolveBackendURL returns the session override or def.
func (s *Session) ResolveBackendURL(def string) string {
	if s.BackendURL != "" {
		return s.BackendURL
	}
	return def
}

// Owner returns the identity columns copied onto new records.
func (s *Session) Owner() attendance.Owner {
	if s.Identity == nil {
		return attendance.Owner{}
	}
	return attendance.Owner{
		Name:        s.Identity.Name,
		Email:       s.Identity.Email,
		Site:        s.Identity.Site,
		School:      s.Identity.School,
		BankAccount: s.Identity.BankAccount,
	}
}
