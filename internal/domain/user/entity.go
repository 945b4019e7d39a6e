package user

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/cell"
)

// Identity is one roster entry of the spreadsheet backend. Email is the
// unique key.
type Identity struct {
	Name        string `json:"nama"`
	Email       string `json:"email"`
	School      string `json:"asalSekolah"`
	Site        string `json:"site"`
	BankAccount string `json:"nomorRekening"`
	Address     string `json:"alamat"`
}

// UnmarshalJSON accepts numeric cells, since account numbers are often typed
// into the sheet as numbers.
func (i *Identity) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name        cell.Value `json:"nama"`
		Email       cell.Value `json:"email"`
		School      cell.Value `json:"asalSekolah"`
		Site        cell.Value `json:"site"`
		BankAccount cell.Value `json:"nomorRekening"`
		Address     cell.Value `json:"alamat"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*i = Identity{
		Name:        raw.Name.String(),
		Email:       raw.Email.String(),
		School:      raw.School.String(),
		Site:        raw.Site.String(),
		BankAccount: raw.BankAccount.String(),
		Address:     raw.Address.String(),
	}
	return nil
}

// DisplayName is the name, or the email when the roster has no name.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// FallbackIdentity is used when the roster is empty: anyone may sign in and
// is named after the local part of their email.
func FallbackIdentity(email string) Identity {
	name, _, _ := strings.Cut(email, "@")
	return Identity{
		Name:        name,
		Email:       email,
		School:      "-",
		Site:        "-",
		BankAccount: "-",
		Address:     "-",
	}
}

// Find returns the roster entry whose email matches exactly.
func Find(roster []Identity, email string) (Identity, bool) {
	for _, u := range roster {
		if u.Email == email {
			return u, true
		}
	}
	return Identity{}, false
}
