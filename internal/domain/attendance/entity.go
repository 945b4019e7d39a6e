package attendance

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/cell"
)

// Type is the attendance category stored in the tipeAbsen column.
type Type string

const (
	TypeCheckIn  Type = "Masuk"
	TypeCheckOut Type = "Pulang"
	TypeLeave    Type = "Izin"
	TypeSick     Type = "Sakit"
)

// FilterAll disables the type filter of the history view.
const FilterAll = "semua"

// NotApplicable is written into columns that do not apply to a record type.
const NotApplicable = "-"

var knownTypes = []Type{TypeCheckIn, TypeCheckOut, TypeLeave, TypeSick}

// IsKnown reports whether t is one of the four attendance categories.
func (t Type) IsKnown() bool {
	for _, k := range knownTypes {
		if t == k {
			return true
		}
	}
	return false
}

// ParseType accepts the sheet labels and their English aliases.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "masuk", "check_in", "checkin":
		return TypeCheckIn, true
	case "pulang", "check_out", "checkout":
		return TypeCheckOut, true
	case "izin", "leave":
		return TypeLeave, true
	case "sakit", "sick":
		return TypeSick, true
	}
	return "", false
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var v cell.Value
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Type(v.String())
	return nil
}

// CheckoutKind sub-classifies a check-out.
type CheckoutKind string

const (
	CheckoutNormal   CheckoutKind = "Normal"
	CheckoutOvertime CheckoutKind = "Lembur"
)

// ParseCheckoutKind accepts the sheet labels and their English aliases.
func ParseCheckoutKind(s string) (CheckoutKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return CheckoutNormal, true
	case "lembur", "overtime":
		return CheckoutOvertime, true
	}
	return "", false
}

// Record is one attendance row as served by the spreadsheet backend. Every
// column is optional; older sheet generations omit the split date columns.
type Record struct {
	RowID        cell.Value `json:"rowId,omitzero"`
	Date         cell.Value `json:"tanggal"`
	Weekday      cell.Value `json:"hari,omitzero"`
	DayOfMonth   cell.Value `json:"tanggalAngka,omitzero"`
	Month        cell.Value `json:"bulan,omitzero"`
	Year         cell.Value `json:"tahun,omitzero"`
	Name         cell.Value `json:"nama"`
	Site         cell.Value `json:"site"`
	Email        cell.Value `json:"email"`
	School       cell.Value `json:"asalSekolah"`
	BankAccount  cell.Value `json:"nomorRekening"`
	Type         Type       `json:"tipeAbsen"`
	Reason       cell.Value `json:"alasan"`
	CheckoutKind cell.Value `json:"jenisPulang"`
	WorkScope    cell.Value `json:"scopePekerjaan"`
}

// Kind returns the checkout kind of a check-out record.
func (r Record) Kind() (CheckoutKind, bool) {
	if r.Type != TypeCheckOut {
		return "", false
	}
	return ParseCheckoutKind(r.CheckoutKind.String())
}

// Detail returns a free-text column, or "" when it holds the sentinel.
func Detail(v cell.Value) string {
	s := v.String()
	if s == NotApplicable {
		return ""
	}
	return s
}
