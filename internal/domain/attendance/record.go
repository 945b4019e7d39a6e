package attendance

import (
	"strings"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/cell"
)

// Owner is the identity copied onto every record a user submits.
type Owner struct {
	Name        string
	Email       string
	Site        string
	School      string
	BankAccount string
}

// BuildRecord lays out a submission the way the backend stores it: the long
// localized date, the split date columns, the owner columns and the
// NotApplicable sentinel for columns the type does not use.
func BuildRecord(sub Submission, owner Owner, locale Locale) Record {
	r := Record{
		Date:         cell.Text(locale.LongDate(sub.Date)),
		Weekday:      cell.Text(locale.Weekdays[sub.Date.Weekday()]),
		DayOfMonth:   cell.Number(sub.Date.Day),
		Month:        cell.Text(locale.Months[sub.Date.Month]),
		Year:         cell.Number(sub.Date.Year),
		Name:         cell.Text(owner.Name),
		Site:         cell.Text(owner.Site),
		Email:        cell.Text(owner.Email),
		School:       cell.Text(owner.School),
		BankAccount:  cell.Text(owner.BankAccount),
		Type:         sub.Type,
		Reason:       cell.Text(NotApplicable),
		CheckoutKind: cell.Text(NotApplicable),
		WorkScope:    cell.Text(NotApplicable),
	}
	switch sub.Type {
	case TypeLeave:
		r.Reason = cell.Text(strings.TrimSpace(sub.Reason))
	case TypeCheckOut:
		r.CheckoutKind = cell.Text(string(sub.CheckoutKind))
		r.WorkScope = cell.Text(strings.TrimSpace(sub.WorkScope))
	}
	return r
}
