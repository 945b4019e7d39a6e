package attendance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CalendarDate is a day on the calendar with no time-of-day. Month is
// zero-based (0 = January).
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// NewCalendarDate builds a date the way a calendar does: a day past the end
// of the month rolls into the next one, day 0 is the last day of the
// previous month. It reports false only for a month outside 0-11.
func NewCalendarDate(year, month, day int) (CalendarDate, bool) {
	if month < 0 || month > 11 {
		return CalendarDate{}, false
	}
	return DateOf(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)), true
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// ParseISODate parses the YYYY-MM-DD form used by date inputs.
func ParseISODate(s string) (CalendarDate, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, err
	}
	return DateOf(t), nil
}

func (d CalendarDate) time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves the date by n days.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.time().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (d CalendarDate) Weekday() time.Weekday {
	return d.time().Weekday()
}

// Compare returns -1, 0 or +1.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }

// MonthKey returns the YYYY-MM key of the month containing d.
func (d CalendarDate) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month+1)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseISODate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Locale holds the month and weekday labels written by the backend. Index
// stability is what matters: Months[i] is calendar month i+1 and
// Weekdays[i] is time.Weekday(i).
type Locale struct {
	Months   [12]string
	Weekdays [7]string
}

var Indonesian = Locale{
	Months: [12]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	},
	Weekdays: [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
}

var English = Locale{
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

// LocaleByName resolves a configured locale ("id" or "en").
func LocaleByName(name string) (Locale, bool) {
	switch strings.ToLower(name) {
	case "", "id", "id-id":
		return Indonesian, true
	case "en", "en-us", "en-gb":
		return English, true
	}
	return Locale{}, false
}

// MonthIndex returns the zero-based index of an exact, case-sensitive month
// label, or -1.
func (l Locale) MonthIndex(name string) int {
	for i, m := range l.Months {
		if m == name {
			return i
		}
	}
	return -1
}

// LongDate renders "Senin, 12 Januari 2026".
func (l Locale) LongDate(d CalendarDate) string {
	return fmt.Sprintf("%s, %d %s %d", l.Weekdays[d.Weekday()], d.Day, l.Months[d.Month], d.Year)
}

// MonthLabel renders a YYYY-MM key as "Januari 2026".
func (l Locale) MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", l.Months[int(t.Month())-1], t.Year())
}

var (
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})\s+(\p{L}+)\s+(\d{4})$`)
	slashDateRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Normalizer turns the historical date encodings of the backend into a
// CalendarDate. Timestamps are read in Location.
type Normalizer struct {
	locale   Locale
	location *time.Location
}

func NewNormalizer(locale Locale, location *time.Location) *Normalizer {
	if location == nil {
		location = time.Local
	}
	return &Normalizer{locale: locale, location: location}
}

func (n *Normalizer) Locale() Locale {
	return n.locale
}

func (n *Normalizer) Location() *time.Location {
	return n.location
}

// Today returns the calendar day of now in the configured location.
func (n *Normalizer) Today(now time.Time) CalendarDate {
	return DateOf(now.In(n.location))
}

// Normalize derives the calendar day of a record. The tanggal column is tried
// first in every string encoding, then the split tahun/bulan/tanggalAngka
// columns. ok is false for dateless records.
func (n *Normalizer) Normalize(r Record) (CalendarDate, bool) {
	if r.Date.Set {
		if d, ok := n.ParseDate(r.Date.String()); ok {
			return d, true
		}
	}
	return n.fromFields(r)
}

// ParseDate parses one date string: ISO timestamp, "Senin, 12 Januari 2026",
// "12 Januari 2026" or "12/1/2026".
func (n *Normalizer) ParseDate(s string) (CalendarDate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CalendarDate{}, false
	}

	if t, ok := n.timestamp(s); ok {
		return DateOf(t), true
	}

	if strings.Contains(s, ",") {
		if parts := strings.Split(s, ", "); len(parts) > 1 {
			if tokens := strings.Fields(parts[1]); len(tokens) >= 3 {
				if d, ok := n.fromTokens(tokens[0], tokens[1], tokens[2]); ok {
					return d, true
				}
			}
		}
	}

	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		if d, ok := n.fromTokens(m[1], m[2], m[3]); ok {
			return d, true
		}
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if d, ok := NewCalendarDate(year, month-1, day); ok {
			return d, true
		}
	}

	return CalendarDate{}, false
}

// ParseFilter parses a history date filter. Date inputs send YYYY-MM-DD; any
// record encoding is accepted as well.
func (n *Normalizer) ParseFilter(s string) (CalendarDate, bool) {
	if d, err := ParseISODate(s); err == nil {
		return d, true
	}
	return n.ParseDate(s)
}

// timestamp parses an ISO-8601 timestamp into the configured location.
func (n *Normalizer) timestamp(s string) (time.Time, bool) {
	if !strings.Contains(s, "T") {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, n.location); err == nil {
			return t.In(n.location), true
		}
	}
	return time.Time{}, false
}

func (n *Normalizer) fromTokens(dayTok, monthTok, yearTok string) (CalendarDate, bool) {
	day, err := strconv.Atoi(dayTok)
	if err != nil {
		return CalendarDate{}, false
	}
	month := n.locale.MonthIndex(monthTok)
	if month < 0 {
		return CalendarDate{}, false
	}
	year, err := strconv.Atoi(yearTok)
	if err != nil {
		return CalendarDate{}, false
	}
	return NewCalendarDate(year, month, day)
}

func (n *Normalizer) fromFields(r Record) (CalendarDate, bool) {
	if !r.Year.Set || !r.Month.Set || !r.DayOfMonth.Set {
		return CalendarDate{}, false
	}
	year, ok := r.Year.Int()
	if !ok {
		return CalendarDate{}, false
	}
	day, ok := r.DayOfMonth.Int()
	if !ok {
		return CalendarDate{}, false
	}

	month := -1
	if r.Month.Numeric {
		if idx, ok := r.Month.Int(); ok {
			month = idx
		}
	} else {
		month = n.locale.MonthIndex(r.Month.String())
	}
	if month < 0 {
		return CalendarDate{}, false
	}
	return NewCalendarDate(year, month, day)
}
