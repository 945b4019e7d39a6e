package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = day(2026, 0, 13)

func TestStatusForDate(t *testing.T) {
	e := newTestEngine(9)
	records := []Record{
		rec(10, TypeCheckIn, "Senin, 12 Januari 2026"),
		checkout(11, "2026-01-12T10:00:00.000Z", CheckoutNormal),
		rec(12, TypeCheckIn, "13/1/2026"),
		rec(3, TypeCheckOut, "13 Januari 2026"), // below threshold
	}

	assert.Equal(t, DayStatus{HasCheckIn: true, HasCheckOut: true}, e.StatusForDate(records, day(2026, 0, 12)))
	assert.Equal(t, DayStatus{HasCheckIn: true}, e.StatusForDate(records, today))
	assert.Equal(t, DayStatus{}, e.StatusForDate(records, day(2026, 0, 14)))
}

func TestStatusForPreviousDay(t *testing.T) {
	e := newTestEngine(9)

	missing := []Record{rec(10, TypeCheckIn, "Senin, 12 Januari 2026")}
	assert.Equal(t,
		PreviousDayStatus{HasCheckIn: true, MissingCheckOut: true},
		e.StatusForPreviousDay(missing, today))

	complete := append(missing, checkout(11, "Senin, 12 Januari 2026", CheckoutOvertime))
	assert.False(t, e.StatusForPreviousDay(complete, today).MissingCheckOut)

	assert.False(t, e.StatusForPreviousDay(nil, today).MissingCheckOut)
}

func TestHasMatchingCheckOut(t *testing.T) {
	e := newTestEngine(9)
	checkIn := rec(10, TypeCheckIn, "12 Januari 2026")
	records := []Record{checkIn, checkout(11, "12/1/2026", CheckoutNormal)}

	assert.True(t, e.HasMatchingCheckOut(records, checkIn))
	assert.False(t, e.HasMatchingCheckOut(records[:1], checkIn))
	assert.False(t, e.HasMatchingCheckOut(records, rec(12, TypeCheckIn, "unknown")))
}

func TestGate_Ordering(t *testing.T) {
	e := newTestEngine(9)
	yesterdayCheckIn := []Record{rec(10, TypeCheckIn, "Senin, 12 Januari 2026")}

	cases := []struct {
		name    string
		records []Record
		sub     Submission
		want    error
	}{
		{
			name:    "leave blocked by missing previous check-out",
			records: yesterdayCheckIn,
			sub:     Submission{Type: TypeLeave, Date: today, Reason: "Keperluan keluarga"},
			want:    ErrMissingPreviousCheckOut,
		},
		{
			name:    "previous day rule wins over empty reason",
			records: yesterdayCheckIn,
			sub:     Submission{Type: TypeLeave, Date: today},
			want:    ErrMissingPreviousCheckOut,
		},
		{
			name:    "future date also blocked",
			records: yesterdayCheckIn,
			sub:     Submission{Type: TypeSick, Date: today.AddDays(2)},
			want:    ErrMissingPreviousCheckOut,
		},
		{
			name:    "backdated check-out for yesterday allowed",
			records: yesterdayCheckIn,
			sub:     Submission{Type: TypeCheckOut, Date: today.AddDays(-1), CheckoutKind: CheckoutNormal, WorkScope: "Rekap data"},
			want:    nil,
		},
		{
			name: "check-out without check-in",
			sub:  Submission{Type: TypeCheckOut, Date: today, CheckoutKind: CheckoutNormal, WorkScope: "Rekap data"},
			want: ErrCheckInRequired,
		},
		{
			name: "check-in rule wins over missing kind",
			sub:  Submission{Type: TypeCheckOut, Date: today},
			want: ErrCheckInRequired,
		},
		{
			name:    "duplicate check-in",
			records: []Record{rec(10, TypeCheckIn, "13 Januari 2026")},
			sub:     Submission{Type: TypeCheckIn, Date: today},
			want:    ErrDuplicateCheckIn,
		},
		{
			name: "leave without reason",
			sub:  Submission{Type: TypeLeave, Date: today, Reason: "   "},
			want: ErrReasonRequired,
		},
		{
			name:    "check-out without kind",
			records: []Record{rec(10, TypeCheckIn, "13 Januari 2026")},
			sub:     Submission{Type: TypeCheckOut, Date: today, WorkScope: "Rekap data"},
			want:    ErrCheckoutKindRequired,
		},
		{
			name:    "check-out without work scope",
			records: []Record{rec(10, TypeCheckIn, "13 Januari 2026")},
			sub:     Submission{Type: TypeCheckOut, Date: today, CheckoutKind: CheckoutOvertime},
			want:    ErrWorkScopeRequired,
		},
		{
			name: "sick needs nothing else",
			sub:  Submission{Type: TypeSick, Date: today},
			want: nil,
		},
		{
			name: "first check-in",
			sub:  Submission{Type: TypeCheckIn, Date: today},
			want: nil,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := e.Gate(c.records, c.sub, today)
			if c.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, c.want)
			assert.True(t, IsGateError(err))
		})
	}
}

func TestGate_DuplicateCheckInAcrossEncodings(t *testing.T) {
	e := newTestEngine(9)
	records := []Record{rec(20, TypeCheckIn, "2026-01-12T23:30:00.000Z")} // 13 Jan in WIB

	err := e.Gate(records, Submission{Type: TypeCheckIn, Date: today}, today)
	assert.ErrorIs(t, err, ErrDuplicateCheckIn)
}

func TestGate_IgnoresInvalidRecords(t *testing.T) {
	e := newTestEngine(9)
	records := []Record{
		rec(5, TypeCheckIn, "13 Januari 2026"),
		rec(10, TypeCheckIn, "Tanggal"),
	}

	assert.NoError(t, e.Gate(records, Submission{Type: TypeCheckIn, Date: today}, today))
}

func TestBuildRecord(t *testing.T) {
	owner := Owner{Name: "Budi", Email: "budi@example.com", Site: "Jakarta", School: "SMK 1", BankAccount: "123"}

	checkOut := BuildRecord(Submission{
		Type:         TypeCheckOut,
		Date:         day(2026, 0, 12),
		CheckoutKind: CheckoutOvertime,
		WorkScope:    " Instalasi ",
	}, owner, Indonesian)
	assert.Equal(t, "Senin, 12 Januari 2026", checkOut.Date.String())
	assert.Equal(t, "Senin", checkOut.Weekday.String())
	assert.Equal(t, "Januari", checkOut.Month.String())
	assert.True(t, checkOut.Year.Numeric)
	assert.Equal(t, "Lembur", checkOut.CheckoutKind.String())
	assert.Equal(t, "Instalasi", checkOut.WorkScope.String())
	assert.Equal(t, NotApplicable, checkOut.Reason.String())
	assert.Equal(t, "budi@example.com", checkOut.Email.String())
	assert.False(t, checkOut.RowID.Set)

	leave := BuildRecord(Submission{Type: TypeLeave, Date: day(2026, 0, 12), Reason: "Acara keluarga"}, owner, Indonesian)
	assert.Equal(t, "Acara keluarga", leave.Reason.String())
	assert.Equal(t, NotApplicable, leave.CheckoutKind.String())
	assert.Equal(t, NotApplicable, leave.WorkScope.String())
}
