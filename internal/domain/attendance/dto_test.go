package attendance

import (
	"testing"

	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequest_Validate(t *testing.T) {
	req := SubmitRequest{Type: "pulang", Date: "2026-01-12", CheckoutKind: "lembur", WorkScope: "Rekap"}
	require.NoError(t, req.Validate())

	sub := req.Submission()
	assert.Equal(t, TypeCheckOut, sub.Type)
	assert.Equal(t, day(2026, 0, 12), sub.Date)
	assert.Equal(t, CheckoutOvertime, sub.CheckoutKind)

	bad := SubmitRequest{Type: "Cuti", Date: "12/01/2026", CheckoutKind: "Pagi"}
	err := bad.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}

func TestSubmitRequest_TypeSpecificFieldsLeftToGate(t *testing.T) {
	req := SubmitRequest{Type: "Izin", Date: "2026-01-12"}
	assert.NoError(t, req.Validate())
}

func TestStatsFilter_Validate(t *testing.T) {
	f := StatsFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, MonthAll, f.Month)

	f = StatsFilter{Month: "2026-1"}
	assert.Error(t, f.Validate())
}

func TestHistoryFilter_Validate(t *testing.T) {
	typ := "Lembur"
	assert.Error(t, (&HistoryFilter{Type: &typ}).Validate())

	all := "semua"
	assert.NoError(t, (&HistoryFilter{Type: &all}).Validate())
	assert.NoError(t, (&HistoryFilter{}).Validate())
}
