package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowIDs(view HistoryView) []string {
	ids := make([]string, 0, len(view.Items))
	for _, item := range view.Items {
		ids = append(ids, item.Record.RowID.String())
	}
	return ids
}

func historyFixture() []Record {
	return []Record{
		rec(10, TypeCheckIn, "Senin, 5 Januari 2026"),
		rec(11, TypeCheckIn, "not a date"),
		rec(12, TypeLeave, "2026-01-07T02:00:00.000Z"),
		rec(13, TypeCheckIn, "12/1/2026"),
		checkout(14, "12 Januari 2026", CheckoutNormal),
		rec(15, TypeSick, "also not a date"),
		rec(4, TypeCheckIn, "13 Januari 2026"),
	}
}

func TestHistory_SortsNewestFirstWithDatelessLast(t *testing.T) {
	e := newTestEngine(9)

	view := e.History(historyFixture(), HistoryQuery{Type: FilterAll}, today)

	require.Equal(t, ReasonOK, view.Reason)
	assert.Equal(t, []string{"13", "14", "12", "10", "11", "15"}, rowIDs(view))
	assert.False(t, view.Items[4].HasDate)
}

func TestHistory_TypeFilter(t *testing.T) {
	e := newTestEngine(9)

	view := e.History(historyFixture(), HistoryQuery{Type: "Masuk"}, today)
	assert.Equal(t, []string{"13", "10", "11"}, rowIDs(view))

	view = e.History(historyFixture(), HistoryQuery{Type: "check_out"}, today)
	assert.Equal(t, []string{"14"}, rowIDs(view))
}

func TestHistory_DateFilter(t *testing.T) {
	e := newTestEngine(9)

	view := e.History(historyFixture(), HistoryQuery{Date: "2026-01-12"}, today)
	assert.Equal(t, []string{"13", "14"}, rowIDs(view))

	view = e.History(historyFixture(), HistoryQuery{Date: "2026-01-07"}, today)
	assert.Equal(t, []string{"12"}, rowIDs(view))

	// unparseable filters fall back to substring matching on the raw column
	view = e.History(historyFixture(), HistoryQuery{Date: "not a"}, today)
	assert.Equal(t, []string{"11", "15"}, rowIDs(view))
}

func TestHistory_Reasons(t *testing.T) {
	e := newTestEngine(9)

	empty := e.History(nil, HistoryQuery{}, today)
	assert.Equal(t, ReasonNoHistory, empty.Reason)
	assert.Empty(t, empty.Items)

	// rows exist but none is attendance data
	invalid := e.History([]Record{rec(3, TypeCheckIn, "12 Januari 2026")}, HistoryQuery{}, today)
	assert.Equal(t, ReasonNoMatch, invalid.Reason)
	assert.Empty(t, invalid.Items)

	noMatch := e.History(historyFixture(), HistoryQuery{Type: "Izin", Date: "2026-01-12"}, today)
	assert.Equal(t, ReasonNoMatch, noMatch.Reason)
	assert.NotNil(t, noMatch.Items)
}

func TestHistory_MissingCheckOutBadge(t *testing.T) {
	e := newTestEngine(9)
	records := append(historyFixture(), rec(16, TypeCheckIn, "20 Januari 2026"))

	view := e.History(records, HistoryQuery{Type: "Masuk"}, today)

	badges := map[string]bool{}
	for _, item := range view.Items {
		badges[item.Record.RowID.String()] = item.MissingCheckOut
	}
	assert.Equal(t, map[string]bool{
		"16": false, // future
		"13": false, // checked out on the 12th
		"10": true,
		"11": false, // dateless
	}, badges)
}

func TestHistory_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine(9)
	records := historyFixture()
	before := append([]Record(nil), records...)

	e.History(records, HistoryQuery{}, today)
	assert.Equal(t, before, records)
}

func TestDisplayDate(t *testing.T) {
	e := newTestEngine(9)

	assert.Equal(t, "Rabu, 7 Januari 2026", e.DisplayDate(rec(12, TypeLeave, "2026-01-07T02:00:00.000Z")))
	assert.Equal(t, "12/1/2026", e.DisplayDate(rec(13, TypeCheckIn, "12/1/2026")))
	assert.Equal(t, NotApplicable, e.DisplayDate(Record{}))
}

func TestNewRecordResponse(t *testing.T) {
	e := newTestEngine(9)
	view := e.History([]Record{checkout(14, "12 Januari 2026", CheckoutNormal)}, HistoryQuery{}, today)
	require.Len(t, view.Items, 1)

	resp := NewRecordResponse(view.Items[0])
	assert.Equal(t, "14", resp.RowID)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-01-12", *resp.Date)
	require.NotNil(t, resp.CheckoutKind)
	assert.Equal(t, "Normal", *resp.CheckoutKind)
	assert.Nil(t, resp.Reason)
}
