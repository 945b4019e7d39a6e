package attendance

import (
	"sort"
	"strings"
)

// ViewReason tells an empty history apart from an over-filtered one.
type ViewReason string

const (
	ReasonOK        ViewReason = "ok"
	ReasonNoHistory ViewReason = "no_history"
	ReasonNoMatch   ViewReason = "no_match"
)

// HistoryQuery selects what the history view shows. Type is FilterAll, "all"
// or a record type; Date is empty or a date filter string.
type HistoryQuery struct {
	Type string
	Date string
}

// HistoryItem is one row of the history view.
type HistoryItem struct {
	Record          Record
	Date            CalendarDate
	HasDate         bool
	DisplayDate     string
	MissingCheckOut bool
}

// HistoryView is the filtered, newest-first history.
type HistoryView struct {
	Items  []HistoryItem
	Reason ViewReason
}

func isAllFilter(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FilterAll, "all":
		return true
	}
	return false
}

// History filters the valid records by type and date and orders them by
// calendar day, most recent first. Dateless records sort last in input order.
func (e *Engine) History(records []Record, q HistoryQuery, today CalendarDate) HistoryView {
	if len(records) == 0 {
		return HistoryView{Items: []HistoryItem{}, Reason: ReasonNoHistory}
	}
	rows := e.dated(records)

	if !isAllFilter(q.Type) {
		want, ok := ParseType(q.Type)
		rows = keep(rows, func(d dated) bool { return ok && d.record.Type == want })
	}

	if filter := strings.TrimSpace(q.Date); filter != "" {
		if target, ok := e.normalizer.ParseFilter(filter); ok {
			rows = keep(rows, func(d dated) bool { return d.ok && d.date == target })
		} else {
			rows = keep(rows, func(d dated) bool { return strings.Contains(d.record.Date.Text, filter) })
		}
	}

	if len(rows) == 0 {
		return HistoryView{Items: []HistoryItem{}, Reason: ReasonNoMatch}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.date.After(b.date)
	})

	items := make([]HistoryItem, 0, len(rows))
	for _, d := range rows {
		item := HistoryItem{
			Record:      d.record,
			Date:        d.date,
			HasDate:     d.ok,
			DisplayDate: e.DisplayDate(d.record),
		}
		if d.record.Type == TypeCheckIn && d.ok && !d.date.After(today) {
			item.MissingCheckOut = !e.HasMatchingCheckOut(records, d.record)
		}
		items = append(items, item)
	}
	return HistoryView{Items: items, Reason: ReasonOK}
}

// DisplayDate renders ISO timestamps in the long localized form and returns
// every other encoding verbatim.
func (e *Engine) DisplayDate(r Record) string {
	raw := r.Date.String()
	if raw == "" {
		return NotApplicable
	}
	if t, ok := e.normalizer.timestamp(raw); ok {
		return e.normalizer.locale.LongDate(DateOf(t))
	}
	return raw
}

func keep(rows []dated, pred func(dated) bool) []dated {
	out := rows[:0:0]
	for _, d := range rows {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}
