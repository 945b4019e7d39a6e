package attendance

import (
	"regexp"
	"sort"
	"strings"
)

// MonthAll disables the month scope of the statistics.
const MonthAll = "all"

var monthKeyRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsMonthKey reports whether s is a YYYY-MM key.
func IsMonthKey(s string) bool {
	return monthKeyRe.MatchString(s)
}

// Statistics tallies valid records by type, and check-outs by kind.
type Statistics struct {
	CheckIn          int `json:"check_in"`
	CheckOutNormal   int `json:"check_out_normal"`
	CheckOutOvertime int `json:"check_out_overtime"`
	Leave            int `json:"leave"`
	Sick             int `json:"sick"`
}

// MonthOption is one entry of the month selector.
type MonthOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Stats counts the valid records, scoped to one calendar month unless month
// is MonthAll or empty.
func (e *Engine) Stats(records []Record, month string) (Statistics, error) {
	month = strings.TrimSpace(month)
	scoped := month != "" && month != MonthAll
	if scoped && !IsMonthKey(month) {
		return Statistics{}, ErrInvalidMonthFilter
	}

	var s Statistics
	for _, d := range e.dated(records) {
		if scoped && (!d.ok || d.date.MonthKey() != month) {
			continue
		}
		switch d.record.Type {
		case TypeCheckIn:
			s.CheckIn++
		case TypeCheckOut:
			switch kind, _ := d.record.Kind(); kind {
			case CheckoutNormal:
				s.CheckOutNormal++
			case CheckoutOvertime:
				s.CheckOutOvertime++
			}
		case TypeLeave:
			s.Leave++
		case TypeSick:
			s.Sick++
		}
	}
	return s, nil
}

// MonthKeys lists the distinct months that have dated valid records, most
// recent first.
func (e *Engine) MonthKeys(records []Record) []MonthOption {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, d := range e.dated(records) {
		if !d.ok {
			continue
		}
		key := d.date.MonthKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	options := make([]MonthOption, 0, len(keys))
	for _, key := range keys {
		options = append(options, MonthOption{Key: key, Label: e.normalizer.locale.MonthLabel(key)})
	}
	return options
}
