// Package cell decodes spreadsheet cells that the backend serializes either as
// JSON strings or as JSON numbers depending on the column format.
package cell

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a single scalar cell.
type Value struct {
	Text    string
	Numeric bool
	Set     bool
}

// Text returns a string cell.
func Text(s string) Value {
	return Value{Text: s, Set: true}
}

// Number returns a numeric cell.
func Number(n int) Value {
	return Value{Text: strconv.Itoa(n), Numeric: true, Set: true}
}

// String returns the trimmed cell text.
func (v Value) String() string {
	return strings.TrimSpace(v.Text)
}

// IsZero reports whether the cell was absent or null.
func (v Value) IsZero() bool {
	return !v.Set
}

// Int parses the leading integer of the cell the way loose spreadsheet
// formulas do: "12", "12.0" and "12 " all yield 12.
func (v Value) Int() (int, bool) {
	if !v.Set {
		return 0, false
	}
	return LeadingInt(v.String())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = Value{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value{Text: s, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = Value{Text: n.String(), Numeric: true, Set: true}
		return nil
	}
	// booleans, objects and arrays are kept verbatim
	*v = Value{Text: string(b), Set: true}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	if v.Numeric {
		if _, err := strconv.ParseFloat(v.Text, 64); err == nil {
			return []byte(v.Text), nil
		}
	}
	return json.Marshal(v.Text)
}

// LeadingInt parses an optional sign followed by at least one digit at the
// start of s. Trailing characters are ignored.
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
