package attendance

// DefaultMinRowID is the first data row of the current sheet layout. Sheets
// created by the previous backend generation start at row 7.
const DefaultMinRowID = 9

var datePlaceholders = map[string]struct{}{
	"":        {},
	"-":       {},
	"Tanggal": {},
}

// Validator decides whether a backend row is real attendance data rather
// than a header, spacer or legacy row.
type Validator struct {
	MinRowID int
}

func NewValidator(minRowID int) Validator {
	if minRowID <= 0 {
		minRowID = DefaultMinRowID
	}
	return Validator{MinRowID: minRowID}
}

// IsValid requires a known type, a non-placeholder tanggal and a row id at
// or above the threshold.
func (v Validator) IsValid(r Record) bool {
	if !r.Type.IsKnown() {
		return false
	}
	if !r.Date.Set {
		return false
	}
	if _, placeholder := datePlaceholders[r.Date.String()]; placeholder {
		return false
	}
	row, ok := r.RowID.Int()
	return ok && row >= v.MinRowID
}

// Filter returns the valid subset of records as a new slice.
func (v Validator) Filter(records []Record) []Record {
	valid := make([]Record, 0, len(records))
	for _, r := range records {
		if v.IsValid(r) {
			valid = append(valid, r)
		}
	}
	return valid
}
