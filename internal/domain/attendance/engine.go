package attendance

// Engine evaluates a user's record list: attendance state, submission gating,
// the history view and statistics. Every method treats the input slice as
// read-only and works on the Validator-passed subset.
type Engine struct {
	normalizer *Normalizer
	validator  Validator
}

func NewEngine(normalizer *Normalizer, validator Validator) *Engine {
	return &Engine{normalizer: normalizer, validator: validator}
}

func (e *Engine) Normalizer() *Normalizer {
	return e.normalizer
}

func (e *Engine) Validator() Validator {
	return e.validator
}

// dated is a valid record paired with its normalized day.
type dated struct {
	record Record
	date   CalendarDate
	ok     bool
}

func (e *Engine) dated(records []Record) []dated {
	out := make([]dated, 0, len(records))
	for _, r := range records {
		if !e.validator.IsValid(r) {
			continue
		}
		d, ok := e.normalizer.Normalize(r)
		out = append(out, dated{record: r, date: d, ok: ok})
	}
	return out
}
