package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// extractor pulls the record array out of one response shape. ok is false
// when the shape does not apply.
type extractor func(body []byte) (items []json.RawMessage, ok bool)

// recordExtractors lists the shapes the backend has served over time, most
// specific first.
var recordExtractors = []extractor{
	fieldArray("absensi"),
	fieldArray("users"),
	topLevelArray,
	firstArrayProperty,
}

func extractRecords(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not json", ErrMalformedResponse)
	}
	for _, extract := range recordExtractors {
		if items, ok := extract(body); ok {
			return items, nil
		}
	}
	return nil, fmt.Errorf("%w: no record array found", ErrMalformedResponse)
}

func asObject(body []byte) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func fieldArray(name string) extractor {
	return func(body []byte) ([]json.RawMessage, bool) {
		obj, ok := asObject(body)
		if !ok {
			return nil, false
		}
		field, present := obj[name]
		if !present {
			return nil, false
		}
		return asArray(field)
	}
}

func topLevelArray(body []byte) ([]json.RawMessage, bool) {
	return asArray(body)
}

// firstArrayProperty walks the object in document order, which a map decode
// would lose.
func firstArrayProperty(body []byte) ([]json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		if items, ok := asArray(value); ok {
			return items, true
		}
	}
	return nil, false
}
