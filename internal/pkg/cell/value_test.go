package cell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	var doc struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a":"Januari","b":12,"c":null}`), &doc)
	require.NoError(t, err)

	assert.Equal(t, Value{Text: "Januari", Set: true}, doc.A)
	assert.Equal(t, Value{Text: "12", Numeric: true, Set: true}, doc.B)
	assert.False(t, doc.C.Set)
	assert.False(t, doc.D.Set)
}

func TestValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c,omitzero"`
	}{A: Text("Senin"), B: Number(2026)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"Senin","b":2026}`, string(out))
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"9", 9, true},
		{" 12 ", 12, true},
		{"12.0", 12, true},
		{"7abc", 7, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
	}
	for _, c := range cases {
		got, ok := LeadingInt(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("LeadingInt(%q) = %d, %v; want %d, %v", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestValue_Int(t *testing.T) {
	n, ok := Number(15).Int()
	assert.True(t, ok)
	assert.Equal(t, 15, n)

	_, ok = Value{}.Int()
	assert.False(t, ok)
}
