package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_UnmarshalJSON(t *testing.T) {
	var got Identity
	err := json.Unmarshal([]byte(`{
		"nama": "Siti Aminah",
		"email": "siti@example.com",
		"asalSekolah": "SMK Negeri 2",
		"site": "Bandung",
		"nomorRekening": 1234567890,
		"alamat": null
	}`), &got)
	require.NoError(t, err)

	assert.Equal(t, Identity{
		Name:        "Siti Aminah",
		Email:       "siti@example.com",
		School:      "SMK Negeri 2",
		Site:        "Bandung",
		BankAccount: "1234567890",
	}, got)
}

func TestFallbackIdentity(t *testing.T) {
	got := FallbackIdentity("budi.santoso@example.com")

	assert.Equal(t, "budi.santoso", got.Name)
	assert.Equal(t, "budi.santoso@example.com", got.Email)
	assert.Equal(t, "-", got.Site)
	assert.Equal(t, "-", got.Address)
}

func TestFind(t *testing.T) {
	roster := []Identity{
		{Name: "Siti", Email: "siti@example.com"},
		{Name: "Budi", Email: "budi@example.com"},
	}

	got, ok := Find(roster, "budi@example.com")
	require.True(t, ok)
	assert.Equal(t, "Budi", got.Name)

	_, ok = Find(roster, "BUDI@example.com")
	assert.False(t, ok)
}

func TestNewProfileResponse(t *testing.T) {
	resp := NewProfileResponse(Identity{Name: "siti", Email: "siti@example.com"})

	assert.Equal(t, "S", resp.Initial)
	assert.Equal(t, "-", resp.School)
	assert.Equal(t, "-", resp.BankAccount)

	resp = NewProfileResponse(Identity{Email: "anon@example.com"})
	assert.Equal(t, "anon@example.com", resp.Name)
	assert.Equal(t, "A", resp.Initial)
}
