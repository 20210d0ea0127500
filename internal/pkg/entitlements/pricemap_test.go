package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPriceTierMap_Valid(t *testing.T) {
	m, err := LoadPriceTierMap(`{"price_monthly_team":"team","price_yearly_corp":"corporate","price_solo":"single_user"}`)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	tier, ok := m.Resolve("price_monthly_team")
	require.True(t, ok)
	assert.Equal(t, TierTeam, tier)

	tier, ok = m.Resolve("price_yearly_corp")
	require.True(t, ok)
	assert.Equal(t, TierCorporate, tier)
}

func TestLoadPriceTierMap_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"not json", "price=team"},
		{"empty object", "{}"},
		{"blank price id", `{"  ":"team"}`},
		{"unknown tier", `{"price_1":"enterprise"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPriceTierMap(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestPriceTierMap_ResolveUnmapped(t *testing.T) {
	m, err := LoadPriceTierMap(`{"price_1":"team"}`)
	require.NoError(t, err)

	tier, ok := m.Resolve("price_unknown")
	assert.False(t, ok)
	assert.Equal(t, Tier(""), tier)
}

func TestPriceTierMap_NilSafe(t *testing.T) {
	var m *PriceTierMap
	tier, ok := m.Resolve("price_1")
	assert.False(t, ok)
	assert.Equal(t, Tier(""), tier)
	assert.Equal(t, 0, m.Len())
}

func TestMustLoadPriceTierMap_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPriceTierMap("")
	})
}
