package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
)

func TestUserCountFromMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		expected int64
	}{
		{"absent defaults to one", map[string]string{}, 1},
		{"nil defaults to one", nil, 1},
		{"valid count", map[string]string{"userCount": "5"}, 5},
		{"zero is kept", map[string]string{"userCount": "0"}, 0},
		{"whitespace trimmed", map[string]string{"userCount": " 12 "}, 12},
		{"unparseable defaults to one", map[string]string{"userCount": "lots"}, 1},
		{"negative defaults to one", map[string]string{"userCount": "-3"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, userCountFromMetadata(tt.metadata))
		})
	}
}

func TestAdditionalUsers(t *testing.T) {
	assert.EqualValues(t, 0, additionalUsers(0))
	assert.EqualValues(t, 0, additionalUsers(1))
	assert.EqualValues(t, 1, additionalUsers(2))
	assert.EqualValues(t, 19, additionalUsers(20))
}

func TestNormalizeInterval(t *testing.T) {
	assert.Equal(t, "month", normalizeInterval("month"))
	assert.Equal(t, "year", normalizeInterval(" YEAR "))
	assert.Equal(t, "week", normalizeInterval("week"))
	assert.Equal(t, "day", normalizeInterval("day"))
	assert.Equal(t, "", normalizeInterval("quarter"))
	assert.Equal(t, "", normalizeInterval(""))
}

func TestTierForSubscription(t *testing.T) {
	tiers, err := entitlements.LoadPriceTierMap(`{"price_team":"team","price_corp":"corporate"}`)
	require.NoError(t, err)

	tests := []struct {
		name     string
		metadata map[string]string
		priceID  string
		expected string
	}{
		{"plan_type wins", map[string]string{"plan_type": "corporate"}, "price_team", "corporate"},
		{"plan_type normalized", map[string]string{"plan_type": " Team "}, "price_unmapped", "team"},
		{"unknown plan_type falls through to price map", map[string]string{"plan_type": "enterprise"}, "price_team", "team"},
		{"no metadata uses price map", nil, "price_corp", "corporate"},
		{"unmapped price yields empty tier", nil, "price_unmapped", ""},
		{"unknown plan_type and unmapped price yields empty tier", map[string]string{"plan_type": "gold"}, "price_x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tierForSubscription(tt.metadata, tt.priceID, tiers))
		})
	}
}
