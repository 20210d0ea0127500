package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Tier
	}{
		{"team", "team", TierTeam},
		{"corporate", "corporate", TierCorporate},
		{"single user", "single_user", TierSingleUser},
		{"mixed case", "TeAm", TierTeam},
		{"surrounding whitespace", "  corporate  ", TierCorporate},
		{"unknown falls back to base", "enterprise", TierSingleUser},
		{"empty falls back to base", "", TierSingleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTier(tt.input))
		})
	}
}

func TestIsKnownTier(t *testing.T) {
	assert.True(t, IsKnownTier("single_user"))
	assert.True(t, IsKnownTier("team"))
	assert.True(t, IsKnownTier("CORPORATE"))
	assert.False(t, IsKnownTier("enterprise"))
	assert.False(t, IsKnownTier(""))
}

func TestTierRank_Ordering(t *testing.T) {
	if !(TierRank(TierSingleUser) < TierRank(TierTeam) && TierRank(TierTeam) < TierRank(TierCorporate)) {
		t.Fatalf("tier ranks out of order: %d %d %d",
			TierRank(TierSingleUser), TierRank(TierTeam), TierRank(TierCorporate))
	}
}

func TestHasFeatureAccess(t *testing.T) {
	registry := DefaultFeatureRegistry()

	tests := []struct {
		name       string
		featureKey string
		tier       string
		expected   bool
	}{
		{"base feature on base tier", "contacts", "single_user", true},
		{"team feature denied on base tier", "team_members", "single_user", false},
		{"team feature on team tier", "team_members", "team", true},
		{"team feature on corporate tier", "shared_pipelines", "corporate", true},
		{"corporate feature denied on team tier", "audit_log", "team", false},
		{"corporate feature on corporate tier", "api_access", "corporate", true},
		{"unknown feature never granted", "time_travel", "corporate", false},
		{"unknown tier treated as base", "reports", "platinum", false},
		{"empty tier treated as base", "contacts", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasFeatureAccess(tt.featureKey, tt.tier, registry))
		})
	}
}

// Every feature granted to a tier must also be granted to every higher tier.
func TestHasFeatureAccess_Monotonic(t *testing.T) {
	registry := DefaultFeatureRegistry()
	tiers := []Tier{TierSingleUser, TierTeam, TierCorporate}

	for key := range registry {
		for i := 0; i < len(tiers)-1; i++ {
			lower := HasFeatureAccess(key, string(tiers[i]), registry)
			higher := HasFeatureAccess(key, string(tiers[i+1]), registry)
			if lower && !higher {
				t.Fatalf("feature %q granted to %s but not to %s", key, tiers[i], tiers[i+1])
			}
		}
	}
}
