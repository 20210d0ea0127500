package entitlements

import "strings"

type Tier string

const (
	TierSingleUser Tier = "single_user"
	TierTeam       Tier = "team"
	TierCorporate  Tier = "corporate"
)

// NormalizeTier maps arbitrary input to a known tier. Unknown values fall
// back to the base tier so authorization always fails closed.
func NormalizeTier(tier string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(tier))) {
	case TierTeam:
		return TierTeam
	case TierCorporate:
		return TierCorporate
	default:
		return TierSingleUser
	}
}

// IsKnownTier reports whether the raw value names one of the three tiers.
func IsKnownTier(tier string) bool {
	switch Tier(strings.ToLower(strings.TrimSpace(tier))) {
	case TierSingleUser, TierTeam, TierCorporate:
		return true
	default:
		return false
	}
}

// TierRank orders tiers in the lattice single_user < team < corporate.
func TierRank(tier Tier) int {
	switch tier {
	case TierCorporate:
		return 2
	case TierTeam:
		return 1
	default:
		return 0
	}
}

// FeatureRegistry maps a feature key to the minimum tier required to use it.
type FeatureRegistry map[string]Tier

// HasFeatureAccess reports whether the given tier may use the feature. An
// unknown feature key is never granted.
func HasFeatureAccess(featureKey, tier string, registry FeatureRegistry) bool {
	required, ok := registry[featureKey]
	if !ok {
		return false
	}
	return TierRank(NormalizeTier(tier)) >= TierRank(required)
}

// DefaultFeatureRegistry gates the dashboard feature keys.
func DefaultFeatureRegistry() FeatureRegistry {
	return FeatureRegistry{
		"contacts":         TierSingleUser,
		"listings":         TierSingleUser,
		"tasks":            TierSingleUser,
		"document_vault":   TierSingleUser,
		"team_members":     TierTeam,
		"shared_pipelines": TierTeam,
		"lead_routing":     TierTeam,
		"reports":          TierTeam,
		"audit_log":        TierCorporate,
		"office_analytics": TierCorporate,
		"api_access":       TierCorporate,
	}
}
