package billing

import (
	"strconv"
	"strings"

	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
)

// metadata key carrying the plan tier on provider subscriptions.
const metadataPlanTypeKey = "plan_type"

// metadata key carrying the seat count on provider subscriptions.
const metadataUserCountKey = "userCount"

func normalizeInterval(interval string) string {
	switch strings.ToLower(strings.TrimSpace(interval)) {
	case "day":
		return "day"
	case "week":
		return "week"
	case "month":
		return "month"
	case "year":
		return "year"
	default:
		return ""
	}
}

// userCountFromMetadata extracts the seat count from subscription metadata.
// Absent or unparseable values default to 1.
func userCountFromMetadata(metadata map[string]string) int64 {
	raw, ok := metadata[metadataUserCountKey]
	if !ok {
		return 1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 1
	}
	return n
}

// additionalUsers derives billable extra seats from the total seat count.
// Never negative.
func additionalUsers(userCount int64) int64 {
	if userCount <= 1 {
		return 0
	}
	return userCount - 1
}

// tierForSubscription derives the profile tier. metadata.plan_type wins when
// it names a known tier; otherwise the price id is resolved through the
// static price→tier table. An unmapped price yields the explicit empty tier,
// never a default.
func tierForSubscription(metadata map[string]string, priceID string, tiers *entitlements.PriceTierMap) string {
	if planType, ok := metadata[metadataPlanTypeKey]; ok && entitlements.IsKnownTier(planType) {
		return string(entitlements.NormalizeTier(planType))
	}
	if tier, ok := tiers.Resolve(priceID); ok {
		return string(tier)
	}
	return ""
}
