package entitlements

// FeatureItem is a single dashboard entry.
type FeatureItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FeatureCategory groups dashboard entries under a named category.
type FeatureCategory struct {
	Category string        `json:"category"`
	Items    []FeatureItem `json:"items"`
}

// Static feature menus per tier. The three tiers form a strict superset
// lattice: single_user ⊆ team ⊆ corporate.
var baseCategories = []FeatureCategory{
	{
		Category: "Contacts",
		Items: []FeatureItem{
			{Name: "All Contacts", Path: "/dashboard/contacts"},
			{Name: "Segments", Path: "/dashboard/contacts/segments"},
		},
	},
	{
		Category: "Listings",
		Items: []FeatureItem{
			{Name: "My Listings", Path: "/dashboard/listings"},
			{Name: "Open Houses", Path: "/dashboard/listings/open-houses"},
		},
	},
	{
		Category: "Tasks",
		Items: []FeatureItem{
			{Name: "Today", Path: "/dashboard/tasks"},
			{Name: "Follow-Ups", Path: "/dashboard/tasks/follow-ups"},
		},
	},
	{
		Category: "Documents",
		Items: []FeatureItem{
			{Name: "Document Vault", Path: "/dashboard/documents"},
		},
	},
}

var teamCategories = []FeatureCategory{
	{
		Category: "Team",
		Items: []FeatureItem{
			{Name: "Members", Path: "/dashboard/team"},
			{Name: "Lead Routing", Path: "/dashboard/team/routing"},
			{Name: "Shared Pipelines", Path: "/dashboard/team/pipelines"},
		},
	},
	{
		Category: "Reports",
		Items: []FeatureItem{
			{Name: "Activity", Path: "/dashboard/reports/activity"},
			{Name: "Conversion", Path: "/dashboard/reports/conversion"},
		},
	},
}

var corporateCategories = []FeatureCategory{
	{
		Category: "Administration",
		Items: []FeatureItem{
			{Name: "Offices", Path: "/dashboard/admin/offices"},
			{Name: "Audit Log", Path: "/dashboard/admin/audit"},
			{Name: "API Access", Path: "/dashboard/admin/api"},
		},
	},
	{
		Category: "Analytics",
		Items: []FeatureItem{
			{Name: "Office Analytics", Path: "/dashboard/analytics/offices"},
			{Name: "Market Trends", Path: "/dashboard/analytics/trends"},
		},
	},
}

// FeaturesForTier returns the ordered, de-duplicated feature menu for a tier.
// Higher tiers extend the lower tier's menu; when a tier-specific category
// name collides with an inherited one, the inherited version wins and the
// tier-specific items are dropped.
func FeaturesForTier(tier string) []FeatureCategory {
	switch NormalizeTier(tier) {
	case TierCorporate:
		return mergeCategories(FeaturesForTier(string(TierTeam)), corporateCategories)
	case TierTeam:
		return mergeCategories(FeaturesForTier(string(TierSingleUser)), teamCategories)
	default:
		out := make([]FeatureCategory, len(baseCategories))
		copy(out, baseCategories)
		return out
	}
}

func mergeCategories(inherited, specific []FeatureCategory) []FeatureCategory {
	seen := make(map[string]struct{}, len(inherited))
	out := make([]FeatureCategory, 0, len(inherited)+len(specific))
	for _, c := range inherited {
		seen[c.Category] = struct{}{}
		out = append(out, c)
	}
	for _, c := range specific {
		if _, ok := seen[c.Category]; ok {
			// Inherited category wins; tier-specific items are dropped.
			continue
		}
		seen[c.Category] = struct{}{}
		out = append(out, c)
	}
	return out
}
