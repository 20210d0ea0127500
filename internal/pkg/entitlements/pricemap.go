package entitlements

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PriceTierMap is the explicit price-id → tier lookup table. It is loaded
// once at process start and validated eagerly; reconciliation only reads it.
type PriceTierMap struct {
	byPrice map[string]Tier
}

// LoadPriceTierMap parses a JSON object of the form
// {"price_123":"team","price_456":"corporate"} and validates it: empty maps,
// blank price ids and unknown tier names all fail fast.
func LoadPriceTierMap(raw string) (*PriceTierMap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("price→tier map is empty")
	}

	var entries map[string]string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("price→tier map is not valid JSON: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("price→tier map has no entries")
	}

	byPrice := make(map[string]Tier, len(entries))
	for priceID, tier := range entries {
		id := strings.TrimSpace(priceID)
		if id == "" {
			return nil, fmt.Errorf("price→tier map contains a blank price id")
		}
		if !IsKnownTier(tier) {
			return nil, fmt.Errorf("price→tier map entry %q names unknown tier %q", id, tier)
		}
		byPrice[id] = NormalizeTier(tier)
	}
	return &PriceTierMap{byPrice: byPrice}, nil
}

// MustLoadPriceTierMap is LoadPriceTierMap for process startup paths.
func MustLoadPriceTierMap(raw string) *PriceTierMap {
	m, err := LoadPriceTierMap(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// Resolve returns the tier mapped to a price id. The second return reports
// whether a mapping exists; an unmapped price yields no tier, not a default.
func (m *PriceTierMap) Resolve(priceID string) (Tier, bool) {
	if m == nil {
		return "", false
	}
	tier, ok := m.byPrice[strings.TrimSpace(priceID)]
	return tier, ok
}

// Len returns the number of mapped prices.
func (m *PriceTierMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byPrice)
}
