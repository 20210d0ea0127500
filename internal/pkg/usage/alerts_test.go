package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAlerts_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		usage    int64
		limit    int64
		expected AlertLevel // "" means no alert
	}{
		{"well below warning", 50, 100, ""},
		{"just below warning", 74, 100, ""},
		{"exactly at warning", 75, 100, AlertLevelWarning},
		{"between thresholds", 89, 100, AlertLevelWarning},
		{"exactly at critical", 90, 100, AlertLevelCritical},
		{"at limit", 100, 100, AlertLevelCritical},
		{"over limit", 150, 100, AlertLevelCritical},
		{"zero usage", 0, 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluateAlerts(
				map[string]int64{"contacts": tt.usage},
				map[string]int64{"contacts": tt.limit},
			)

			if tt.expected == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.expected, alerts[0].Level)
			assert.Equal(t, "contacts", alerts[0].Resource)
			assert.Equal(t, tt.usage, alerts[0].Usage)
			assert.Equal(t, tt.limit, alerts[0].Limit)
		})
	}
}

func TestEvaluateAlerts_MissingOrZeroLimitSkipped(t *testing.T) {
	alerts := EvaluateAlerts(
		map[string]int64{"contacts": 1000, "listings": 500},
		map[string]int64{"listings": 0},
	)
	assert.Empty(t, alerts)
}

func TestEvaluateAlerts_DeterministicOrder(t *testing.T) {
	usage := map[string]int64{"listings": 95, "contacts": 80, "emails": 99}
	limits := map[string]int64{"listings": 100, "contacts": 100, "emails": 100}

	alerts := EvaluateAlerts(usage, limits)
	require.Len(t, alerts, 3)
	assert.Equal(t, "contacts", alerts[0].Resource)
	assert.Equal(t, "emails", alerts[1].Resource)
	assert.Equal(t, "listings", alerts[2].Resource)

	assert.Equal(t, AlertLevelWarning, alerts[0].Level)
	assert.Equal(t, AlertLevelCritical, alerts[1].Level)
	assert.Equal(t, AlertLevelCritical, alerts[2].Level)
}

func TestEvaluateAlerts_UniqueIDs(t *testing.T) {
	alerts := EvaluateAlerts(
		map[string]int64{"contacts": 90, "listings": 90},
		map[string]int64{"contacts": 100, "listings": 100},
	)
	require.Len(t, alerts, 2)
	assert.NotEmpty(t, alerts[0].ID)
	assert.NotEqual(t, alerts[0].ID, alerts[1].ID)
}
