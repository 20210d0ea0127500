package usage

import (
	"sort"

	"github.com/google/uuid"
)

// AlertLevel classifies how close a resource is to its limit.
type AlertLevel string

const (
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelCritical AlertLevel = "critical"
)

// Thresholds are inclusive lower bounds in percent: a resource exactly at
// the critical threshold is critical, not warning.
const (
	WarningThresholdPct  = 75.0
	CriticalThresholdPct = 90.0
)

// Alert reports one resource at or above a threshold.
type Alert struct {
	ID             string     `json:"id"`
	SubscriptionID string     `json:"subscription_id,omitempty"`
	Resource       string     `json:"resource"`
	Level          AlertLevel `json:"level"`
	Usage          int64      `json:"usage"`
	Limit          int64      `json:"limit"`
	Percent        float64    `json:"percent"`
}

// EvaluateAlerts computes threshold alerts for the given usage against the
// given limits. Resources without a limit entry are skipped; nothing here
// ever divides by a missing or zero limit. Results are ordered by resource
// name for deterministic output.
func EvaluateAlerts(usage, limits map[string]int64) []Alert {
	resources := make([]string, 0, len(usage))
	for resource := range usage {
		resources = append(resources, resource)
	}
	sort.Strings(resources)

	var alerts []Alert
	for _, resource := range resources {
		limit, ok := limits[resource]
		if !ok || limit <= 0 {
			continue
		}
		consumed := usage[resource]
		pct := float64(consumed) / float64(limit) * 100

		var level AlertLevel
		switch {
		case pct >= CriticalThresholdPct:
			level = AlertLevelCritical
		case pct >= WarningThresholdPct:
			level = AlertLevelWarning
		default:
			continue
		}

		alerts = append(alerts, Alert{
			ID:       uuid.NewString(),
			Resource: resource,
			Level:    level,
			Usage:    consumed,
			Limit:    limit,
			Percent:  pct,
		})
	}
	return alerts
}
