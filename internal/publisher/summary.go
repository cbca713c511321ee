package publisher

import (
	"strings"
	"time"

	"github.com/jgoulah/ecomonitor/internal/energy"
)

// ApplianceTotal is the cumulative usage of one appliance
type ApplianceTotal struct {
	Appliance string  `json:"appliance"`
	KWh       float64 `json:"kwh"`
	Readings  int     `json:"readings"`
}

// Summary is what gets published: totals per appliance plus the current insights
type Summary struct {
	Totals      []ApplianceTotal `json:"totals"`
	Insights    []string         `json:"insights"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// NewSummary computes totals and insights from the store
func NewSummary(store *energy.Store, threshold float64, now time.Time) Summary {
	s := Summary{
		Insights:    energy.Analyze(store, threshold),
		GeneratedAt: now,
	}
	for _, appliance := range store.Appliances() {
		s.Totals = append(s.Totals, ApplianceTotal{
			Appliance: appliance,
			KWh:       store.Total(appliance),
			Readings:  len(store.Readings(appliance)),
		})
	}
	return s
}

// Slug turns an appliance name into a topic/entity friendly id
func Slug(appliance string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToLower(strings.TrimSpace(appliance)))
}
