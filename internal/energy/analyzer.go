package energy

import "fmt"

// DefaultThreshold is the cumulative kWh above which an appliance is flagged
const DefaultThreshold = 10.0

// AllEfficientInsight is reported when no appliance exceeds the threshold
const AllEfficientInsight = "All appliances are operating efficiently."

// HighUsageInsight returns the advisory for an appliance over the threshold
func HighUsageInsight(appliance string) string {
	return fmt.Sprintf("%s is consuming a lot of energy. Consider using it more efficiently.", appliance)
}

// Analyze derives insights from the cumulative totals in store. Appliances are
// considered in store order; a total must be strictly above threshold to be flagged.
func Analyze(store *Store, threshold float64) []string {
	var insights []string
	for _, appliance := range store.Appliances() {
		if store.Total(appliance) > threshold {
			insights = append(insights, HighUsageInsight(appliance))
		}
	}
	if len(insights) == 0 {
		insights = append(insights, AllEfficientInsight)
	}
	return insights
}
