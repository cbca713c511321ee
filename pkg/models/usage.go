package models

import "time"

// TimestampLayout is the format readings are stamped with
const TimestampLayout = "2006-01-02 15:04:05"

// Reading represents a single timestamped usage observation for an appliance
type Reading struct {
	Timestamp string  `json:"timestamp"`
	Usage     float64 `json:"usage"` // kWh
}

// Time parses the reading timestamp in local time
func (r Reading) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, r.Timestamp, time.Local)
}

// Appliances is the fixed set of tracked energy consumers, in display order
var Appliances = []string{
	"Fridge",
	"Washing Machine",
	"Oven",
	"Computer",
	"Air Conditioner",
}
