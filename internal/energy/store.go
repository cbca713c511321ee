package energy

import "github.com/jgoulah/ecomonitor/pkg/models"

// Store holds readings keyed by appliance name. Readings for an appliance are
// kept in insertion order, and appliance names in the order first seen.
type Store struct {
	order    []string
	readings map[string][]models.Reading
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{readings: make(map[string][]models.Reading)}
}

// Append adds a reading to the end of an appliance's sequence
func (s *Store) Append(appliance string, r models.Reading) {
	if _, ok := s.readings[appliance]; !ok {
		s.order = append(s.order, appliance)
	}
	s.readings[appliance] = append(s.readings[appliance], r)
}

// Set replaces the readings of an appliance, registering it if new
func (s *Store) Set(appliance string, readings []models.Reading) {
	if _, ok := s.readings[appliance]; !ok {
		s.order = append(s.order, appliance)
	}
	s.readings[appliance] = append([]models.Reading(nil), readings...)
}

// Appliances returns the appliance names in store order
func (s *Store) Appliances() []string {
	return append([]string(nil), s.order...)
}

// Readings returns a copy of the readings for an appliance
func (s *Store) Readings(appliance string) []models.Reading {
	return append([]models.Reading(nil), s.readings[appliance]...)
}

// Total returns the summed usage for an appliance
func (s *Store) Total(appliance string) float64 {
	var total float64
	for _, r := range s.readings[appliance] {
		total += r.Usage
	}
	return total
}

// Len returns the number of readings across all appliances
func (s *Store) Len() int {
	n := 0
	for _, rs := range s.readings {
		n += len(rs)
	}
	return n
}

// Empty reports whether the store has no appliances
func (s *Store) Empty() bool {
	return len(s.order) == 0
}
