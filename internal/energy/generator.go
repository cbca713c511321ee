package energy

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/jgoulah/ecomonitor/pkg/models"
)

const (
	// MinUsage and MaxUsage bound a simulated reading in kWh
	MinUsage = 0.5
	MaxUsage = 5.0
)

// Source yields uniform values in [0, 1)
type Source interface {
	Float64() float64
}

// Generator produces synthetic readings for a set of appliances
type Generator struct {
	appliances []string
	source     Source
	now        func() time.Time
}

// NewGenerator creates a generator using a seeded random source and the system clock
func NewGenerator(appliances []string) *Generator {
	return NewGeneratorWithSource(appliances, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), time.Now)
}

// NewGeneratorWithSource creates a generator with an explicit random source and clock
func NewGeneratorWithSource(appliances []string, source Source, now func() time.Time) *Generator {
	if len(appliances) == 0 {
		appliances = models.Appliances
	}
	return &Generator{
		appliances: append([]string(nil), appliances...),
		source:     source,
		now:        now,
	}
}

// Appliances returns the appliances this generator covers
func (g *Generator) Appliances() []string {
	return append([]string(nil), g.appliances...)
}

// Generate appends one reading per appliance to the store, all stamped with the same time
func (g *Generator) Generate(store *Store) {
	timestamp := g.now().Format(models.TimestampLayout)
	for _, appliance := range g.appliances {
		store.Append(appliance, models.Reading{
			Timestamp: timestamp,
			Usage:     g.draw(),
		})
	}
}

// draw returns a value in [MinUsage, MaxUsage] rounded to 2 decimals
func (g *Generator) draw() float64 {
	v := MinUsage + g.source.Float64()*(MaxUsage-MinUsage)
	return math.Round(v*100) / 100
}
