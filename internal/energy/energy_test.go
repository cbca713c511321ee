package energy

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/ecomonitor/pkg/models"
)

// seqSource replays fixed values, cycling when exhausted
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
}

func TestGenerator_AppendsOneReadingPerAppliance(t *testing.T) {
	g := NewGeneratorWithSource(nil, &seqSource{values: []float64{0, 0.5, 0.999999, 0.25, 0.1}}, fixedClock)
	store := NewStore()

	g.Generate(store)

	assert.Equal(t, models.Appliances, store.Appliances())
	assert.Equal(t, 5, store.Len())

	want := map[string]float64{
		"Fridge":          0.5,
		"Washing Machine": 2.75,
		"Oven":            5.0,
		"Computer":        1.63,
		"Air Conditioner": 0.95,
	}
	for appliance, usage := range want {
		readings := store.Readings(appliance)
		require.Len(t, readings, 1, appliance)
		assert.InDelta(t, usage, readings[0].Usage, 1e-9, appliance)
		assert.Equal(t, "2024-03-05 14:30:00", readings[0].Timestamp)
	}
}

func TestGenerator_UsageBoundsAndRounding(t *testing.T) {
	g := NewGeneratorWithSource([]string{"Oven"}, rand.New(rand.NewPCG(1, 2)), time.Now)
	store := NewStore()

	for i := 0; i < 1000; i++ {
		g.Generate(store)
	}

	readings := store.Readings("Oven")
	require.Len(t, readings, 1000)
	for _, r := range readings {
		assert.GreaterOrEqual(t, r.Usage, MinUsage)
		assert.LessOrEqual(t, r.Usage, MaxUsage)
		cents := r.Usage * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-6, "usage %v not rounded to 2 decimals", r.Usage)
	}
}

func TestGenerator_AppendsInChronologicalOrder(t *testing.T) {
	clock := fixedClock()
	g := NewGeneratorWithSource([]string{"Fridge"}, &seqSource{values: []float64{0.3}}, func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	store := NewStore()

	g.Generate(store)
	g.Generate(store)
	g.Generate(store)

	readings := store.Readings("Fridge")
	require.Len(t, readings, 3)
	assert.Equal(t, "2024-03-05 14:31:00", readings[0].Timestamp)
	assert.Equal(t, "2024-03-05 14:32:00", readings[1].Timestamp)
	assert.Equal(t, "2024-03-05 14:33:00", readings[2].Timestamp)
}

func TestStore(t *testing.T) {
	s := NewStore()
	assert.True(t, s.Empty())
	assert.Equal(t, 0.0, s.Total("Oven"))

	s.Append("Oven", models.Reading{Timestamp: "t1", Usage: 1.25})
	s.Append("Fridge", models.Reading{Timestamp: "t1", Usage: 2})
	s.Append("Oven", models.Reading{Timestamp: "t2", Usage: 3.5})

	assert.False(t, s.Empty())
	assert.Equal(t, []string{"Oven", "Fridge"}, s.Appliances())
	assert.InDelta(t, 4.75, s.Total("Oven"), 1e-9)
	assert.Equal(t, 3, s.Len())

	// returned slices are copies
	rs := s.Readings("Oven")
	rs[0].Usage = 100
	assert.InDelta(t, 1.25, s.Readings("Oven")[0].Usage, 1e-9)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Store)
		want  []string
	}{
		{
			name:  "empty store",
			build: func(*Store) {},
			want:  []string{AllEfficientInsight},
		},
		{
			name: "one appliance over threshold",
			build: func(s *Store) {
				s.Append("Fridge", models.Reading{Timestamp: "t", Usage: 4})
				s.Append("Oven", models.Reading{Timestamp: "t", Usage: 5})
				s.Append("Oven", models.Reading{Timestamp: "t", Usage: 4.3})
				s.Append("Oven", models.Reading{Timestamp: "t", Usage: 3})
				s.Append("Computer", models.Reading{Timestamp: "t", Usage: 9.99})
			},
			want: []string{HighUsageInsight("Oven")},
		},
		{
			name: "all at or under threshold",
			build: func(s *Store) {
				s.Append("Fridge", models.Reading{Timestamp: "t", Usage: 5})
				s.Append("Fridge", models.Reading{Timestamp: "t", Usage: 5})
				s.Append("Oven", models.Reading{Timestamp: "t", Usage: 2})
			},
			want: []string{AllEfficientInsight},
		},
		{
			name: "several over threshold in store order",
			build: func(s *Store) {
				s.Append("Air Conditioner", models.Reading{Timestamp: "t", Usage: 11})
				s.Append("Fridge", models.Reading{Timestamp: "t", Usage: 1})
				s.Append("Computer", models.Reading{Timestamp: "t", Usage: 10.01})
			},
			want: []string{HighUsageInsight("Air Conditioner"), HighUsageInsight("Computer")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			tt.build(s)
			assert.Equal(t, tt.want, Analyze(s, DefaultThreshold))
		})
	}
}

func TestAnalyze_IsPure(t *testing.T) {
	s := NewStore()
	s.Append("Oven", models.Reading{Timestamp: "t", Usage: 12.3})

	first := Analyze(s, DefaultThreshold)
	second := Analyze(s, DefaultThreshold)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Oven is consuming a lot of energy. Consider using it more efficiently."}, first)
}
