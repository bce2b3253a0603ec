package estimate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"battery-params/internal/model"
)

func TestAggregate(t *testing.T) {
	deltas := []model.Delta{
		{Duration: time.Hour, Charge: 1.0, Imported: 1.2},
		{Duration: time.Hour, Charge: -0.05},
		{Duration: time.Hour, Charge: 0.9, Imported: 1.1},
		{Duration: 30 * time.Minute, Charge: -0.9, Exported: 0.8},
	}
	modes := ClassifyAll(deltas)

	buckets := Aggregate(deltas, modes)

	charging := buckets[model.ModeCharging]
	assert.Equal(t, 2, charging.Count)
	assert.InDelta(t, 1.9, charging.Sum.Charge, 1e-12)
	assert.InDelta(t, 2.3, charging.Sum.Imported, 1e-12)
	assert.Equal(t, 2*time.Hour, charging.Sum.Duration)

	assert.Equal(t, 1, buckets[model.ModeIdling].Count)
	assert.Equal(t, 1, buckets[model.ModeDischarging].Count)

	mixed := buckets[model.ModeMixed]
	assert.Equal(t, 0, mixed.Count)
	assert.Equal(t, model.Delta{}, mixed.Sum)
}

// Aggregation is order-independent: any permutation of the input folds to
// the same buckets.
func TestAggregateOrderIndependent(t *testing.T) {
	deltas := []model.Delta{
		{Duration: time.Hour, Charge: 1.0, Imported: 1.2},
		{Duration: 2 * time.Hour, Charge: 0.5, Imported: 0.7},
		{Duration: time.Hour, Charge: -0.05},
	}
	reversed := []model.Delta{deltas[2], deltas[1], deltas[0]}

	assert.Equal(t,
		Aggregate(deltas, ClassifyAll(deltas)),
		Aggregate(reversed, ClassifyAll(reversed)),
	)
}
