package estimate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-params/internal/model"
)

func statesAt(t0 time.Time, rows [][4]float64) []model.State {
	states := make([]model.State, 0, len(rows))
	for _, r := range rows {
		states = append(states, model.State{
			Timestamp:      t0.Add(time.Duration(r[0] * float64(time.Hour))),
			ResidualEnergy: r[1],
			TotalImport:    r[2],
			TotalExport:    r[3],
		})
	}
	return states
}

func TestDifferencerHappyPath(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	states := statesAt(t0, [][4]float64{
		{0, 5.0, 10.0, 3.0},
		{1, 5.9, 11.0, 3.0},
		{2, 5.8, 11.0, 3.0},
	})

	var df Differencer
	deltas := df.Deltas(states)
	require.Len(t, deltas, 2)
	assert.Equal(t, 0, df.Skipped)
	require.Len(t, df.Spans, 2)
	assert.Equal(t, t0, df.Spans[0].Start)
	assert.Equal(t, t0.Add(time.Hour), df.Spans[0].End)

	for _, d := range deltas {
		assert.Greater(t, d.Duration, time.Duration(0))
		assert.GreaterOrEqual(t, d.Imported, 0.0)
		assert.GreaterOrEqual(t, d.Exported, 0.0)
	}
}

// One pair with a decreasing import counter yields one fewer delta than
// len(states)-1 and a skip count of one.
func TestDifferencerSkipsImportRollback(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	states := statesAt(t0, [][4]float64{
		{0, 5.0, 10.0, 3.0},
		{1, 5.9, 11.0, 3.0},
		{2, 5.8, 2.0, 3.0}, // import counter reset
		{3, 5.7, 2.0, 3.0},
	})

	var df Differencer
	deltas := df.Deltas(states)
	assert.Len(t, deltas, len(states)-2)
	assert.Equal(t, 1, df.Skipped)
}

func TestDifferencerSkipsNonIncreasingTimestamps(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	states := statesAt(t0, [][4]float64{
		{0, 5.0, 10.0, 3.0},
		{0, 5.1, 10.5, 3.0}, // same timestamp
		{1, 5.9, 11.0, 3.0},
	})

	var df Differencer
	deltas := df.Deltas(states)
	assert.Len(t, deltas, 1)
	assert.Equal(t, 1, df.Skipped)
}

func TestDifferencerSkipsExportRollback(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	states := statesAt(t0, [][4]float64{
		{0, 5.0, 10.0, 3.0},
		{1, 4.5, 10.0, 1.0}, // export counter reset
	})

	var df Differencer
	assert.Empty(t, df.Deltas(states))
	assert.Equal(t, 1, df.Skipped)
}

// Under the correction policy a negative imported delta is reinterpreted
// as additional export instead of being dropped.
func TestDifferencerCorrectPolicy(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	states := statesAt(t0, [][4]float64{
		{0, 5.0, 10.0, 3.0},
		{1, 4.5, 9.5, 3.2},
	})

	df := Differencer{Policy: PolicyCorrect}
	deltas := df.Deltas(states)
	require.Len(t, deltas, 1)
	assert.Equal(t, 0, df.Skipped)
	assert.InDelta(t, 0.0, deltas[0].Imported, 1e-12)
	assert.InDelta(t, 0.7, deltas[0].Exported, 1e-12) // 0.2 recorded + 0.5 reclassified
}

func TestDifferencerTooFewStates(t *testing.T) {
	var df Differencer
	assert.Nil(t, df.Deltas(nil))
	assert.Nil(t, df.Deltas([]model.State{{Timestamp: time.Now()}}))
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, PolicyDrop.Validate())
	assert.NoError(t, PolicyCorrect.Validate())
	assert.Error(t, Policy("merge").Validate())
}
