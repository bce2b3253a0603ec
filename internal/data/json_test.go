package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "states.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStatesJSON(t *testing.T) {
	path := writeStatesFile(t, `{
		"states": [
			{"timestamp": "2025-06-01T01:00:00Z", "residual_energy": 5.9, "total_import": 11.0, "total_export": 3.0},
			{"timestamp": "2025-06-01T00:00:00Z", "residual_energy": 5.0, "total_import": 10.0, "total_export": 3.0}
		]
	}`)

	states, err := LoadStatesJSON(path)
	require.NoError(t, err)
	require.Len(t, states, 2)

	// Out-of-order input comes back sorted by timestamp.
	assert.True(t, states[0].Timestamp.Before(states[1].Timestamp))
	assert.InDelta(t, 5.0, states[0].ResidualEnergy, 1e-12)
	assert.InDelta(t, 11.0, states[1].TotalImport, 1e-12)
}

func TestLoadStatesJSONEmpty(t *testing.T) {
	path := writeStatesFile(t, `{"states": []}`)
	_, err := LoadStatesJSON(path)
	assert.ErrorContains(t, err, "no states")
}

func TestLoadStatesJSONMissingFile(t *testing.T) {
	_, err := LoadStatesJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadStatesJSONMalformed(t *testing.T) {
	path := writeStatesFile(t, `{"states": [`)
	_, err := LoadStatesJSON(path)
	assert.Error(t, err)
}
