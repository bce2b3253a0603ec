package data

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"battery-params/internal/model"
)

// statesFile is the on-disk shape for pre-fetched state history.
type statesFile struct {
	States []model.State `json:"states"`
}

// LoadStatesJSON reads a pre-fetched state history from a JSON file and
// returns it ordered by timestamp.
func LoadStatesJSON(path string) ([]model.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f statesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if len(f.States) == 0 {
		return nil, fmt.Errorf("%s: no states", path)
	}
	sort.Slice(f.States, func(i, j int) bool {
		return f.States[i].Timestamp.Before(f.States[j].Timestamp)
	})
	return f.States, nil
}
