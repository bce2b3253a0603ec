package model

// WorkingMode is the operating mode of the battery over one delta.
// Keep these values stable; they are intended for CSV and JSON output.
type WorkingMode string

const (
	ModeCharging    WorkingMode = "CHARGING"
	ModeDischarging WorkingMode = "DISCHARGING"
	ModeIdling      WorkingMode = "IDLING"

	// ModeMixed marks a delta where both import and export occurred in the
	// same sampling window. Such deltas are unreliable for efficiency
	// inference and are excluded from estimation.
	ModeMixed WorkingMode = "MIXED"
)

// Modes lists all working modes in a stable order.
func Modes() []WorkingMode {
	return []WorkingMode{ModeCharging, ModeDischarging, ModeIdling, ModeMixed}
}

// ModeCounts holds the number of deltas classified into each mode.
type ModeCounts struct {
	Charging    int `json:"charging"`
	Discharging int `json:"discharging"`
	Idling      int `json:"idling"`
	Mixed       int `json:"mixed"`
}

func (c *ModeCounts) Inc(mode WorkingMode) {
	switch mode {
	case ModeCharging:
		c.Charging++
	case ModeDischarging:
		c.Discharging++
	case ModeIdling:
		c.Idling++
	case ModeMixed:
		c.Mixed++
	}
}

// Of returns the count for a mode.
func (c ModeCounts) Of(mode WorkingMode) int {
	switch mode {
	case ModeCharging:
		return c.Charging
	case ModeDischarging:
		return c.Discharging
	case ModeIdling:
		return c.Idling
	case ModeMixed:
		return c.Mixed
	default:
		return 0
	}
}
