package main

import (
	"flag"
	"fmt"
	"time"

	"battery-params/internal/analysis"
	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

// Demo:
// - Simulate a year-like window of synthetic meter readings with known
//   ground-truth parameters
// - Run all three estimator strategies over it
// - Show how close each gets to the truth
func main() {
	cycles := flag.Int("cycles", 50, "Number of charge/idle/discharge/idle cycles to simulate")
	parasitic := flag.Float64("parasitic", 0.05, "Ground-truth parasitic load (kW)")
	charging := flag.Float64("charging", 0.92, "Ground-truth charging efficiency")
	discharging := flag.Float64("discharging", 0.93, "Ground-truth discharging efficiency")
	flag.Parse()

	truth := model.Parameters{
		ParasiticLoadKW:       *parasitic,
		ChargingEfficiency:    *charging,
		DischargingEfficiency: *discharging,
	}
	if err := truth.Validate(); err != nil {
		panic(err)
	}

	states := estimate.SimulateStates(truth, *cycles, time.Hour)
	fmt.Printf("Simulated %d states over %d cycles\n\n", len(states), *cycles)
	fmt.Printf("%-12s %-14s %-10s %-12s %-10s\n", "strategy", "parasitic-kW", "charging", "discharging", "roundtrip")
	fmt.Printf("%-12s %-14.4f %-10.4f %-12.4f %-10.4f\n", "truth",
		truth.ParasiticLoadKW, truth.ChargingEfficiency, truth.DischargingEfficiency, truth.RoundTrip())

	for _, o := range analysis.Compare(states, estimate.PolicyDrop) {
		if o.Report == nil {
			fmt.Printf("%-12s failed: %s\n", o.Strategy, o.Error)
			continue
		}
		p := o.Report.Parameters
		fmt.Printf("%-12s %-14.4f %-10.4f %-12.4f %-10.4f\n",
			o.Strategy, p.ParasiticLoadKW, p.ChargingEfficiency, p.DischargingEfficiency, p.RoundTrip())
	}
}
