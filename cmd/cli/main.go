package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"battery-params/internal/analysis"
	"battery-params/internal/config"
	"battery-params/internal/data"
	"battery-params/internal/estimate"
	"battery-params/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "estimate":
		cmdEstimate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli estimate --data states.json --strategy median --out results/ledger.csv")
	fmt.Println("  cli estimate --config config.yaml")
	fmt.Println("  cli compare --data states.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data loads pre-fetched states from JSON; --config fetches from Home Assistant")
	fmt.Println("  - compare runs all three strategies over the same window")
}

func cmdEstimate(args []string) {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to pre-fetched states JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (fetch from Home Assistant)")
	strategy := fs.String("strategy", "", "Estimator strategy: ratio|median|regression (default from config, else median)")
	policy := fs.String("policy", "", "Differencing policy: drop|correct (default from config, else drop)")
	outPath := fs.String("out", "", "Optional output CSV path for the per-delta ledger")
	_ = fs.Parse(args)

	states, cfg := loadStates(*dataPath, *cfgPath)

	name := *strategy
	if name == "" {
		name = estimate.StrategyMedian
		if cfg != nil {
			name = cfg.Estimator.Strategy
		}
	}
	estimator, err := estimate.NewEstimator(name)
	if err != nil {
		fatal(err)
	}

	engine := estimate.New(resolvePolicy(*policy, cfg), estimator)
	engine.Logger = logrus.StandardLogger()
	report, err := engine.Run(states)
	if err != nil {
		fmt.Fprintf(os.Stderr, "estimation failed: %v\n", err)
		os.Exit(1)
	}

	printReport(report)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatal(err)
		}
		if err := estimate.WriteLedgerCSV(*outPath, report.Ledger); err != nil {
			fatal(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(report.Ledger), *outPath)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to pre-fetched states JSON")
	cfgPath := fs.String("config", "", "Path to YAML config (fetch from Home Assistant)")
	policy := fs.String("policy", "", "Differencing policy: drop|correct")
	_ = fs.Parse(args)

	states, cfg := loadStates(*dataPath, *cfgPath)
	outcomes := analysis.Compare(states, resolvePolicy(*policy, cfg))

	fmt.Printf("%-12s %-14s %-10s %-12s %-10s\n", "strategy", "parasitic-kW", "charging", "discharging", "roundtrip")
	for _, o := range outcomes {
		if o.Report == nil {
			fmt.Printf("%-12s failed: %s\n", o.Strategy, o.Error)
			continue
		}
		p := o.Report.Parameters
		fmt.Printf(
			"%-12s %-14.3f %-10.3f %-12.3f %-10.3f\n",
			o.Strategy,
			p.ParasiticLoadKW,
			p.ChargingEfficiency,
			p.DischargingEfficiency,
			p.RoundTrip(),
		)
	}
}

func loadStates(dataPath, cfgPath string) ([]model.State, *config.Config) {
	if dataPath != "" {
		states, err := data.LoadStatesJSON(dataPath)
		if err != nil {
			fatal(err)
		}
		return states, nil
	}
	if cfgPath == "" {
		fmt.Println("either --data or --config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(err)
	}

	client := data.NewHomeAssistantClient(cfg.HomeAssistant.URL, cfg.HomeAssistant.Token)
	now := time.Now().UTC()
	states, err := client.FetchStates(data.HistoryParams{
		EntityID:  cfg.HomeAssistant.EntityID,
		StartTime: now.AddDate(0, 0, -cfg.HomeAssistant.WindowDays),
		EndTime:   now,
	})
	if err != nil {
		fatal(err)
	}
	return states, cfg
}

func resolvePolicy(flagValue string, cfg *config.Config) estimate.Policy {
	raw := flagValue
	if raw == "" {
		raw = string(estimate.PolicyDrop)
		if cfg != nil {
			raw = cfg.Estimator.Policy
		}
	}
	policy := estimate.Policy(raw)
	if err := policy.Validate(); err != nil {
		fatal(err)
	}
	return policy
}

func printReport(report *estimate.Report) {
	d := report.Diagnostics
	p := report.Parameters

	fmt.Printf("%d states / %d deltas (%d pairs skipped), strategy=%s\n",
		d.TotalStates, d.TotalDeltas, d.SkippedPairs, report.Strategy)
	fmt.Printf("%-24s %-10s %s\n", "", "", "source")
	fmt.Printf("%-24s %-10.3f\n", "Round-trip efficiency", report.RoundTrip)
	fmt.Printf("%-24s %-10.3f %d idling samples\n", "Parasitic load (kW)", p.ParasiticLoadKW, d.SamplesPerMode.Idling)
	fmt.Printf("%-24s %-10.3f %d samples\n", "Charging efficiency", p.ChargingEfficiency, d.SamplesPerMode.Charging)
	fmt.Printf("%-24s %-10.3f %d samples\n", "Discharging efficiency", p.DischargingEfficiency, d.SamplesPerMode.Discharging)
	if d.SamplesPerMode.Mixed > 0 {
		fmt.Printf("%-24s %d samples excluded\n", "Mixed intervals", d.SamplesPerMode.Mixed)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
