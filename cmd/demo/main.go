package main

import (
	"flag"
	"fmt"
	"os"

	"energy-sizing/internal/config"
	"energy-sizing/internal/dispatch"
)

// Demo:
// - Load a scenario (or the built-in defaults)
// - Run the microgrid dispatch over the representative day
// - Print the first hours to show how load, sources and SOC fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML scenario (optional)")
	n := flag.Int("n", 12, "Number of hours to print")
	outCSV := flag.String("out", "", "Optional path to write the hourly CSV (e.g. results/hourly.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fail(err)
		}
		cfg = *loaded
	}

	in, err := cfg.Microgrid.ToModel()
	if err != nil {
		fail(err)
	}
	ev, err := dispatch.New().Evaluate(in)
	if err != nil {
		fail(err)
	}
	rows := ev.Dispatch.Hourly

	fmt.Printf("Load profile=%s  peak=%.0f kW\n", in.System.Archetype, in.System.PeakLoadKW)
	fmt.Printf("Starting SOC=%.2f kWh\n\n", rows[0].SOCStartKWh)

	for i := 0; i < min(*n, len(rows)); i++ {
		r := rows[i]
		fmt.Printf(
			"%s load=%7.2f  pv=%7.2f  wind=%7.2f  action=%-11s  batt=%+7.2f  diesel=%7.2f  unserved=%6.2f  soc=%.2f→%.2f\n",
			dispatch.HourLabel(r.Hour),
			r.LoadKW,
			r.PVKW,
			r.WindKW,
			string(r.Action),
			r.BatteryDischargeKW-r.BatteryChargeKW,
			r.DieselKW,
			r.UnservedKW,
			r.SOCStartKWh,
			r.SOCEndKWh,
		)
	}

	if *outCSV != "" {
		if err := dispatch.WriteHourlyCSV(*outCSV, rows); err != nil {
			fail(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Final SOC=%.2f kWh  Renewable=%.1f%%  Total cost=$%.0f\n",
		ev.Dispatch.FinalSOCKWh, ev.Summary.RenewableFractionPct, ev.Summary.TotalSystemCost)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
