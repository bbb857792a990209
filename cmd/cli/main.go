package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"energy-sizing/internal/analysis"
	"energy-sizing/internal/bess"
	"energy-sizing/internal/config"
	"energy-sizing/internal/dispatch"
	"energy-sizing/internal/lcoh"
	"energy-sizing/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cli",
		Short: "Size microgrids, hydrogen electrolyzers and grid batteries",
		Long: `notes:
  - microgrid simulates a representative day hour by hour and annualizes it
  - the hourly CSV has action=CHARGING/IDLE/DISCHARGING/DIESEL per hour
  - without --config the built-in defaults are used`,
		SilenceUsage: true,
	}
	root.AddCommand(newMicrogridCmd(), newLCOHCmd(), newBESSCmd(), newCompareCmd())
	return root
}

func newMicrogridCmd() *cobra.Command {
	var cfgPath, outPath string
	cmd := &cobra.Command{
		Use:     "microgrid",
		Short:   "Simulate a PV/wind/battery/diesel microgrid",
		Example: "  cli microgrid --config examples/config.yaml --out results/hourly.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			in, err := cfg.Microgrid.ToModel()
			if err != nil {
				return err
			}
			ev, err := dispatch.New().Evaluate(in)
			if err != nil {
				return err
			}

			if outPath != "" {
				// ensure output dir exists
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				if err := dispatch.WriteHourlyCSV(outPath, ev.Dispatch.Hourly); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(ev.Dispatch.Hourly), outPath)
			}
			report.New().Microgrid(cmd.OutOrStdout(), ev)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML scenario")
	cmd.Flags().StringVar(&outPath, "out", "", "Optional: write the hourly ledger to this CSV path")
	return cmd
}

func newLCOHCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "lcoh",
		Short: "Levelized cost of hydrogen",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			r, err := lcoh.Calculate(cfg.LCOH.ToModel())
			if err != nil {
				return err
			}
			report.New().LCOH(cmd.OutOrStdout(), r)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML scenario")
	return cmd
}

func newBESSCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "bess",
		Short: "Yearly revenue stack of a grid battery",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			r, err := bess.Calculate(cfg.BESS.ToModel())
			if err != nil {
				return err
			}
			report.New().BESS(cmd.OutOrStdout(), r)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML scenario")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		cfgPath  string
		variants []string
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Rank microgrid variants by total system cost",
		Example: "  cli compare --config examples/config.yaml --variant examples/variants/more_pv.yaml --variant examples/variants/bigger_battery.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(variants) == 0 {
				return fmt.Errorf("at least one --variant is required")
			}
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			vs := make([]analysis.Variant, 0, len(variants))
			for _, p := range variants {
				m, err := config.LoadVariantFile(p)
				if err != nil {
					return err
				}
				name := m.Name
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
				}
				vs = append(vs, analysis.Variant{Name: name, Microgrid: m})
			}
			cmp := analysis.RankByTotalCost(dispatch.New(), cfg.Microgrid, vs, nil)
			report.New().Comparison(cmd.OutOrStdout(), cmp)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to the base YAML scenario")
	cmd.Flags().StringArrayVar(&variants, "variant", nil, "YAML file whose microgrid section overlays the base (repeatable)")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		c := config.Default()
		return &c, nil
	}
	return config.Load(path)
}
