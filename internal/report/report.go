// Package report renders calculator results as plain text for the CLI.
package report

import (
	"io"
	"math"

	"energy-sizing/internal/analysis"
	"energy-sizing/internal/bess"
	"energy-sizing/internal/dispatch"
	"energy-sizing/internal/lcoh"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// paybackCeilingYears is where payback stops being shown as a number.
const paybackCeilingYears = 100

type Printer struct {
	p *message.Printer
}

// New returns a printer using English digit grouping ("1,234,567").
func New() *Printer {
	return &Printer{p: message.NewPrinter(language.English)}
}

// Money renders a whole-unit amount with thousands separators.
func (pr *Printer) Money(symbol string, v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return pr.p.Sprintf("-%s%d", symbol, -n)
	}
	return pr.p.Sprintf("%s%d", symbol, n)
}

// Count renders a rounded quantity with thousands separators.
func (pr *Printer) Count(v float64) string {
	return pr.p.Sprintf("%d", int64(math.Round(v)))
}

func (pr *Printer) Payback(years float64) string {
	if years <= 0 {
		return "n/a"
	}
	if years >= paybackCeilingYears {
		return "> 100 years"
	}
	return pr.p.Sprintf("%.1f years", years)
}

func (pr *Printer) Microgrid(w io.Writer, ev *dispatch.Evaluation) {
	s := ev.Summary
	c := ev.Cost
	pr.p.Fprintf(w, "Total system cost:     %s\n", pr.Money("$", s.TotalSystemCost))
	pr.p.Fprintf(w, "  CAPEX:               %s\n", pr.Money("$", c.TotalCapex))
	pr.p.Fprintf(w, "  OPEX (NPV):          %s\n", pr.Money("$", c.OpexNPV))
	pr.p.Fprintf(w, "Renewable fraction:    %.1f%%\n", s.RenewableFractionPct)
	pr.p.Fprintf(w, "Diesel runtime:        %s h/yr\n", pr.Count(s.DieselRuntimeHoursPerYr))
	pr.p.Fprintf(w, "Diesel fuel:           %s L/yr\n", pr.Count(c.AnnualFuelL))
	pr.p.Fprintf(w, "Battery cycles:        %s /yr\n", pr.Count(s.BatteryCyclesPerYr))
	pr.p.Fprintf(w, "Unserved load:         %s kWh/yr\n", pr.Count(s.UnservedKWhPerYr))
	pr.p.Fprintf(w, "Curtailed renewables:  %s kWh/yr\n", pr.Count(s.CurtailedKWhPerYr))
}

func (pr *Printer) LCOH(w io.Writer, r *lcoh.Result) {
	pr.p.Fprintf(w, "LCOH:                  $%.2f/kg\n", r.LCOHPerKg)
	pr.p.Fprintf(w, "Renewable fraction:    %.1f%%\n", r.RenewableFractionPct)
	pr.p.Fprintf(w, "H2 production:         %s tonnes/yr\n", pr.Count(r.H2TonnesPerYr))
	pr.p.Fprintf(w, "Grid dependence:       %.1f GWh/yr\n", r.GridGWhPerYr)
	pr.p.Fprintf(w, "Annualized CAPEX:      %s\n", pr.Money("$", r.AnnualizedCapex))
	pr.p.Fprintf(w, "Annual OPEX:           %s\n", pr.Money("$", r.AnnualOpex))
}

func (pr *Printer) BESS(w io.Writer, r *bess.Result) {
	pr.p.Fprintf(w, "Total revenue:         %s/yr\n", pr.Money("€", r.TotalRevenue))
	for _, s := range r.Streams {
		pr.p.Fprintf(w, "  %-20s %s\n", s.Label+":", pr.Money("€", s.Revenue))
	}
	if r.ArbitrageRevenue < 0 {
		pr.p.Fprintf(w, "  %-20s %s\n", bess.ServiceArbitrage.Label()+":", pr.Money("€", r.ArbitrageRevenue))
	}
	pr.p.Fprintf(w, "Utilization:           %.1f%%\n", r.UtilizationPct)
	pr.p.Fprintf(w, "Cycles:                %s /yr\n", pr.Count(r.CyclesPerYear))
	pr.p.Fprintf(w, "Simple payback:        %s\n", pr.Payback(r.PaybackYears))
}

func (pr *Printer) Comparison(w io.Writer, cmp analysis.Comparison) {
	pr.p.Fprintf(w, "%-4s %-20s %16s %10s %14s %14s\n", "rank", "name", "total cost", "renew %", "diesel h/yr", "unserved kWh")
	for _, r := range cmp.Ranked {
		s := r.Evaluation.Summary
		pr.p.Fprintf(w, "%-4d %-20s %16s %10.1f %14s %14s\n",
			r.Rank,
			r.Name,
			pr.Money("$", s.TotalSystemCost),
			s.RenewableFractionPct,
			pr.Count(s.DieselRuntimeHoursPerYr),
			pr.Count(s.UnservedKWhPerYr),
		)
	}
	for _, s := range cmp.Skipped {
		pr.p.Fprintf(w, "skipped %s: %v\n", s.Name, s.Err)
	}
}
