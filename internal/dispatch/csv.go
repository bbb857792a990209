package dispatch

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteHourlyCSV(path string, rows []HourRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeHourlyCSV(f, rows)
}

// EncodeHourlyCSV writes the hourly ledger with a header row.
func EncodeHourlyCSV(out io.Writer, rows []HourRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"hour",
		"action",
		"load_kw",
		"pv_kw",
		"wind_kw",
		"diesel_kw",
		"battery_charge_kw",
		"battery_discharge_kw",
		"battery_withdrawn_kw",
		"unserved_kw",
		"curtailed_kw",
		"soc_start_kwh",
		"soc_end_kwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			HourLabel(r.Hour),
			string(r.Action),
			fmtFloat(r.LoadKW),
			fmtFloat(r.PVKW),
			fmtFloat(r.WindKW),
			fmtFloat(r.DieselKW),
			fmtFloat(r.BatteryChargeKW),
			fmtFloat(r.BatteryDischargeKW),
			fmtFloat(r.BatteryWithdrawnKW),
			fmtFloat(r.UnservedKW),
			fmtFloat(r.CurtailedKW),
			fmtFloat(r.SOCStartKWh),
			fmtFloat(r.SOCEndKWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// HourLabel renders the chart tick label, e.g. "07:00".
func HourLabel(h int) string {
	s := strconv.Itoa(h)
	if h < 10 {
		s = "0" + s
	}
	return s + ":00"
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
