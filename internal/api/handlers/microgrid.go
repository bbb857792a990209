package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"energy-sizing/internal/analysis"
	"energy-sizing/internal/api/models"
	"energy-sizing/internal/cache"
	"energy-sizing/internal/config"
	"energy-sizing/internal/dispatch"
	"energy-sizing/internal/metrics"
	"energy-sizing/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MicrogridHandler handles microgrid simulation requests
type MicrogridHandler struct {
	engine  *dispatch.Engine
	presets *PresetHandler
	cache   *cache.Cache[*dispatch.Evaluation]
	logger  *zap.Logger
}

// NewMicrogridHandler creates a new microgrid handler. A zero ttl disables
// memoization.
func NewMicrogridHandler(presets *PresetHandler, ttl time.Duration, logger *zap.Logger) *MicrogridHandler {
	return &MicrogridHandler{
		engine:  dispatch.New(),
		presets: presets,
		cache:   cache.New[*dispatch.Evaluation](ttl, sweepInterval(ttl)),
		logger:  logger.Named("microgrid"),
	}
}

// Close stops the cache sweeper.
func (h *MicrogridHandler) Close() {
	h.cache.Close()
}

// Simulate handles POST /api/v1/microgrid/simulate
func (h *MicrogridHandler) Simulate(c *gin.Context) {
	var probe models.PresetProbe
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	base, ok := h.loadPreset(c, probe.Preset)
	if !ok {
		return
	}

	// Decode onto the preset so omitted fields keep its values.
	req := models.SimulateRequest{Microgrid: base}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}

	in, err := req.Microgrid.ToModel()
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues("microgrid", "invalid").Inc()
		respondCalcError(c, err)
		return
	}

	ev, cached, err := h.evaluate(in)
	if err != nil {
		respondCalcError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildSimulateResponse(ev, cached, req.Options.IncludeHourly))
}

// Compare handles POST /api/v1/microgrid/compare
func (h *MicrogridHandler) Compare(c *gin.Context) {
	var probe models.PresetProbe
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	base, ok := h.loadPreset(c, probe.Preset)
	if !ok {
		return
	}

	req := models.CompareRequest{Base: base}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}

	variants := make([]analysis.Variant, 0, len(req.Variations))
	for i, v := range req.Variations {
		if err := analysis.CheckVariantName(v.Name); err != nil {
			metrics.CalculationsTotal.WithLabelValues("compare", "invalid").Inc()
			respondCalcError(c, fmt.Errorf("variations[%d]: %w", i, err))
			return
		}
		variants = append(variants, analysis.Variant{Name: v.Name, Microgrid: v.Microgrid})
	}

	start := time.Now()
	cmp := analysis.RankByTotalCost(h.engine, req.Base, variants, h.logger)
	metrics.CalculationDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())

	// Without a valid base every variant inherits the same fault.
	if cmp.BaseErr != nil && len(cmp.Ranked) == 0 {
		metrics.CalculationsTotal.WithLabelValues("compare", "invalid").Inc()
		respondCalcError(c, fmt.Errorf("base: %w", cmp.BaseErr))
		return
	}
	metrics.CalculationsTotal.WithLabelValues("compare", "ok").Inc()

	resp := models.CompareResponse{
		ID:         uuid.NewString(),
		Comparison: make([]models.ComparisonResult, 0, len(cmp.Ranked)),
	}
	for _, r := range cmp.Ranked {
		resp.Comparison = append(resp.Comparison, models.ComparisonResult{
			Rank:    r.Rank,
			Name:    r.Name,
			Summary: buildSummary(r.Evaluation),
			Cost:    buildCost(r.Evaluation.Cost),
		})
	}
	for _, s := range cmp.Skipped {
		resp.Skipped = append(resp.Skipped, models.SkippedVariation{Name: s.Name, Error: s.Err.Error()})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MicrogridHandler) loadPreset(c *gin.Context, id string) (config.MicrogridConfig, bool) {
	base, err := h.presets.Load(id)
	if err != nil {
		if errors.Is(err, ErrUnknownPreset) {
			respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error(), map[string]interface{}{"field": "preset"})
			return base, false
		}
		respondCalcError(c, err)
		return base, false
	}
	return base, true
}

func (h *MicrogridHandler) evaluate(in model.MicrogridInputs) (*dispatch.Evaluation, bool, error) {
	ev, hit, err := memoize(h.cache, "microgrid", in, func() (*dispatch.Evaluation, error) {
		return h.engine.Evaluate(in)
	})
	if err != nil {
		return nil, false, err
	}

	profile := string(in.System.Archetype)
	metrics.UnservedKWhPerYear.WithLabelValues(profile).Set(ev.Summary.UnservedKWhPerYr)
	metrics.RenewableFractionPct.WithLabelValues(profile).Set(ev.Summary.RenewableFractionPct)
	h.logger.Debug("microgrid evaluated",
		zap.String("load_profile", profile),
		zap.Bool("cached", hit),
		zap.Float64("total_system_cost", ev.Summary.TotalSystemCost),
	)
	return ev, hit, nil
}

func buildSimulateResponse(ev *dispatch.Evaluation, cached, includeHourly bool) models.SimulateResponse {
	resp := models.SimulateResponse{
		ID:      uuid.NewString(),
		Status:  "completed",
		Cached:  cached,
		Summary: buildSummary(ev),
		Cost:    buildCost(ev.Cost),
		Daily:   buildTotals(ev.Dispatch.Daily),
		Annual:  buildTotals(ev.Dispatch.Annual),
	}
	if includeHourly {
		resp.Hourly = convertHourly(ev.Dispatch.Hourly)
		resp.Series = buildSeries(ev.Dispatch)
	}
	return resp
}

func buildSummary(ev *dispatch.Evaluation) models.MicrogridSummary {
	s := ev.Summary
	return models.MicrogridSummary{
		TotalSystemCost:         s.TotalSystemCost,
		RenewableFractionPct:    s.RenewableFractionPct,
		DieselRuntimeHoursPerYr: s.DieselRuntimeHoursPerYr,
		BatteryCyclesPerYr:      s.BatteryCyclesPerYr,
		UnservedKWhPerYr:        s.UnservedKWhPerYr,
		CurtailedKWhPerYr:       s.CurtailedKWhPerYr,
		FinalSOCKWh:             ev.Dispatch.FinalSOCKWh,
	}
}

func buildTotals(t dispatch.Totals) models.EnergyTotals {
	return models.EnergyTotals{
		LoadKWh:            t.LoadKWh,
		RenewableKWh:       t.RenewableKWh,
		DieselKWh:          t.DieselKWh,
		UnservedKWh:        t.UnservedKWh,
		CurtailedKWh:       t.CurtailedKWh,
		DieselRuntimeHours: t.DieselRuntimeHours,
		BatteryCycles:      t.BatteryCycles,
	}
}

func buildCost(b dispatch.CostBreakdown) models.CostBreakdown {
	return models.CostBreakdown{
		PVCapex:         b.PVCapex,
		WindCapex:       b.WindCapex,
		BatteryCapex:    b.BatteryCapex,
		DieselCapex:     b.DieselCapex,
		TotalCapex:      b.TotalCapex,
		PVOM:            b.PVOM,
		WindOM:          b.WindOM,
		BatteryOM:       b.BatteryOM,
		DieselFuel:      b.DieselFuel,
		AnnualOpex:      b.AnnualOpex,
		AnnualFuelL:     b.AnnualFuelL,
		PVFactor:        b.PVFactor,
		OpexNPV:         b.OpexNPV,
		TotalSystemCost: b.TotalSystemCost,
	}
}

func convertHourly(rows []dispatch.HourRow) []models.HourRow {
	out := make([]models.HourRow, len(rows))
	for i, r := range rows {
		out[i] = models.HourRow{
			Hour:               r.Hour,
			Action:             string(r.Action),
			LoadKW:             r.LoadKW,
			PVKW:               r.PVKW,
			WindKW:             r.WindKW,
			DieselKW:           r.DieselKW,
			BatteryChargeKW:    r.BatteryChargeKW,
			BatteryDischargeKW: r.BatteryDischargeKW,
			BatteryWithdrawnKW: r.BatteryWithdrawnKW,
			UnservedKW:         r.UnservedKW,
			CurtailedKW:        r.CurtailedKW,
			SOCStartKWh:        r.SOCStartKWh,
			SOCEndKWh:          r.SOCEndKWh,
		}
	}
	return out
}

func buildSeries(r *dispatch.Result) *models.HourlySeries {
	s := r.Series()
	labels := make([]string, model.HoursPerDay)
	for h := range labels {
		labels[h] = dispatch.HourLabel(h)
	}
	return &models.HourlySeries{
		Labels:           labels,
		Load:             append([]float64(nil), s.Load[:]...),
		PV:               append([]float64(nil), s.PV[:]...),
		Wind:             append([]float64(nil), s.Wind[:]...),
		Diesel:           append([]float64(nil), s.Diesel[:]...),
		BatteryCharge:    append([]float64(nil), s.BatteryCharge[:]...),
		BatteryDischarge: append([]float64(nil), s.BatteryDischarge[:]...),
	}
}
