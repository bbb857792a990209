package handlers

import (
	"net/http"
	"time"

	"energy-sizing/internal/api/models"
	"energy-sizing/internal/bess"
	"energy-sizing/internal/cache"
	"energy-sizing/internal/config"
	"energy-sizing/internal/lcoh"
	"energy-sizing/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalculatorHandler serves the closed-form calculators (LCOH, BESS revenue).
type CalculatorHandler struct {
	lcohCache *cache.Cache[*lcoh.Result]
	bessCache *cache.Cache[*bess.Result]
	logger    *zap.Logger
}

// NewCalculatorHandler creates a new calculator handler. A zero ttl disables
// memoization.
func NewCalculatorHandler(ttl time.Duration, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		lcohCache: cache.New[*lcoh.Result](ttl, sweepInterval(ttl)),
		bessCache: cache.New[*bess.Result](ttl, sweepInterval(ttl)),
		logger:    logger.Named("calculators"),
	}
}

// Close stops the cache sweepers.
func (h *CalculatorHandler) Close() {
	h.lcohCache.Close()
	h.bessCache.Close()
}

// LCOH handles POST /api/v1/lcoh. Omitted fields keep their defaults.
func (h *CalculatorHandler) LCOH(c *gin.Context) {
	req := config.Default().LCOH
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	in := req.ToModel()

	r, hit, err := memoize(h.lcohCache, "lcoh", in, func() (*lcoh.Result, error) { return lcoh.Calculate(in) })
	if err != nil {
		respondCalcError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LCOHResponse{
		ID:                   uuid.NewString(),
		Cached:               hit,
		LCOHPerKg:            r.LCOHPerKg,
		RenewableFractionPct: r.RenewableFractionPct,
		H2TonnesPerYr:        r.H2TonnesPerYr,
		RenewableMWhPerYr:    r.RenewableMWhPerYr,
		DemandMWhPerYr:       r.DemandMWhPerYr,
		RenewableUsedMWh:     r.RenewableUsedMWh,
		GridGWhPerYr:         r.GridGWhPerYr,
		CRF:                  r.CRF,
		AnnualizedCapex:      r.AnnualizedCapex,
		GridCost:             r.GridCost,
		OMCost:               r.OMCost,
		TotalAnnualCost:      r.TotalAnnualCost,
	})
}

// BESSRevenue handles POST /api/v1/bess/revenue. Omitted fields keep their defaults.
func (h *CalculatorHandler) BESSRevenue(c *gin.Context) {
	req := config.Default().BESS
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), nil)
		return
	}
	p := req.ToModel()

	r, hit, err := memoize(h.bessCache, "bess", p, func() (*bess.Result, error) { return bess.Calculate(p) })
	if err != nil {
		respondCalcError(c, err)
		return
	}

	streams := make([]models.RevenueStream, 0, len(r.Streams))
	for _, s := range r.Streams {
		streams = append(streams, models.RevenueStream{Service: string(s.Service), Label: s.Label, Revenue: s.Revenue})
	}
	c.JSON(http.StatusOK, models.BESSResponse{
		ID:                uuid.NewString(),
		Cached:            hit,
		TotalRevenue:      r.TotalRevenue,
		ArbitrageRevenue:  r.ArbitrageRevenue,
		MFRRRevenue:       r.MFRRRevenue,
		AFRRRevenue:       r.AFRRRevenue,
		FCRRevenue:        r.FCRRevenue,
		CongestionRevenue: r.CongestionRevenue,
		CapacityRevenue:   r.CapacityRevenue,
		CyclesPerYear:     r.CyclesPerYear,
		UtilizationPct:    r.UtilizationPct,
		Capex:             r.Capex,
		PaybackYears:      r.PaybackYears,
		Streams:           streams,
	})
}

// memoize runs fn through the cache and records calculator metrics.
func memoize[V any](c *cache.Cache[V], kind string, input any, fn func() (V, error)) (V, bool, error) {
	var zero V
	key, err := cache.Key(kind, input)
	if err != nil {
		return zero, false, err
	}
	v, hit, err := c.GetOrCompute(key, func() (V, error) {
		start := time.Now()
		defer func() {
			metrics.CalculationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		}()
		return fn()
	})
	switch {
	case err != nil:
		metrics.CalculationsTotal.WithLabelValues(kind, "invalid").Inc()
	case hit:
		metrics.CalculationsTotal.WithLabelValues(kind, "cached").Inc()
	default:
		metrics.CalculationsTotal.WithLabelValues(kind, "ok").Inc()
	}
	return v, hit, err
}

// sweepInterval purges expired entries a few times per TTL, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if s := ttl / 4; s > time.Minute {
		return s
	}
	return time.Minute
}
