// Package analysis compares microgrid designs against each other.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"energy-sizing/internal/config"
	"energy-sizing/internal/dispatch"
	"energy-sizing/internal/model"

	"go.uber.org/zap"
)

// BaseName labels the unmodified base design in a comparison.
const BaseName = "base"

// Variant is a named overlay on the base design. Only non-zero fields apply.
type Variant struct {
	Name      string
	Microgrid config.MicrogridConfig
}

type Ranked struct {
	Rank       int
	Name       string
	Microgrid  config.MicrogridConfig
	Evaluation *dispatch.Evaluation
}

// Skipped records a variant that could not be evaluated.
type Skipped struct {
	Name string
	Err  error
}

type Comparison struct {
	Ranked  []Ranked
	Skipped []Skipped
	// BaseErr is set when the base design itself failed validation.
	BaseErr error
}

// CheckVariantName rejects names that would collide with the base entry.
func CheckVariantName(name string) error {
	if strings.EqualFold(strings.TrimSpace(name), BaseName) {
		return &model.InputError{Field: "name", Reason: fmt.Sprintf("%q is reserved for the unmodified design", BaseName)}
	}
	return nil
}

// RankByTotalCost evaluates the base design and every variant, then sorts
// ascending by total system cost. Ties keep input order, base first.
// Variants that fail validation, or reuse the base name, are skipped and
// logged.
func RankByTotalCost(engine *dispatch.Engine, base config.MicrogridConfig, variants []Variant, logger *zap.Logger) Comparison {
	if logger == nil {
		logger = zap.NewNop()
	}
	var out Comparison
	skip := func(name string, err error) {
		logger.Warn("skipping variant", zap.String("variant", name), zap.Error(err))
		out.Skipped = append(out.Skipped, Skipped{Name: name, Err: err})
	}

	if ev, err := evaluate(engine, base); err != nil {
		out.BaseErr = err
		skip(BaseName, err)
	} else {
		out.Ranked = append(out.Ranked, Ranked{Name: BaseName, Microgrid: base, Evaluation: ev})
	}

	for _, v := range variants {
		if err := CheckVariantName(v.Name); err != nil {
			skip(v.Name, err)
			continue
		}
		m := config.MergeMicrogrid(base, v.Microgrid)
		ev, err := evaluate(engine, m)
		if err != nil {
			skip(v.Name, err)
			continue
		}
		out.Ranked = append(out.Ranked, Ranked{Name: v.Name, Microgrid: m, Evaluation: ev})
	}

	sort.SliceStable(out.Ranked, func(i, j int) bool {
		return out.Ranked[i].Evaluation.Summary.TotalSystemCost < out.Ranked[j].Evaluation.Summary.TotalSystemCost
	})
	for i := range out.Ranked {
		out.Ranked[i].Rank = i + 1
	}
	return out
}

func evaluate(engine *dispatch.Engine, m config.MicrogridConfig) (*dispatch.Evaluation, error) {
	in, err := m.ToModel()
	if err != nil {
		return nil, err
	}
	return engine.Evaluate(in)
}
