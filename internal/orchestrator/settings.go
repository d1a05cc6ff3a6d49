package orchestrator

import (
	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/outliers"
	"github.com/spcflow/spcflow/internal/utils"
)

// calcSettings are the typed options read out of the "calculation" settings
// category, with engine-config defaults filled in for absent keys.
type calcSettings struct {
	Model   limits.ChartModel
	Options limits.Options

	// UnitMultiplier rescales every value-scale field after calculation.
	UnitMultiplier float64

	// TruncateLower/TruncateUpper clamp the bound arrays to a physical range,
	// e.g. a proportion chart floor of zero. Nil means no clamp.
	TruncateLower *float64
	TruncateUpper *float64

	// AltTargets is a per-point alternate-target overlay, carried through
	// untouched. SpecLower99/SpecUpper99 are broadcast specification limits.
	AltTargets  []float64
	SpecLower99 *float64
	SpecUpper99 *float64
}

// outlierSettings are the typed options read out of the "outliers" settings
// category.
type outlierSettings struct {
	Astronomical bool
	Shift        bool
	Trend        bool
	TwoInThree   bool

	Params outliers.Params

	Improvement outliers.Direction
	Policy      outliers.FlagPolicy
}

func parseCalcSettings(settings models.Settings, cfg config.EngineConfig) (calcSettings, error) {
	category := settings.Category("calculation")

	selector := cfg.DefaultChartModel
	if selector == "" {
		selector = "i"
	}
	if v, ok := utils.ToString(category["chart_model"]); ok {
		selector = v
	}
	model, err := limits.ParseChartModel(selector)
	if err != nil {
		return calcSettings{}, err
	}

	parsed := calcSettings{
		Model: model,
		Options: limits.Options{
			OutliersAffectLimits: boolOr(category, "outliers_affect_limits", true),
			TrendLine:            boolOr(category, "trend_line", false),
		},
		UnitMultiplier: 1,
	}

	if v, ok := utils.ToFloat64(category["unit_multiplier"]); ok && v != 0 {
		parsed.UnitMultiplier = v
	}
	if v, ok := utils.ToFloat64(category["truncate_lower"]); ok {
		parsed.TruncateLower = &v
	}
	if v, ok := utils.ToFloat64(category["truncate_upper"]); ok {
		parsed.TruncateUpper = &v
	}
	if v, ok := utils.ToFloatSlice(category["alt_targets"]); ok {
		parsed.AltTargets = v
	}
	if v, ok := utils.ToFloat64(category["spec_ll99"]); ok {
		parsed.SpecLower99 = &v
	}
	if v, ok := utils.ToFloat64(category["spec_ul99"]); ok {
		parsed.SpecUpper99 = &v
	}

	return parsed, nil
}

func parseOutlierSettings(settings models.Settings, cfg config.EngineConfig) outlierSettings {
	category := settings.Category("outliers")

	params := outliers.DefaultParams()
	if cfg.ShiftN > 0 {
		params.ShiftN = cfg.ShiftN
	}
	if cfg.TrendN > 0 {
		params.TrendN = cfg.TrendN
	}
	if v, ok := utils.ToInt(category["shift_n"]); ok && v >= 2 {
		params.ShiftN = v
	}
	if v, ok := utils.ToInt(category["trend_n"]); ok && v >= 2 {
		params.TrendN = v
	}
	params.TwoInThreeBackfill = boolOr(category, "two_in_three_backfill", false)

	improvement := outliers.Direction(cfg.ImprovementDirection)
	if v, ok := utils.ToString(category["improvement_direction"]); ok {
		improvement = outliers.Direction(v)
	}
	policy := outliers.FlagBoth
	if v, ok := utils.ToString(category["flag_policy"]); ok {
		policy = outliers.FlagPolicy(v)
	}

	return outlierSettings{
		Astronomical: boolOr(category, "astronomical", true),
		Shift:        boolOr(category, "shift", true),
		Trend:        boolOr(category, "trend", true),
		TwoInThree:   boolOr(category, "two_in_three", true),
		Params:       params,
		Improvement:  improvement,
		Policy:       policy,
	}
}

func boolOr(category map[string]interface{}, key string, fallback bool) bool {
	if v, ok := utils.ToBool(category[key]); ok {
		return v
	}
	return fallback
}
