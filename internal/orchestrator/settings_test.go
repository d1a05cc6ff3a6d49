package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/outliers"
)

func TestParseCalcSettings_Defaults(t *testing.T) {
	parsed, err := parseCalcSettings(nil, config.EngineConfig{})
	assert.NoError(t, err)

	assert.Equal(t, limits.ModelI, parsed.Model)
	assert.True(t, parsed.Options.OutliersAffectLimits)
	assert.False(t, parsed.Options.TrendLine)
	assert.Equal(t, 1.0, parsed.UnitMultiplier)
	assert.Nil(t, parsed.TruncateLower)
	assert.Nil(t, parsed.TruncateUpper)
	assert.Nil(t, parsed.AltTargets)
}

func TestParseCalcSettings_EngineDefaultModel(t *testing.T) {
	parsed, err := parseCalcSettings(nil, config.EngineConfig{DefaultChartModel: "p"})
	assert.NoError(t, err)
	assert.Equal(t, limits.ModelP, parsed.Model)
}

func TestParseCalcSettings_CategoryOverridesEngine(t *testing.T) {
	settings := models.Settings{
		"calculation": {
			"chart_model":            "g",
			"outliers_affect_limits": false,
			"trend_line":             true,
			"unit_multiplier":        1000,
			"truncate_lower":         0,
			"spec_ul99":              42.5,
		},
	}

	parsed, err := parseCalcSettings(settings, config.EngineConfig{DefaultChartModel: "i"})
	assert.NoError(t, err)

	assert.Equal(t, limits.ModelG, parsed.Model)
	assert.False(t, parsed.Options.OutliersAffectLimits)
	assert.True(t, parsed.Options.TrendLine)
	assert.Equal(t, 1000.0, parsed.UnitMultiplier)
	if assert.NotNil(t, parsed.TruncateLower) {
		assert.Equal(t, 0.0, *parsed.TruncateLower)
	}
	if assert.NotNil(t, parsed.SpecUpper99) {
		assert.Equal(t, 42.5, *parsed.SpecUpper99)
	}
}

func TestParseCalcSettings_ZeroMultiplierIgnored(t *testing.T) {
	settings := models.Settings{
		"calculation": {"unit_multiplier": 0},
	}

	parsed, err := parseCalcSettings(settings, config.EngineConfig{})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, parsed.UnitMultiplier)
}

func TestParseCalcSettings_UnknownModel(t *testing.T) {
	settings := models.Settings{
		"calculation": {"chart_model": "bogus"},
	}

	_, err := parseCalcSettings(settings, config.EngineConfig{})
	assert.Error(t, err)
	assert.IsType(t, &models.DomainError{}, err)
}

func TestParseOutlierSettings_Defaults(t *testing.T) {
	parsed := parseOutlierSettings(nil, config.EngineConfig{})

	assert.True(t, parsed.Astronomical)
	assert.True(t, parsed.Shift)
	assert.True(t, parsed.Trend)
	assert.True(t, parsed.TwoInThree)
	assert.Equal(t, 8, parsed.Params.ShiftN)
	assert.Equal(t, 7, parsed.Params.TrendN)
	assert.False(t, parsed.Params.TwoInThreeBackfill)
	assert.Equal(t, outliers.FlagBoth, parsed.Policy)
}

func TestParseOutlierSettings_EngineWindows(t *testing.T) {
	parsed := parseOutlierSettings(nil, config.EngineConfig{
		ShiftN:               6,
		TrendN:               5,
		ImprovementDirection: "decrease",
	})

	assert.Equal(t, 6, parsed.Params.ShiftN)
	assert.Equal(t, 5, parsed.Params.TrendN)
	assert.Equal(t, outliers.DirectionDecrease, parsed.Improvement)
}

func TestParseOutlierSettings_CategoryOverrides(t *testing.T) {
	settings := models.Settings{
		"outliers": {
			"shift":                 false,
			"shift_n":               4,
			"trend_n":               9,
			"two_in_three_backfill": true,
			"flag_policy":           "deterioration",
			"improvement_direction": "increase",
		},
	}

	parsed := parseOutlierSettings(settings, config.EngineConfig{ShiftN: 8, TrendN: 7})

	assert.False(t, parsed.Shift)
	assert.True(t, parsed.Astronomical)
	assert.Equal(t, 4, parsed.Params.ShiftN)
	assert.Equal(t, 9, parsed.Params.TrendN)
	assert.True(t, parsed.Params.TwoInThreeBackfill)
	assert.Equal(t, outliers.FlagDeterioration, parsed.Policy)
	assert.Equal(t, outliers.DirectionIncrease, parsed.Improvement)
}

func TestParseOutlierSettings_WindowFloorIgnored(t *testing.T) {
	// A window below 2 cannot form a run; the configured default stays.
	settings := models.Settings{
		"outliers": {"shift_n": 1},
	}

	parsed := parseOutlierSettings(settings, config.EngineConfig{ShiftN: 8})
	assert.Equal(t, 8, parsed.Params.ShiftN)
}
