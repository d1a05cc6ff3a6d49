// Package outliers implements the four independent signal-detection rules
// over a value series aligned to a limit result. Every rule is stateless and
// runs in a single O(n) pass using a running sum over its sliding window.
package outliers

import (
	"github.com/spcflow/spcflow/internal/models"
)

// Rule is the closed set of detection rules.
type Rule int

const (
	RuleAstronomical Rule = iota
	RuleShift
	RuleTrend
	RuleTwoInThree
)

var ruleNames = map[Rule]string{
	RuleAstronomical: "astronomical",
	RuleShift:        "shift",
	RuleTrend:        "trend",
	RuleTwoInThree:   "two_in_three",
}

// String returns the canonical selector name of the rule.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRule resolves a selector string to a rule. An unrecognized selector is
// a configuration error surfaced as a DomainError.
func ParseRule(selector string) (Rule, error) {
	for rule, name := range ruleNames {
		if name == selector {
			return rule, nil
		}
	}
	return 0, models.NewDomainError("outlier rule", selector)
}

// Bounds carries the per-point-aligned limit arrays a rule reads. Callers may
// substitute specification limits for the three-sigma bounds. Nil arrays
// disable the rules that need them.
type Bounds struct {
	Targets []float64
	Lower95 []float64
	Upper95 []float64
	Lower99 []float64
	Upper99 []float64
}

// Params tunes the window-based rules.
type Params struct {
	// ShiftN is the run length of same-side points that triggers Shift.
	ShiftN int

	// TrendN is the run length of strictly monotone points that triggers
	// Trend.
	TrendN int

	// TwoInThreeBackfill marks the two points preceding a TwoInThree trigger
	// with the same flag.
	TwoInThreeBackfill bool
}

// DefaultParams returns the conventional rule windows.
func DefaultParams() Params {
	return Params{ShiftN: 8, TrendN: 7}
}

// Detect runs one rule over the series and returns a per-point flag array of
// the same length. This is the pure entry point shared by the synchronous
// path and the offload transport.
func Detect(rule Rule, values []float64, bounds Bounds, params Params) ([]models.OutlierFlag, error) {
	switch rule {
	case RuleAstronomical:
		return detectAstronomical(values, bounds), nil
	case RuleShift:
		return detectShift(values, bounds.Targets, params.ShiftN), nil
	case RuleTrend:
		return detectTrend(values, params.TrendN), nil
	case RuleTwoInThree:
		return detectTwoInThree(values, bounds, params.TwoInThreeBackfill), nil
	default:
		// Unreachable for rules produced by ParseRule.
		return nil, models.NewDomainError("outlier rule", rule.String())
	}
}
