package outliers

import (
	"github.com/spcflow/spcflow/internal/models"
)

// Direction is the configured improvement direction of the measured process.
type Direction string

const (
	DirectionIncrease Direction = "increase" // higher values are better
	DirectionDecrease Direction = "decrease" // lower values are better
	DirectionNeutral  Direction = "neutral"  // no direction is better
)

// FlagPolicy selects which signal directions survive the post-pass.
type FlagPolicy string

const (
	FlagBoth          FlagPolicy = "both"
	FlagImprovement   FlagPolicy = "improvement"
	FlagDeterioration FlagPolicy = "deterioration"
)

// SuppressDirection discards flags pointing in a direction the policy does
// not care about, e.g. flag only deteriorations. A neutral improvement
// direction keeps everything: there is no direction to suppress.
func SuppressDirection(flags []models.OutlierFlag, improvement Direction, policy FlagPolicy) []models.OutlierFlag {
	if improvement == DirectionNeutral || improvement == "" || policy == FlagBoth || policy == "" {
		return flags
	}

	keep := models.FlagUpper // flag direction that survives
	switch {
	case policy == FlagImprovement && improvement == DirectionDecrease:
		keep = models.FlagLower
	case policy == FlagDeterioration && improvement == DirectionIncrease:
		keep = models.FlagLower
	}

	out := make([]models.OutlierFlag, len(flags))
	for i, f := range flags {
		if f == keep || f == models.FlagNone {
			out[i] = f
		} else {
			out[i] = models.FlagNone
		}
	}
	return out
}
