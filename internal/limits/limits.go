// Package limits implements the pure, stateless limit-calculation engine.
// Compute takes one contiguous subgroup of a sequence and a chart model and
// returns a fully populated LimitResult; identical inputs always yield
// identical outputs.
package limits

import (
	"github.com/spcflow/spcflow/internal/models"
)

// ChartModel is the closed set of supported chart-model variants. Keeping the
// set closed turns "unknown chart type" into a parse-time failure instead of
// a runtime one for validated call sites.
type ChartModel int

const (
	ModelRun ChartModel = iota // run chart, median centre, no control limits
	ModelI                     // individuals, mean centre, moving-range sigma
	ModelIM                    // individuals, median centre, moving-range sigma
	ModelIMM                   // individuals, median centre, median moving-range sigma
	ModelMR                    // moving range
	ModelXBar                  // subgroup means, pooled weighted SD
	ModelS                     // subgroup standard deviations
	ModelC                     // counts, Poisson-style sigma
	ModelP                     // proportions, binomial sigma
	ModelPPrime                // Laney p': binomial sigma scaled by between-point variation
	ModelU                     // rates, Poisson sigma over mean exposure
	ModelUPrime                // Laney u'
	ModelG                     // events-between, negative-binomial sigma
	ModelT                     // time-between, power transform + individuals
)

var modelNames = map[ChartModel]string{
	ModelRun:    "run",
	ModelI:      "i",
	ModelIM:     "i_m",
	ModelIMM:    "i_mm",
	ModelMR:     "mr",
	ModelXBar:   "xbar",
	ModelS:      "s",
	ModelC:      "c",
	ModelP:      "p",
	ModelPPrime: "pp",
	ModelU:      "u",
	ModelUPrime: "up",
	ModelG:      "g",
	ModelT:      "t",
}

// String returns the canonical selector name of the model.
func (m ChartModel) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseChartModel resolves a selector string to a chart model. An
// unrecognized selector is a configuration error surfaced as a DomainError.
func ParseChartModel(selector string) (ChartModel, error) {
	for model, name := range modelNames {
		if name == selector {
			return model, nil
		}
	}
	return 0, models.NewDomainError("chart model", selector)
}

// Options tune the common calculation skeleton.
type Options struct {
	// OutliersAffectLimits keeps gross excursions inside the dispersion
	// estimate. When false, consecutive differences beyond the one-pass
	// screen threshold are excluded first.
	OutliersAffectLimits bool

	// TrendLine fits a per-subgroup least-squares line over the transformed
	// values.
	TrendLine bool
}

// Input is one contiguous subgroup of a sequence. Denominators and SDs are
// nil for models that do not use them.
type Input struct {
	Numerators   []float64
	Denominators []float64
	SDs          []float64
	Options      Options
}

// Compute runs the limit calculation for one subgroup. An empty subgroup
// yields an empty result; all-equal values collapse the bounds onto the
// centre line. Both are valid results, not errors.
func Compute(model ChartModel, in Input) (*models.LimitResult, error) {
	if len(in.Numerators) == 0 {
		return models.EmptyLimitResult(), nil
	}

	var result *models.LimitResult
	var err error

	switch model {
	case ModelRun:
		result = computeRun(in)
	case ModelI:
		result = computeIndividuals(in, centreMean, sigmaMeanMR)
	case ModelIM:
		result = computeIndividuals(in, centreMedian, sigmaMeanMR)
	case ModelIMM:
		result = computeIndividuals(in, centreMedian, sigmaMedianMR)
	case ModelMR:
		result = computeMovingRange(in)
	case ModelXBar:
		result, err = computeXBar(in)
	case ModelS:
		result, err = computeS(in)
	case ModelC:
		result = computeC(in)
	case ModelP:
		result, err = computeProportion(in, false)
	case ModelPPrime:
		result, err = computeProportion(in, true)
	case ModelU:
		result, err = computeRate(in, false)
	case ModelUPrime:
		result, err = computeRate(in, true)
	case ModelG:
		result = computeG(in)
	case ModelT:
		result = computeT(in)
	default:
		// Unreachable for models produced by ParseChartModel.
		return nil, models.NewDomainError("chart model", model.String())
	}
	if err != nil {
		return nil, err
	}

	if in.Options.TrendLine {
		result.Trend = fitTrend(result.Values)
	}
	return result, nil
}
