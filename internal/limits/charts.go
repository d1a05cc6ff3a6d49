package limits

import (
	"math"

	"github.com/spcflow/spcflow/internal/models"
)

// centreFn estimates the centre line of a transformed series.
type centreFn func(values []float64) float64

// sigmaFn estimates process sigma from a transformed series.
type sigmaFn func(values []float64, opts Options) float64

func centreMean(values []float64) float64   { return mean(values) }
func centreMedian(values []float64) float64 { return median(values) }

func sigmaMeanMR(values []float64, opts Options) float64 {
	return meanMovingRange(values, !opts.OutliersAffectLimits) / d2MovingRange
}

func sigmaMedianMR(values []float64, _ Options) float64 {
	return medianMovingRange(values) / medianMRDivisor
}

// broadcast builds a Shewhart-style result: the centre line and the one, two
// and three sigma bounds held constant across every point of the subgroup.
func broadcast(values []float64, target, sigma float64) *models.LimitResult {
	n := len(values)
	fill := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return &models.LimitResult{
		Values:  values,
		Targets: fill(target),
		Lower68: fill(target - sigma),
		Lower95: fill(target - 2*sigma),
		Lower99: fill(target - 3*sigma),
		Upper68: fill(target + sigma),
		Upper95: fill(target + 2*sigma),
		Upper99: fill(target + 3*sigma),
	}
}

// computeRun builds a run chart: median centre line, no control limits.
func computeRun(in Input) *models.LimitResult {
	values := in.Numerators
	if in.Denominators != nil {
		values = ratios(in.Numerators, in.Denominators)
	}
	targets := make([]float64, len(values))
	centre := median(values)
	for i := range targets {
		targets[i] = centre
	}
	return &models.LimitResult{Values: copyFloats(values), Targets: targets}
}

// computeIndividuals covers the i, i_m and i_mm variants, differing only in
// centre-line and dispersion estimators.
func computeIndividuals(in Input, centre centreFn, sigma sigmaFn) *models.LimitResult {
	values := in.Numerators
	if in.Denominators != nil {
		values = ratios(in.Numerators, in.Denominators)
	}
	return broadcast(copyFloats(values), centre(values), sigma(values, in.Options))
}

// computeMovingRange builds the mr chart over successive absolute
// differences. The first point has no predecessor; its range is the defined
// sentinel 0. Sigma is scaled so that the three-sigma bound lands on the D4
// multiple of the mean moving range.
func computeMovingRange(in Input) *models.LimitResult {
	src := in.Numerators
	if in.Denominators != nil {
		src = ratios(in.Numerators, in.Denominators)
	}

	values := make([]float64, len(src))
	for i := 1; i < len(src); i++ {
		values[i] = math.Abs(src[i] - src[i-1])
	}

	target := meanMovingRange(src, !in.Options.OutliersAffectLimits)
	sigma := (mrUpperFactor - 1) * target / 3
	return broadcast(values, target, sigma)
}

// computeXBar builds the xbar chart over pre-aggregated subgroup means:
// numerators are group means, denominators group sizes, SDs group standard
// deviations. The centre line is the size-weighted mean and sigma comes from
// the pooled weighted standard deviation over the mean group size.
func computeXBar(in Input) (*models.LimitResult, error) {
	if in.Denominators == nil {
		return nil, models.NewValidationError("denominators", "is required for xbar charts")
	}
	if in.SDs == nil {
		return nil, models.NewValidationError("sds", "is required for xbar charts")
	}

	target := weightedMean(in.Numerators, in.Denominators)
	sp := pooledStdDev(in.SDs, in.Denominators)
	nbar := mean(in.Denominators)
	sigma := safeDiv(sp, math.Sqrt(nbar))

	result := broadcast(copyFloats(in.Numerators), target, sigma)
	result.Counts = copyFloats(in.Denominators)
	return result, nil
}

// computeS builds the s chart over subgroup standard deviations, with the c4
// bias correction evaluated at the mean group size.
func computeS(in Input) (*models.LimitResult, error) {
	if in.Denominators == nil {
		return nil, models.NewValidationError("denominators", "is required for s charts")
	}
	if in.SDs == nil {
		return nil, models.NewValidationError("sds", "is required for s charts")
	}

	sp := pooledStdDev(in.SDs, in.Denominators)
	nbar := mean(in.Denominators)
	correction := c4(nbar)
	target := sp * correction
	sigma := sp * math.Sqrt(1-correction*correction)

	result := broadcast(copyFloats(in.SDs), target, sigma)
	result.Counts = copyFloats(in.Denominators)
	return result, nil
}

// computeC builds the c chart: counts with Poisson dispersion.
func computeC(in Input) *models.LimitResult {
	target := mean(in.Numerators)
	return broadcast(copyFloats(in.Numerators), target, math.Sqrt(math.Max(target, 0)))
}

// computeProportion builds the p chart (and the Laney p' variant when laney
// is set). The centre line is the denominator-weighted mean proportion;
// sigma is the binomial estimate at the mean exposure, held constant across
// the subgroup. The Laney variant additionally scales sigma by the moving
// range of the point z-scores, capturing between-point overdispersion.
func computeProportion(in Input, laney bool) (*models.LimitResult, error) {
	if in.Denominators == nil {
		return nil, models.NewValidationError("denominators", "is required for p charts")
	}

	values := ratios(in.Numerators, in.Denominators)
	pbar := weightedMean(values, in.Denominators)
	nbar := mean(in.Denominators)
	sigma := math.Sqrt(math.Max(safeDiv(pbar*(1-pbar), nbar), 0))

	if laney {
		sigma *= zScoreSigma(values, in.Denominators, func(n float64) float64 {
			return math.Sqrt(math.Max(safeDiv(pbar*(1-pbar), n), 0))
		}, pbar, in.Options)
	}

	result := broadcast(values, pbar, sigma)
	result.Counts = copyFloats(in.Denominators)
	return result, nil
}

// computeRate builds the u chart (and the Laney u' variant when laney is
// set): rates per unit exposure with Poisson dispersion at the mean exposure.
func computeRate(in Input, laney bool) (*models.LimitResult, error) {
	if in.Denominators == nil {
		return nil, models.NewValidationError("denominators", "is required for u charts")
	}

	values := ratios(in.Numerators, in.Denominators)
	ubar := weightedMean(values, in.Denominators)
	nbar := mean(in.Denominators)
	sigma := math.Sqrt(math.Max(safeDiv(ubar, nbar), 0))

	if laney {
		sigma *= zScoreSigma(values, in.Denominators, func(n float64) float64 {
			return math.Sqrt(math.Max(safeDiv(ubar, n), 0))
		}, ubar, in.Options)
	}

	result := broadcast(values, ubar, sigma)
	result.Counts = copyFloats(in.Denominators)
	return result, nil
}

// zScoreSigma is the Laney between-point scaling: convert each point to a
// z-score against its own within-point standard error, then estimate the
// dispersion of the z series from its moving range.
func zScoreSigma(values, exposures []float64, se func(exposure float64) float64, centre float64, opts Options) float64 {
	z := make([]float64, len(values))
	for i, v := range values {
		z[i] = safeDiv(v-centre, se(exposures[i]))
	}
	return meanMovingRange(z, !opts.OutliersAffectLimits) / d2MovingRange
}

// computeG builds the g chart over counts of non-events between events, with
// the negative-binomial dispersion sqrt(mean * (mean + 1)).
func computeG(in Input) *models.LimitResult {
	target := mean(in.Numerators)
	sigma := math.Sqrt(math.Max(target*(target+1), 0))
	return broadcast(copyFloats(in.Numerators), target, sigma)
}

// computeT builds the t chart: times between events are power-transformed,
// individuals limits are computed on the transformed scale, then the centre
// and bounds are transformed back. Values are reported on the original scale.
func computeT(in Input) *models.LimitResult {
	transformed := make([]float64, len(in.Numerators))
	for i, v := range in.Numerators {
		if v > 0 {
			transformed[i] = math.Pow(v, 1/tChartPower)
		}
	}

	target := mean(transformed)
	sigma := meanMovingRange(transformed, !in.Options.OutliersAffectLimits) / d2MovingRange

	back := func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return math.Pow(v, tChartPower)
	}

	n := len(in.Numerators)
	fill := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = back(v)
		}
		return out
	}
	return &models.LimitResult{
		Values:  copyFloats(in.Numerators),
		Targets: fill(target),
		Lower68: fill(target - sigma),
		Lower95: fill(target - 2*sigma),
		Lower99: fill(target - 3*sigma),
		Upper68: fill(target + sigma),
		Upper95: fill(target + 2*sigma),
		Upper99: fill(target + 3*sigma),
	}
}

func copyFloats(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
