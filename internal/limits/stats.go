package limits

import (
	"math"
	"sort"
)

// safeDiv divides a by b, substituting 0 for any non-finite outcome. Ratio
// transforms must never propagate a non-number into downstream arrays.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value (mean of the two middle values for even
// lengths), 0 for an empty slice.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// weightedMean returns sum(w_i * v_i) / sum(w_i), 0 when weights sum to 0.
func weightedMean(values, weights []float64) float64 {
	var num, den float64
	for i, v := range values {
		num += weights[i] * v
		den += weights[i]
	}
	return safeDiv(num, den)
}

// consecutiveDiffs returns |x[i] - x[i-1]| for i in 1..n-1.
func consecutiveDiffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	diffs := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs = append(diffs, math.Abs(values[i]-values[i-1]))
	}
	return diffs
}

// meanMovingRange estimates dispersion from consecutive absolute differences.
// When screen is true, any difference exceeding mrUpperFactor times the mean
// of all differences is excluded first. This is a single-pass coarse screen
// removing gross excursions before estimating natural variation, not an
// iterative refinement.
func meanMovingRange(values []float64, screen bool) float64 {
	diffs := consecutiveDiffs(values)
	if len(diffs) == 0 {
		return 0
	}
	if !screen {
		return mean(diffs)
	}

	cutoff := mrUpperFactor * mean(diffs)
	kept := diffs[:0]
	for _, d := range diffs {
		if d <= cutoff {
			kept = append(kept, d)
		}
	}
	return mean(kept)
}

// medianMovingRange returns the median of consecutive absolute differences.
func medianMovingRange(values []float64) float64 {
	return median(consecutiveDiffs(values))
}

// pooledStdDev returns the weighted pooled standard deviation across points
// carrying per-point standard deviations and group sizes:
// sqrt(sum((n_i-1)*s_i^2) / sum(n_i-1)).
func pooledStdDev(sds, sizes []float64) float64 {
	var num, den float64
	for i, s := range sds {
		w := sizes[i] - 1
		if w <= 0 {
			continue
		}
		num += w * s * s
		den += w
	}
	if den == 0 {
		return 0
	}
	return math.Sqrt(num / den)
}

// c4 is the bias-correction factor for estimating sigma from sample standard
// deviations: c4(n) = sqrt(2/(n-1)) * Gamma(n/2) / Gamma((n-1)/2).
func c4(n float64) float64 {
	if n < 2 {
		return 1
	}
	return math.Sqrt(2/(n-1)) * math.Gamma(n/2) / math.Gamma((n-1)/2)
}

// ratios returns num[i]/den[i] with the safe-division sentinel applied.
func ratios(nums, dens []float64) []float64 {
	out := make([]float64, len(nums))
	for i, n := range nums {
		out[i] = safeDiv(n, dens[i])
	}
	return out
}
