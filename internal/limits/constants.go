package limits

// Sigma-scaling constants sourced from the standard SPC constant tables
// (ASTM STP 15-D / Montgomery, "Introduction to Statistical Quality
// Control"). They are looked up, never re-derived.
const (
	// d2 for subgroups of size 2: converts the mean moving range of
	// consecutive points into an estimate of process sigma.
	d2MovingRange = 1.128

	// Median-moving-range divisor: converts the median of consecutive
	// moving ranges into an estimate of process sigma.
	medianMRDivisor = 0.954

	// D4 for subgroups of size 2: the upper control limit of a moving-range
	// chart as a multiple of the mean moving range. Also used as the
	// one-pass screen threshold when outliers are excluded from the
	// dispersion estimate.
	mrUpperFactor = 3.267

	// Exponent of the power transform applied by the t (time-between-events)
	// chart before computing individuals limits on the transformed scale.
	tChartPower = 3.6
)
