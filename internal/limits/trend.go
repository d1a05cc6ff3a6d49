package limits

// fitTrend fits a least-squares line over the values of one subgroup and
// returns the fitted series. The fit never crosses a subgroup boundary; the
// caller computes one fit per subgroup and concatenates.
func fitTrend(values []float64) []float64 {
	n := len(values)
	fitted := make([]float64, n)
	if n == 0 {
		return fitted
	}
	if n == 1 {
		fitted[0] = values[0]
		return fitted
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	fn := float64(n)
	denominator := fn*sumX2 - sumX*sumX
	if denominator == 0 {
		// Degenerate fit; fall back to a flat line at the mean.
		m := sumY / fn
		for i := range fitted {
			fitted[i] = m
		}
		return fitted
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn
	for i := range fitted {
		fitted[i] = intercept + slope*float64(i)
	}
	return fitted
}
