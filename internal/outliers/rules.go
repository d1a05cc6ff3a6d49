package outliers

import (
	"github.com/spcflow/spcflow/internal/models"
)

// detectAstronomical flags points outside their own three-sigma (or
// specification) bound.
func detectAstronomical(values []float64, bounds Bounds) []models.OutlierFlag {
	flags := models.NoneFlags(len(values))
	for i, v := range values {
		if bounds.Upper99 != nil && v > bounds.Upper99[i] {
			flags[i] = models.FlagUpper
		} else if bounds.Lower99 != nil && v < bounds.Lower99[i] {
			flags[i] = models.FlagLower
		}
	}
	return flags
}

// detectShift flags runs of n consecutive points on the same side of the
// centre line. A single running signed sum slides over a window of width n:
// the incoming point's sign is added, the sign leaving the window is
// subtracted. The absolute sum reaches n only when every point in the window
// sits on the same side; the trigger marks the current point and backfills
// the trailing n-1 points. A later trigger overwrites overlapping backfill.
func detectShift(values, targets []float64, n int) []models.OutlierFlag {
	flags := models.NoneFlags(len(values))
	if n < 2 || len(targets) == 0 || len(values) < n {
		return flags
	}

	signs := make([]int, len(values))
	sum := 0
	for i, v := range values {
		s := 0
		switch {
		case v > targets[i]:
			s = 1
		case v < targets[i]:
			s = -1
		}
		signs[i] = s
		sum += s
		if i >= n {
			sum -= signs[i-n]
		}

		if i < n-1 {
			continue
		}
		switch {
		case sum >= n:
			backfill(flags, i, n, models.FlagUpper)
		case sum <= -n:
			backfill(flags, i, n, models.FlagLower)
		}
	}
	return flags
}

// detectTrend flags runs of n consecutive points each strictly increasing or
// decreasing versus its predecessor. The per-step direction (+1/0/-1) feeds a
// running sum over a window of n-1 steps, with the same backfill discipline
// as Shift.
func detectTrend(values []float64, n int) []models.OutlierFlag {
	flags := models.NoneFlags(len(values))
	steps := n - 1
	if steps < 1 || len(values) < n {
		return flags
	}

	dirs := make([]int, len(values)) // dirs[i] is the step into point i
	sum := 0
	for i := 1; i < len(values); i++ {
		d := 0
		switch {
		case values[i] > values[i-1]:
			d = 1
		case values[i] < values[i-1]:
			d = -1
		}
		dirs[i] = d
		sum += d
		if i > steps {
			sum -= dirs[i-steps]
		}

		if i < steps {
			continue
		}
		switch {
		case sum >= steps:
			backfill(flags, i, n, models.FlagUpper)
		case sum <= -steps:
			backfill(flags, i, n, models.FlagLower)
		}
	}
	return flags
}

// detectTwoInThree flags a point beyond its two-sigma bound when at least two
// of the three points preceding it were beyond the same bound. Two running
// counts slide over the fixed width-3 window; the optional backfill marks the
// two preceding points with the triggering flag.
func detectTwoInThree(values []float64, bounds Bounds, withBackfill bool) []models.OutlierFlag {
	flags := models.NoneFlags(len(values))
	if bounds.Upper95 == nil && bounds.Lower95 == nil {
		return flags
	}

	sides := make([]int, len(values))
	upper, lower := 0, 0
	for i, v := range values {
		// Window covers the three points before i.
		if i >= 1 {
			switch sides[i-1] {
			case 1:
				upper++
			case -1:
				lower++
			}
		}
		if i >= 4 {
			switch sides[i-4] {
			case 1:
				upper--
			case -1:
				lower--
			}
		}

		s := 0
		switch {
		case bounds.Upper95 != nil && v > bounds.Upper95[i]:
			s = 1
		case bounds.Lower95 != nil && v < bounds.Lower95[i]:
			s = -1
		}
		sides[i] = s

		width := 1
		if withBackfill {
			width = 3
		}
		switch {
		case s == 1 && upper >= 2:
			backfill(flags, i, width, models.FlagUpper)
		case s == -1 && lower >= 2:
			backfill(flags, i, width, models.FlagLower)
		}
	}
	return flags
}

// backfill marks the current point and the width-1 points before it. The
// most recently evaluated trigger wins when overlapping windows disagree.
func backfill(flags []models.OutlierFlag, current, width int, flag models.OutlierFlag) {
	start := current - width + 1
	if start < 0 {
		start = 0
	}
	for j := start; j <= current; j++ {
		flags[j] = flag
	}
}
