// Package models defines the core data types shared across the SPC engine:
// sequences, subgroups, limit results, outlier flags and the HTTP
// request/response shapes.
package models

// Sequence is an ordered collection of measurements plus the break indexes
// that partition it into subgroups. Columns are position-aligned 0..n-1;
// invalid rows are excluded upstream before a sequence reaches the engine.
type Sequence struct {
	Numerators     []float64
	Denominators   []float64 // nil when absent
	SDs            []float64 // nil when absent
	Labels         []string
	Rebaselines    []int // manual rebaseline break points
	GroupingBreaks []int // externally supplied grouping-change break points
}

// Len returns the number of points in the sequence.
func (s *Sequence) Len() int {
	return len(s.Numerators)
}

// HasDenominators reports whether the sequence carries denominator values.
func (s *Sequence) HasDenominators() bool {
	return len(s.Denominators) > 0
}

// Subgroup is a half-open index range [Start, End) over one sequence. All
// points inside one subgroup share one set of control limits.
type Subgroup struct {
	Start int
	End   int
}

// Len returns the number of points covered by the subgroup.
func (g Subgroup) Len() int {
	return g.End - g.Start
}

// Slice returns the sub-slice of values covered by the subgroup. A nil input
// stays nil so optional columns pass through unchanged.
func (g Subgroup) Slice(values []float64) []float64 {
	if values == nil {
		return nil
	}
	return values[g.Start:g.End]
}
