package models

// LimitResult holds the per-point-aligned output of one limit calculation.
// Within one subgroup every target/bound array is constant (Shewhart-style
// bounds); across subgroups the values may differ. All populated slices share
// the sequence length. Optional overlays (Counts, Trend, AltTargets,
// SpecLower99, SpecUpper99) are nil when not applicable.
type LimitResult struct {
	Values  []float64 `json:"values"`
	Targets []float64 `json:"targets"`
	Counts  []float64 `json:"counts,omitempty"`

	Lower68 []float64 `json:"ll68,omitempty"`
	Lower95 []float64 `json:"ll95,omitempty"`
	Lower99 []float64 `json:"ll99,omitempty"`
	Upper68 []float64 `json:"ul68,omitempty"`
	Upper95 []float64 `json:"ul95,omitempty"`
	Upper99 []float64 `json:"ul99,omitempty"`

	// Trend is the per-subgroup least-squares line, fitted only within a
	// subgroup, never across a boundary.
	Trend []float64 `json:"trend,omitempty"`

	// Carried-through overlays supplied externally, never computed here.
	AltTargets  []float64 `json:"alt_targets,omitempty"`
	SpecLower99 []float64 `json:"spec_ll99,omitempty"`
	SpecUpper99 []float64 `json:"spec_ul99,omitempty"`
}

// EmptyLimitResult returns a result with all slices allocated at zero length.
// An empty subgroup produces an empty result, not an error.
func EmptyLimitResult() *LimitResult {
	return &LimitResult{
		Values:  []float64{},
		Targets: []float64{},
	}
}

// Len returns the number of points the result covers.
func (r *LimitResult) Len() int {
	return len(r.Values)
}

// Append concatenates other onto r in index order. Optional slices are
// extended only when either side carries them, padding the gap with NaN-free
// zeros is deliberately avoided: a column is carried for the whole sequence
// or not at all, so both sides agree in practice.
func (r *LimitResult) Append(other *LimitResult) {
	r.Values = append(r.Values, other.Values...)
	r.Targets = append(r.Targets, other.Targets...)
	r.Counts = appendOptional(r.Counts, other.Counts)
	r.Lower68 = appendOptional(r.Lower68, other.Lower68)
	r.Lower95 = appendOptional(r.Lower95, other.Lower95)
	r.Lower99 = appendOptional(r.Lower99, other.Lower99)
	r.Upper68 = appendOptional(r.Upper68, other.Upper68)
	r.Upper95 = appendOptional(r.Upper95, other.Upper95)
	r.Upper99 = appendOptional(r.Upper99, other.Upper99)
	r.Trend = appendOptional(r.Trend, other.Trend)
}

func appendOptional(dst, src []float64) []float64 {
	if src == nil {
		return dst
	}
	return append(dst, src...)
}
