package models

// Settings is the nested, named-category configuration supplied with every
// update. Category names and contents are opaque to the change tracker, which
// only hashes them; the engine reads typed options out of the "calculation"
// and "outliers" categories.
type Settings map[string]map[string]interface{}

// Category returns one settings category, or nil when absent.
func (s Settings) Category(name string) map[string]interface{} {
	if s == nil {
		return nil
	}
	return s[name]
}

// UpdateRequest carries one full update cycle: the validated sequence, the
// settings snapshot and the viewport. The sequence arrives already validated
// by the upstream builder; Warnings carries its non-fatal row exclusions.
type UpdateRequest struct {
	Numerators     []float64 `json:"numerators"`
	Denominators   []float64 `json:"denominators,omitempty"`
	SDs            []float64 `json:"sds,omitempty"`
	Labels         []string  `json:"labels"`
	Rebaselines    []int     `json:"rebaselines,omitempty"`
	GroupingBreaks []int     `json:"grouping_breaks,omitempty"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Settings Settings `json:"settings,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// Sequence assembles the sequence view of the request.
func (r *UpdateRequest) Sequence() *Sequence {
	return &Sequence{
		Numerators:     r.Numerators,
		Denominators:   r.Denominators,
		SDs:            r.SDs,
		Labels:         r.Labels,
		Rebaselines:    r.Rebaselines,
		GroupingBreaks: r.GroupingBreaks,
	}
}

// Validate performs the structural checks that gate a cycle. Anything beyond
// structure (row-level validity) is the input collaborator's job.
func (r *UpdateRequest) Validate() error {
	if len(r.Numerators) == 0 {
		return NewValidationError("numerators", "is required")
	}
	n := len(r.Numerators)
	if len(r.Labels) != n {
		return NewValidationError("labels", "length must match numerators")
	}
	if r.Denominators != nil && len(r.Denominators) != n {
		return NewValidationError("denominators", "length must match numerators")
	}
	if r.SDs != nil && len(r.SDs) != n {
		return NewValidationError("sds", "length must match numerators")
	}
	for _, b := range r.Rebaselines {
		if b < 0 || b > n {
			return NewValidationError("rebaselines", "contains an index outside the sequence")
		}
	}
	for _, b := range r.GroupingBreaks {
		if b < 0 || b > n {
			return NewValidationError("grouping_breaks", "contains an index outside the sequence")
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return NewValidationError("viewport", "dimensions must be non-negative")
	}
	return nil
}
