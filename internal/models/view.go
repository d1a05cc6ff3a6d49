package models

// ViewRecord is one render-ready point handed to rendering collaborators:
// the transformed value, every overlay field and every rule flag.
type ViewRecord struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`

	Target  float64 `json:"target"`
	Lower68 float64 `json:"ll68"`
	Lower95 float64 `json:"ll95"`
	Lower99 float64 `json:"ll99"`
	Upper68 float64 `json:"ul68"`
	Upper95 float64 `json:"ul95"`
	Upper99 float64 `json:"ul99"`

	Trend       *float64 `json:"trend,omitempty"`
	AltTarget   *float64 `json:"alt_target,omitempty"`
	SpecLower99 *float64 `json:"spec_ll99,omitempty"`
	SpecUpper99 *float64 `json:"spec_ul99,omitempty"`

	Astronomical OutlierFlag `json:"astronomical"`
	Shift        OutlierFlag `json:"shift"`
	TrendFlag    OutlierFlag `json:"trend_flag"`
	TwoInThree   OutlierFlag `json:"two_in_three"`
}

// ChartView is the materialized output of one successful cycle, read-only
// from the consumer's perspective.
type ChartView struct {
	Records []ViewRecord `json:"records"`
	labels  []string
}

// NewChartView builds a view over the given records. The label slice backs
// the O(1) position lookup required by downstream consumers.
func NewChartView(records []ViewRecord) *ChartView {
	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = rec.Label
	}
	return &ChartView{Records: records, labels: labels}
}

// Label returns the display label at a position in O(1). Out-of-range
// positions return the empty string.
func (v *ChartView) Label(position int) string {
	if position < 0 || position >= len(v.labels) {
		return ""
	}
	return v.labels[position]
}

// Len returns the number of rendered points.
func (v *ChartView) Len() int {
	return len(v.Records)
}
