package models

// OutlierFlag classifies a single point under one detection rule.
type OutlierFlag string

const (
	FlagNone  OutlierFlag = "none"
	FlagLower OutlierFlag = "lower"
	FlagUpper OutlierFlag = "upper"
)

// OutlierFlags holds the four independent per-point classification arrays.
// Each slice shares the sequence length; the rules never read each other's
// output.
type OutlierFlags struct {
	Astronomical []OutlierFlag `json:"astronomical"`
	Shift        []OutlierFlag `json:"shift"`
	Trend        []OutlierFlag `json:"trend"`
	TwoInThree   []OutlierFlag `json:"two_in_three"`
}

// NewOutlierFlags returns flags for n points, all initialised to FlagNone.
func NewOutlierFlags(n int) *OutlierFlags {
	return &OutlierFlags{
		Astronomical: NoneFlags(n),
		Shift:        NoneFlags(n),
		Trend:        NoneFlags(n),
		TwoInThree:   NoneFlags(n),
	}
}

// NoneFlags returns a flag slice of length n filled with FlagNone.
func NoneFlags(n int) []OutlierFlag {
	flags := make([]OutlierFlag, n)
	for i := range flags {
		flags[i] = FlagNone
	}
	return flags
}

// Append concatenates other onto f in index order.
func (f *OutlierFlags) Append(other *OutlierFlags) {
	f.Astronomical = append(f.Astronomical, other.Astronomical...)
	f.Shift = append(f.Shift, other.Shift...)
	f.Trend = append(f.Trend, other.Trend...)
	f.TwoInThree = append(f.TwoInThree, other.TwoInThree...)
}
