package changetrack

import "sort"

// RenderStage names one downstream render pass. Stages are requested by the
// change tracker and consumed by external rendering collaborators.
type RenderStage string

const (
	// StageAll is the universal sentinel requesting every stage.
	StageAll RenderStage = "all"

	StagePoints      RenderStage = "points"
	StageLines       RenderStage = "lines"
	StageIcons       RenderStage = "icons"
	StageXAxis       RenderStage = "xaxis"
	StageYAxis       RenderStage = "yaxis"
	StageValueLabels RenderStage = "valuelabels"
	StageLineLabels  RenderStage = "linelabels"
)

// coreStages are requested whenever the data itself changed.
var coreStages = []RenderStage{
	StagePoints, StageLines, StageIcons, StageXAxis, StageYAxis,
	StageValueLabels, StageLineLabels,
}

// categoryStages maps a settings-category name to the render stages its
// change invalidates. Unknown categories fall back to the full core set.
var categoryStages = map[string][]RenderStage{
	"calculation": coreStages,
	"outliers":    {StagePoints, StageIcons},
	"points":      {StagePoints},
	"lines":       {StageLines, StageLineLabels},
	"icons":       {StageIcons},
	"xaxis":       {StageXAxis},
	"yaxis":       {StageYAxis},
	"labels":      {StageValueLabels},
}

// recomputeCategories are the two designated categories whose change forces
// limit and outlier recomputation even with unchanged data.
var recomputeCategories = map[string]bool{
	"calculation": true,
	"outliers":    true,
}

// StageSet is a set of requested render stages.
type StageSet map[RenderStage]struct{}

// Add inserts stages into the set.
func (s StageSet) Add(stages ...RenderStage) {
	for _, stage := range stages {
		s[stage] = struct{}{}
	}
}

// Has reports whether the stage (or the universal sentinel) is requested.
func (s StageSet) Has(stage RenderStage) bool {
	if _, ok := s[StageAll]; ok {
		return true
	}
	_, ok := s[stage]
	return ok
}

// List returns the stages in sorted order.
func (s StageSet) List() []string {
	out := make([]string, 0, len(s))
	for stage := range s {
		out = append(out, string(stage))
	}
	sort.Strings(out)
	return out
}

// ChangeFlags is the derived classification of one update cycle. It is never
// stored: the orchestrator consumes it and retains only the snapshots.
type ChangeFlags struct {
	FirstCycle         bool
	DataChanged        bool
	ViewportChanged    bool
	ResizeOnly         bool
	ChangedCategories  []string
	LimitsNeedRecalc   bool
	OutliersNeedRecalc bool
	Stages             StageSet
}

// ComputeChangeFlags classifies the cycle from the previous and current
// snapshots. On the first-ever cycle everything is changed, both
// recomputations run and the stage set holds the universal sentinel.
func ComputeChangeFlags(prevData, currData *DataState, prevSettings, currSettings SettingsState) ChangeFlags {
	flags := ChangeFlags{Stages: make(StageSet)}

	if prevData == nil {
		flags.FirstCycle = true
		flags.DataChanged = true
		flags.ViewportChanged = true
		flags.LimitsNeedRecalc = true
		flags.OutliersNeedRecalc = true
		flags.ChangedCategories = DetectSettingsChanges(nil, currSettings)
		flags.Stages.Add(StageAll)
		return flags
	}

	flags.DataChanged, flags.ViewportChanged, flags.ResizeOnly =
		DetectDataChanges(prevData, currData)
	flags.ChangedCategories = DetectSettingsChanges(prevSettings, currSettings)

	if flags.DataChanged {
		flags.LimitsNeedRecalc = true
		flags.OutliersNeedRecalc = true
		flags.Stages.Add(coreStages...)
	}

	for _, name := range flags.ChangedCategories {
		stages, ok := categoryStages[name]
		if !ok {
			stages = coreStages
		}
		flags.Stages.Add(stages...)
		if recomputeCategories[name] {
			flags.LimitsNeedRecalc = true
			flags.OutliersNeedRecalc = true
		}
	}

	if flags.ViewportChanged {
		flags.Stages.Add(StageXAxis, StageYAxis)
	}

	// The cheap path: a pure resize with nothing to recompute only moves
	// existing geometry.
	if flags.ResizeOnly && !flags.LimitsNeedRecalc && len(flags.ChangedCategories) == 0 {
		flags.Stages = make(StageSet)
		flags.Stages.Add(StagePoints, StageLines)
	}

	return flags
}

func sortStrings(values []string) {
	sort.Strings(values)
}
