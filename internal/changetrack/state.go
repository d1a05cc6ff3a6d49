package changetrack

import (
	"github.com/spcflow/spcflow/internal/models"
)

// DataState is one update cycle's snapshot of the incoming data: hashes of
// the value columns and break indexes, the raw length and the viewport.
// Created fresh every cycle; the previous cycle's state is retained only
// until the next comparison, then replaced.
type DataState struct {
	NumeratorHash   uint32
	DenominatorHash uint32
	HasDenominators bool
	LabelHash       uint32
	BreakHash       uint32
	Length          int
	Width           int
	Height          int
}

// NewDataState builds the snapshot for one cycle in O(n).
func NewDataState(seq *models.Sequence, width, height int) *DataState {
	state := &DataState{
		NumeratorHash: HashFloats(seq.Numerators),
		LabelHash:     HashStrings(seq.Labels),
		BreakHash:     hashBreaks(seq.Rebaselines, seq.GroupingBreaks),
		Length:        seq.Len(),
		Width:         width,
		Height:        height,
	}
	if seq.HasDenominators() {
		state.HasDenominators = true
		state.DenominatorHash = HashFloats(seq.Denominators)
	}
	return state
}

// hashBreaks folds both break lists into one hash. The -1 sentinel keeps the
// boundary between the lists order-sensitive.
func hashBreaks(rebaselines, grouping []int) uint32 {
	combined := make([]int, 0, len(rebaselines)+len(grouping)+1)
	combined = append(combined, rebaselines...)
	combined = append(combined, -1)
	combined = append(combined, grouping...)
	return HashInts(combined)
}

// SettingsState maps each settings-category name to the hash of its
// contents. Same retain/replace lifecycle as DataState.
type SettingsState map[string]uint32

// NewSettingsState hashes every named category.
func NewSettingsState(settings models.Settings) SettingsState {
	state := make(SettingsState, len(settings))
	for name, category := range settings {
		state[name] = HashSettingsCategory(category)
	}
	return state
}

// DetectDataChanges compares two snapshots in O(1). A nil previous state
// means the first-ever cycle: everything counts as changed.
func DetectDataChanges(prev, curr *DataState) (dataChanged, viewportChanged, resizeOnly bool) {
	if prev == nil {
		return true, true, false
	}
	dataChanged = prev.NumeratorHash != curr.NumeratorHash ||
		prev.DenominatorHash != curr.DenominatorHash ||
		prev.HasDenominators != curr.HasDenominators ||
		prev.LabelHash != curr.LabelHash ||
		prev.BreakHash != curr.BreakHash ||
		prev.Length != curr.Length
	viewportChanged = prev.Width != curr.Width || prev.Height != curr.Height
	resizeOnly = viewportChanged && !dataChanged
	return dataChanged, viewportChanged, resizeOnly
}

// DetectSettingsChanges returns the sorted names of categories whose hash
// differs. With no previous state every category counts as changed.
func DetectSettingsChanges(prev, curr SettingsState) []string {
	var changed []string
	for name, hash := range curr {
		if prev == nil {
			changed = append(changed, name)
			continue
		}
		if prevHash, ok := prev[name]; !ok || prevHash != hash {
			changed = append(changed, name)
		}
	}
	// Categories that disappeared also count as changed.
	for name := range prev {
		if _, ok := curr[name]; !ok {
			changed = append(changed, name)
		}
	}
	sortStrings(changed)
	return changed
}
