// Package orchestrator runs the stateful update cycle: it splits the sequence
// into subgroups, gates recomputation through the change tracker, invokes the
// limit calculator and outlier detector per subgroup, merges the results and
// materializes the render-ready view. One orchestrator serves one chart.
package orchestrator

import (
	"context"
	"sync"

	"github.com/spcflow/spcflow/internal/changetrack"
	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/offload"
	"github.com/spcflow/spcflow/internal/outliers"
)

// State names the phase an update cycle is in. A cycle runs to completion (or
// Error) before the next begins.
type State string

const (
	StateIdle                State = "idle"
	StateValidatingInput     State = "validating_input"
	StateRecomputingLimits   State = "recomputing_limits"
	StateRecomputingOutliers State = "recomputing_outliers"
	StateBuildingView        State = "building_view"
	StateDone                State = "done"
	StateError               State = "error"
)

// UpdateResult is the outcome of one successful cycle.
type UpdateResult struct {
	Flags    changetrack.ChangeFlags
	Limits   *models.LimitResult
	Outliers *models.OutlierFlags
	View     *models.ChartView

	// Warnings carries the non-fatal per-row exclusions, joined once per
	// cycle. Empty when nothing was excluded.
	Warnings string
}

// Orchestrator owns the retained snapshots and results of one chart across
// cycles. The calculators it composes are pure; all cross-cycle state lives
// here.
type Orchestrator struct {
	name   string
	logger *logging.Logger
	calc   offload.Calculator
	engine config.EngineConfig

	// Cycles are serialized: the pipeline is not reentrant.
	mu sync.Mutex

	state        State
	prevData     *changetrack.DataState
	prevSettings changetrack.SettingsState
	limits       *models.LimitResult
	outliers     *models.OutlierFlags
	view         *models.ChartView
}

// New creates an orchestrator for one chart. The calculator is typically an
// offload dispatcher but any Calculator works, including the purely
// synchronous one.
func New(name string, logger *logging.Logger, calc offload.Calculator, engine config.EngineConfig) *Orchestrator {
	return &Orchestrator{
		name:   name,
		logger: logger.With("chart", name),
		calc:   calc,
		engine: engine,
		state:  StateIdle,
	}
}

// State returns the phase the last cycle ended in.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// View returns the most recently built view, or nil before the first
// successful cycle.
func (o *Orchestrator) View() *models.ChartView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// Update runs one full cycle. A ValidationError or DomainError fails the
// cycle and leaves every previously retained result untouched.
func (o *Orchestrator) Update(ctx context.Context, req *models.UpdateRequest) (*UpdateResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = StateValidatingInput
	if err := req.Validate(); err != nil {
		o.state = StateError
		o.logger.Warn("update rejected", "error", err)
		return nil, err
	}

	seq := req.Sequence()
	currData := changetrack.NewDataState(seq, req.Width, req.Height)
	currSettings := changetrack.NewSettingsState(req.Settings)
	flags := changetrack.ComputeChangeFlags(o.prevData, currData, o.prevSettings, currSettings)

	warnings := &models.WarningList{}
	warnings.AddAll(req.Warnings)

	subgroups := buildSubgroups(seq.Len(), seq.Rebaselines, seq.GroupingBreaks)

	limitResult := o.limits
	if flags.LimitsNeedRecalc {
		o.state = StateRecomputingLimits
		recomputed, err := o.recomputeLimits(ctx, seq, subgroups, req.Settings, warnings)
		if err != nil {
			o.state = StateError
			o.logger.Error("limit calculation failed", "error", err)
			return nil, err
		}
		limitResult = recomputed
	}

	flagResult := o.outliers
	if flags.OutliersNeedRecalc {
		o.state = StateRecomputingOutliers
		recomputed, err := o.recomputeOutliers(ctx, limitResult, subgroups, req.Settings)
		if err != nil {
			o.state = StateError
			o.logger.Error("outlier detection failed", "error", err)
			return nil, err
		}
		flagResult = recomputed
	}

	o.state = StateBuildingView
	view := buildView(seq.Labels, limitResult, flagResult)

	o.prevData = currData
	o.prevSettings = currSettings
	o.limits = limitResult
	o.outliers = flagResult
	o.view = view
	o.state = StateDone

	o.logger.Debug("update cycle done",
		"points", seq.Len(),
		"subgroups", len(subgroups),
		"limits_recalc", flags.LimitsNeedRecalc,
		"outliers_recalc", flags.OutliersNeedRecalc,
		"stages", flags.Stages.List())

	return &UpdateResult{
		Flags:    flags,
		Limits:   limitResult,
		Outliers: flagResult,
		View:     view,
		Warnings: warnings.Join(),
	}, nil
}

// recomputeLimits runs the limit calculator once per subgroup, concatenates
// the results in index order, then applies the unit multiplier, truncation
// and the carried-through overlays.
func (o *Orchestrator) recomputeLimits(ctx context.Context, seq *models.Sequence, subgroups []models.Subgroup, settings models.Settings, warnings *models.WarningList) (*models.LimitResult, error) {
	parsed, err := parseCalcSettings(settings, o.engine)
	if err != nil {
		return nil, err
	}

	merged := models.EmptyLimitResult()
	for _, sg := range subgroups {
		in := subgroupInput(seq, sg, parsed.Options)
		result, err := o.calc.CalculateLimits(ctx, parsed.Model, in)
		if err != nil {
			return nil, err
		}
		merged.Append(result)
	}

	applyUnitMultiplier(merged, parsed.UnitMultiplier)
	applyTruncation(merged, parsed.TruncateLower, parsed.TruncateUpper)
	attachOverlays(merged, parsed, warnings)
	return merged, nil
}

// recomputeOutliers runs every enabled rule per subgroup over the calculated
// values and bounds, concatenates in index order, then applies direction
// suppression.
func (o *Orchestrator) recomputeOutliers(ctx context.Context, limitResult *models.LimitResult, subgroups []models.Subgroup, settings models.Settings) (*models.OutlierFlags, error) {
	parsed := parseOutlierSettings(settings, o.engine)

	// Configured specification limits replace the computed three-sigma
	// bounds for detection purposes.
	lower99 := limitResult.Lower99
	if limitResult.SpecLower99 != nil {
		lower99 = limitResult.SpecLower99
	}
	upper99 := limitResult.Upper99
	if limitResult.SpecUpper99 != nil {
		upper99 = limitResult.SpecUpper99
	}

	merged := &models.OutlierFlags{}
	for _, sg := range subgroups {
		values := sg.Slice(limitResult.Values)
		bounds := outliers.Bounds{
			Targets: sg.Slice(limitResult.Targets),
			Lower95: sg.Slice(limitResult.Lower95),
			Upper95: sg.Slice(limitResult.Upper95),
			Lower99: sg.Slice(lower99),
			Upper99: sg.Slice(upper99),
		}

		part := models.NewOutlierFlags(sg.Len())

		rules := []struct {
			enabled bool
			rule    outliers.Rule
			dst     *[]models.OutlierFlag
		}{
			{parsed.Astronomical, outliers.RuleAstronomical, &part.Astronomical},
			{parsed.Shift, outliers.RuleShift, &part.Shift},
			{parsed.Trend, outliers.RuleTrend, &part.Trend},
			{parsed.TwoInThree, outliers.RuleTwoInThree, &part.TwoInThree},
		}
		for _, r := range rules {
			if !r.enabled {
				continue
			}
			detected, err := o.calc.DetectOutliers(ctx, r.rule, values, bounds, parsed.Params)
			if err != nil {
				return nil, err
			}
			*r.dst = detected
		}

		merged.Append(part)
	}

	merged.Astronomical = outliers.SuppressDirection(merged.Astronomical, parsed.Improvement, parsed.Policy)
	merged.Shift = outliers.SuppressDirection(merged.Shift, parsed.Improvement, parsed.Policy)
	merged.Trend = outliers.SuppressDirection(merged.Trend, parsed.Improvement, parsed.Policy)
	merged.TwoInThree = outliers.SuppressDirection(merged.TwoInThree, parsed.Improvement, parsed.Policy)
	return merged, nil
}

func applyUnitMultiplier(result *models.LimitResult, multiplier float64) {
	if multiplier == 1 {
		return
	}
	for _, column := range [][]float64{
		result.Values, result.Targets,
		result.Lower68, result.Lower95, result.Lower99,
		result.Upper68, result.Upper95, result.Upper99,
		result.Trend,
	} {
		for i := range column {
			column[i] *= multiplier
		}
	}
}

func applyTruncation(result *models.LimitResult, lower, upper *float64) {
	if lower != nil {
		for _, column := range [][]float64{result.Lower68, result.Lower95, result.Lower99} {
			for i := range column {
				if column[i] < *lower {
					column[i] = *lower
				}
			}
		}
	}
	if upper != nil {
		for _, column := range [][]float64{result.Upper68, result.Upper95, result.Upper99} {
			for i := range column {
				if column[i] > *upper {
					column[i] = *upper
				}
			}
		}
	}
}

// attachOverlays carries the externally supplied alternate targets and
// specification limits through onto the result. An alternate-target array of
// the wrong length is dropped with a warning rather than failing the cycle.
func attachOverlays(result *models.LimitResult, parsed calcSettings, warnings *models.WarningList) {
	n := result.Len()
	if parsed.AltTargets != nil {
		if len(parsed.AltTargets) == n {
			result.AltTargets = parsed.AltTargets
		} else {
			warnings.Add("alt_targets length %d does not match sequence length %d, overlay skipped",
				len(parsed.AltTargets), n)
		}
	}
	if parsed.SpecLower99 != nil {
		result.SpecLower99 = broadcast(*parsed.SpecLower99, n)
	}
	if parsed.SpecUpper99 != nil {
		result.SpecUpper99 = broadcast(*parsed.SpecUpper99, n)
	}
}

func broadcast(value float64, n int) []float64 {
	column := make([]float64, n)
	for i := range column {
		column[i] = value
	}
	return column
}

func subgroupInput(seq *models.Sequence, sg models.Subgroup, opts limits.Options) limits.Input {
	return limits.Input{
		Numerators:   sg.Slice(seq.Numerators),
		Denominators: sg.Slice(seq.Denominators),
		SDs:          sg.Slice(seq.SDs),
		Options:      opts,
	}
}

// buildView materializes one render-ready record per point.
func buildView(labels []string, limitResult *models.LimitResult, flagResult *models.OutlierFlags) *models.ChartView {
	n := limitResult.Len()
	records := make([]models.ViewRecord, n)
	for i := 0; i < n; i++ {
		rec := models.ViewRecord{
			Index:  i,
			Value:  limitResult.Values[i],
			Target: limitResult.Targets[i],
		}
		if i < len(labels) {
			rec.Label = labels[i]
		}
		rec.Lower68 = at(limitResult.Lower68, i)
		rec.Lower95 = at(limitResult.Lower95, i)
		rec.Lower99 = at(limitResult.Lower99, i)
		rec.Upper68 = at(limitResult.Upper68, i)
		rec.Upper95 = at(limitResult.Upper95, i)
		rec.Upper99 = at(limitResult.Upper99, i)
		rec.Trend = atPtr(limitResult.Trend, i)
		rec.AltTarget = atPtr(limitResult.AltTargets, i)
		rec.SpecLower99 = atPtr(limitResult.SpecLower99, i)
		rec.SpecUpper99 = atPtr(limitResult.SpecUpper99, i)

		rec.Astronomical = flagAt(flagResult.Astronomical, i)
		rec.Shift = flagAt(flagResult.Shift, i)
		rec.TrendFlag = flagAt(flagResult.Trend, i)
		rec.TwoInThree = flagAt(flagResult.TwoInThree, i)
		records[i] = rec
	}
	return models.NewChartView(records)
}

func at(column []float64, i int) float64 {
	if i >= len(column) {
		return 0
	}
	return column[i]
}

func atPtr(column []float64, i int) *float64 {
	if i >= len(column) {
		return nil
	}
	v := column[i]
	return &v
}

func flagAt(column []models.OutlierFlag, i int) models.OutlierFlag {
	if i >= len(column) {
		return models.FlagNone
	}
	return column[i]
}
