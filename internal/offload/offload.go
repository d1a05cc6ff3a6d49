// Package offload provides the optional asynchronous transport for the two
// pure calculation entry points. Large subgroups may be computed by a worker
// on the far side of a message queue; everything below the size threshold,
// and every transport failure, runs through the synchronous path instead.
// The fallback is the only retry-like behavior in the system.
package offload

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/models"
	"github.com/spcflow/spcflow/internal/outliers"
	"github.com/spcflow/spcflow/internal/queue"
)

// Calculator is the calculation surface the orchestrator depends on. Both
// implementations are pure with respect to their inputs; the dispatcher only
// changes where the work runs.
type Calculator interface {
	CalculateLimits(ctx context.Context, model limits.ChartModel, in limits.Input) (*models.LimitResult, error)
	DetectOutliers(ctx context.Context, rule outliers.Rule, values []float64, bounds outliers.Bounds, params outliers.Params) ([]models.OutlierFlag, error)
}

// SyncCalculator runs everything in process.
type SyncCalculator struct{}

// CalculateLimits computes limits synchronously.
func (SyncCalculator) CalculateLimits(_ context.Context, model limits.ChartModel, in limits.Input) (*models.LimitResult, error) {
	return limits.Compute(model, in)
}

// DetectOutliers runs one detection rule synchronously.
func (SyncCalculator) DetectOutliers(_ context.Context, rule outliers.Rule, values []float64, bounds outliers.Bounds, params outliers.Params) ([]models.OutlierFlag, error) {
	return outliers.Detect(rule, values, bounds, params)
}

// Dispatcher offloads large calculations over a queue. Each request carries a
// correlation id; replies arrive on a dispatcher-unique subject and are
// matched against the pending set. A reply whose id has already been dropped
// is discarded: cancellation is nothing more than removing the id.
type Dispatcher struct {
	logger    *logging.Logger
	queue     queue.Queue
	subject   string
	replyTo   string
	timeout   time.Duration
	threshold int
	sync      SyncCalculator

	pending map[string]chan *response
	mu      sync.Mutex
}

// NewDispatcher creates a dispatcher over the given queue. Call Start before
// dispatching and Close when done.
func NewDispatcher(logger *logging.Logger, q queue.Queue, cfg config.OffloadConfig) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		queue:     q,
		subject:   cfg.Subject,
		replyTo:   cfg.Subject + ".reply." + uuid.New().String(),
		timeout:   cfg.Timeout,
		threshold: cfg.SizeThreshold,
		pending:   make(map[string]chan *response),
	}
}

// Start subscribes the dispatcher to its reply subject.
func (d *Dispatcher) Start() error {
	return d.queue.Subscribe(d.replyTo, d.handleReply)
}

// Close unsubscribes from the reply subject. Pending requests time out and
// fall back on their own.
func (d *Dispatcher) Close() error {
	return d.queue.Unsubscribe(d.replyTo)
}

func (d *Dispatcher) handleReply(data []byte) error {
	var resp response
	if err := decode(data, &resp); err != nil {
		d.logger.Warn("Discarding undecodable offload reply", "error", err)
		return nil
	}

	d.mu.Lock()
	ch, ok := d.pending[resp.ID]
	if ok {
		delete(d.pending, resp.ID)
	}
	d.mu.Unlock()

	if !ok {
		// Superseded request; the caller already fell back.
		d.logger.Debug("Dropping late offload reply", "correlation_id", resp.ID)
		return nil
	}
	ch <- &resp
	return nil
}

// CalculateLimits computes limits for one subgroup, remotely when it is
// large enough.
func (d *Dispatcher) CalculateLimits(ctx context.Context, model limits.ChartModel, in limits.Input) (*models.LimitResult, error) {
	if len(in.Numerators) < d.threshold {
		return d.sync.CalculateLimits(ctx, model, in)
	}

	resp, ok := d.roundTrip(ctx, &request{
		Kind:   kindLimits,
		Limits: &limitsRequest{Model: model.String(), Input: in},
	})
	if !ok || resp.Error != "" {
		// The calculation is deterministic: the synchronous path reproduces
		// any remote outcome, including errors.
		return d.sync.CalculateLimits(ctx, model, in)
	}
	return resp.Limits, nil
}

// DetectOutliers runs one detection rule, remotely for large series.
func (d *Dispatcher) DetectOutliers(ctx context.Context, rule outliers.Rule, values []float64, bounds outliers.Bounds, params outliers.Params) ([]models.OutlierFlag, error) {
	if len(values) < d.threshold {
		return d.sync.DetectOutliers(ctx, rule, values, bounds, params)
	}

	resp, ok := d.roundTrip(ctx, &request{
		Kind: kindOutliers,
		Outliers: &outliersRequest{
			Rule:   rule.String(),
			Values: values,
			Bounds: bounds,
			Params: params,
		},
	})
	if !ok || resp.Error != "" {
		return d.sync.DetectOutliers(ctx, rule, values, bounds, params)
	}
	return resp.Flags, nil
}

// roundTrip publishes a tagged request and waits for its reply. Any failure
// (encode, publish, timeout) reports ok=false and never surfaces an error:
// the caller falls back to the synchronous path transparently.
func (d *Dispatcher) roundTrip(ctx context.Context, req *request) (*response, bool) {
	req.ID = uuid.New().String()
	req.ReplyTo = d.replyTo

	data, err := encode(req)
	if err != nil {
		d.logger.Warn("Offload encode failed, falling back", "error", err)
		return nil, false
	}

	ch := make(chan *response, 1)
	d.mu.Lock()
	d.pending[req.ID] = ch
	d.mu.Unlock()

	drop := func() {
		d.mu.Lock()
		delete(d.pending, req.ID)
		d.mu.Unlock()
	}

	if err := d.queue.Publish(ctx, d.subject, data); err != nil {
		drop()
		d.logger.Warn("Offload publish failed, falling back", "error", err)
		return nil, false
	}

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		return resp, true
	case <-timer.C:
		drop()
		d.logger.Debug("Offload timed out, falling back",
			"correlation_id", req.ID, "timeout", d.timeout)
		return nil, false
	case <-ctx.Done():
		drop()
		return nil, false
	}
}
