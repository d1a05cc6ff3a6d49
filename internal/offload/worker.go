package offload

import (
	"context"

	"github.com/spcflow/spcflow/internal/limits"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/outliers"
	"github.com/spcflow/spcflow/internal/queue"
)

// Worker serves offload requests: it subscribes to the request subject,
// runs the same pure entry points the synchronous path uses and publishes
// the reply to whatever subject the request named.
type Worker struct {
	logger  *logging.Logger
	queue   queue.Queue
	subject string
	calc    SyncCalculator
}

// NewWorker creates a worker for the given request subject.
func NewWorker(logger *logging.Logger, q queue.Queue, subject string) *Worker {
	return &Worker{
		logger:  logger,
		queue:   q,
		subject: subject,
	}
}

// Start subscribes the worker to the request subject.
func (w *Worker) Start() error {
	return w.queue.Subscribe(w.subject, w.handle)
}

// Close unsubscribes the worker.
func (w *Worker) Close() error {
	return w.queue.Unsubscribe(w.subject)
}

func (w *Worker) handle(data []byte) error {
	var req request
	if err := decode(data, &req); err != nil {
		w.logger.Warn("Discarding undecodable offload request", "error", err)
		return nil
	}

	resp := w.serve(&req)
	out, err := encode(resp)
	if err != nil {
		w.logger.Error("Failed to encode offload reply", "error", err)
		return nil
	}
	if err := w.queue.Publish(context.Background(), req.ReplyTo, out); err != nil {
		w.logger.Warn("Failed to publish offload reply",
			"correlation_id", req.ID, "error", err)
	}
	return nil
}

func (w *Worker) serve(req *request) *response {
	resp := &response{ID: req.ID}

	switch req.Kind {
	case kindLimits:
		if req.Limits == nil {
			resp.Error = "limits request missing payload"
			return resp
		}
		model, err := limits.ParseChartModel(req.Limits.Model)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		result, err := w.calc.CalculateLimits(context.Background(), model, req.Limits.Input)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Limits = result

	case kindOutliers:
		if req.Outliers == nil {
			resp.Error = "outliers request missing payload"
			return resp
		}
		rule, err := outliers.ParseRule(req.Outliers.Rule)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		flags, err := w.calc.DetectOutliers(context.Background(),
			rule, req.Outliers.Values, req.Outliers.Bounds, req.Outliers.Params)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		resp.Flags = flags

	default:
		resp.Error = "unknown offload request kind: " + string(req.Kind)
	}

	return resp
}
