package orchestrator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/offload"
)

// Registry owns the orchestrators, one per chart, with an explicit
// create/get/dispose lifecycle. No global state: the registry is constructed
// by the caller and passed to whoever needs it.
type Registry struct {
	logger *logging.Logger
	calc   offload.Calculator
	engine config.EngineConfig

	mu     sync.RWMutex
	charts map[string]*Orchestrator
}

// NewRegistry creates an empty registry. Every orchestrator it creates shares
// the given calculator.
func NewRegistry(logger *logging.Logger, calc offload.Calculator, engine config.EngineConfig) *Registry {
	return &Registry{
		logger: logger,
		calc:   calc,
		engine: engine,
		charts: make(map[string]*Orchestrator),
	}
}

// GetOrCreate returns the orchestrator for a chart, creating it on first use.
func (r *Registry) GetOrCreate(name string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o, ok := r.charts[name]; ok {
		return o
	}
	o := New(name, r.logger, r.calc, r.engine)
	r.charts[name] = o
	r.logger.Debug("chart created", "chart", name)
	return o
}

// Get returns the orchestrator for a chart, or an error when it does not
// exist.
func (r *Registry) Get(name string) (*Orchestrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.charts[name]
	if !ok {
		return nil, fmt.Errorf("unknown chart: %s", name)
	}
	return o, nil
}

// Dispose removes a chart and drops all its retained state.
func (r *Registry) Dispose(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.charts[name]; !ok {
		return fmt.Errorf("unknown chart: %s", name)
	}
	delete(r.charts, name)
	r.logger.Debug("chart disposed", "chart", name)
	return nil
}

// Names returns the registered chart names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.charts))
	for name := range r.charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered charts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.charts)
}
