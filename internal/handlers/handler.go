package handlers

import (
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/orchestrator"
)

// Version is the engine version reported by the health endpoint.
const Version = "1.0.0"

// Handler contains all HTTP handlers
type Handler struct {
	logger   *logging.Logger
	registry *orchestrator.Registry
}

// New creates a new handler instance
func New(logger *logging.Logger, registry *orchestrator.Registry) *Handler {
	return &Handler{
		logger:   logger,
		registry: registry,
	}
}
