package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

// HTTP Handler Timeouts
const (
	// DefaultRequestTimeout is the default timeout for HTTP requests
	DefaultRequestTimeout = 30 * time.Second

	// UpdateCycleTimeout bounds one full orchestrator cycle
	UpdateCycleTimeout = 10 * time.Second
)

// Offload Transport
const (
	// DefaultOffloadTimeout is how long the dispatcher waits for a reply
	// before silently falling back to the synchronous path
	DefaultOffloadTimeout = 2 * time.Second

	// DefaultOffloadThreshold is the subgroup size below which execution is
	// always synchronous
	DefaultOffloadThreshold = 5000
)

// =============================================================================
// Queue Constants
// =============================================================================

// QueueType identifies a queue backend
type QueueType string

const (
	QueueTypeNATS   QueueType = "nats"
	QueueTypeRedis  QueueType = "redis"
	QueueTypeMemory QueueType = "memory"
)
