package queue

import (
	"fmt"
	"strings"

	"github.com/spcflow/spcflow/internal/config"
	"github.com/spcflow/spcflow/internal/utils"
)

// NewQueue creates a new Queue instance based on configuration.
// Default is memory if type is not specified, keeping a single binary
// self-contained without an external broker.
func NewQueue(cfg config.QueueConfig) (Queue, error) {
	queueType := utils.QueueType(strings.ToLower(cfg.Type))

	if queueType == "" {
		queueType = utils.QueueTypeMemory
	}

	switch queueType {
	case utils.QueueTypeNATS:
		return NewNATSQueue(cfg.URL)

	case utils.QueueTypeRedis:
		return NewRedisQueue(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
		})

	case utils.QueueTypeMemory:
		return NewMemoryQueue(), nil

	default:
		return nil, fmt.Errorf("unsupported queue type: %s (supported: nats, redis, memory)", queueType)
	}
}
