// Package queue abstracts the message transport used by the calculation
// offload path. Delivery is fire-and-forget pub/sub: offload requests carry
// their own correlation ids and timeouts, so the transport needs no
// persistence or replay.
package queue

import "context"

// MessageHandler handles incoming messages
type MessageHandler func(data []byte) error

// Publisher publishes messages to a subject
type Publisher interface {
	// Publish publishes a message to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection
	Close() error
}

// Subscriber subscribes to messages from a subject
type Subscriber interface {
	// Subscribe subscribes to a subject/topic with a handler
	Subscribe(subject string, handler MessageHandler) error

	// Unsubscribe unsubscribes from a subject/topic
	Unsubscribe(subject string) error

	// Close closes the connection
	Close() error
}

// Queue combines Publisher and Subscriber interfaces
type Queue interface {
	Publisher
	Subscriber
}
