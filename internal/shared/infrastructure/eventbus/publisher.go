// Package eventbus carries domain events to interested parties, either
// in-process or through RabbitMQ.
package eventbus

import (
	"context"
)

// Publisher defines the interface for publishing events to a message bus.
type Publisher interface {
	// Publish sends a message with the given routing key.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}
