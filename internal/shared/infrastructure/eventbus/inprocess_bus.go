package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Handler consumes a published event.
type Handler func(ctx context.Context, routingKey string, payload []byte) error

// InProcessEventBus is an in-memory event bus for local mode (no RabbitMQ).
// Events are delivered synchronously to registered handlers.
type InProcessEventBus struct {
	logger   *slog.Logger
	mu       sync.Mutex
	handlers map[string][]Handler
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a routing key.
func (b *InProcessEventBus) Subscribe(routingKey string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], h)
}

// Publish dispatches the event synchronously to all handlers registered for
// the routing key. Handler errors are logged, not returned; in local mode a
// failed consumer must not fail the producing operation.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	handlers := append([]Handler(nil), b.handlers[routingKey]...)
	b.mu.Unlock()

	for _, h := range handlers {
		if err := h(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"handlers", len(handlers),
		"size", len(payload),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessEventBus) Close() error {
	return nil
}
